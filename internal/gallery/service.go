package gallery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/eventgallery/gateway/internal/index"
	"github.com/eventgallery/gateway/internal/models"
	"github.com/eventgallery/gateway/internal/storage"
)

// DefaultUploadFolder receives uploads that name no target folder.
const DefaultUploadFolder = "uploads"

// markerName is the zero-byte object that keeps an empty folder visible
// to prefix listings.
const markerName = ".keep"

// deleteConcurrency bounds the fan-out of a folder delete.
const deleteConcurrency = 8

var (
	// ErrEmptyName means a folder name sanitized down to nothing.
	ErrEmptyName = errors.New("gallery: folder name is empty")
	// ErrFolderExists means the sanitized prefix already holds objects.
	ErrFolderExists = errors.New("gallery: folder already exists")
	// ErrFolderNotFound means no object carries the folder's prefix.
	ErrFolderNotFound = errors.New("gallery: folder not found")
)

// Service translates folder and media operations into object-store calls.
// It holds no cross-request state: every method is an independent sequence
// of store calls, and multi-object operations are explicitly
// non-transactional (see RenameFolder and DeleteFolder).
type Service struct {
	store      storage.ObjectStore
	idx        index.Index
	publicBase string
}

// NewService wires a Service to its store, index and public URL base.
func NewService(store storage.ObjectStore, idx index.Index, publicBase string) *Service {
	return &Service{store: store, idx: idx, publicBase: publicBase}
}

// ListFolders returns every top-level folder, one per common prefix of a
// delimited root listing.
func (s *Service) ListFolders(ctx context.Context) ([]models.Folder, error) {
	objects, err := s.store.List(ctx, storage.ListOptions{Prefix: "", Recursive: false})
	if err != nil {
		return nil, err
	}

	folders := []models.Folder{}
	for _, obj := range objects {
		if !strings.HasSuffix(obj.Key, "/") {
			continue // root-level object, not a prefix
		}
		folders = append(folders, models.Folder{
			Name: strings.TrimSuffix(obj.Key, "/"),
			Path: obj.Key,
		})
	}
	return folders, nil
}

// ListMedia returns the browsable media directly inside a folder. Nested
// prefixes, hidden segments and unsupported extensions are filtered out.
// A missing folder and an empty folder both yield an empty slice.
func (s *Service) ListMedia(ctx context.Context, folder string) ([]models.MediaItem, error) {
	prefix := NormalizePrefix(folder)
	objects, err := s.store.List(ctx, storage.ListOptions{Prefix: prefix, Recursive: false})
	if err != nil {
		return nil, err
	}

	items := []models.MediaItem{}
	for _, obj := range objects {
		if !IsMediaKey(obj.Key) {
			continue
		}
		items = append(items, models.MediaItem{
			Name:         BaseName(obj.Key),
			URL:          PublicURL(s.publicBase, obj.Key),
			LastModified: obj.LastModified,
			Size:         obj.Size,
			Type:         MediaType(obj.Key),
		})
	}
	return items, nil
}

// CreateFolder sanitizes the requested name and writes the folder's
// marker object. The existence check and the marker write are two
// separate store calls; two concurrent creators of the same name can both
// succeed, converging on the same marker key.
func (s *Service) CreateFolder(ctx context.Context, name string) (models.Folder, error) {
	sanitized := SanitizeFolderName(name)
	if sanitized == "" {
		return models.Folder{}, ErrEmptyName
	}

	prefix := sanitized + "/"
	existing, err := s.store.List(ctx, storage.ListOptions{Prefix: prefix, Recursive: true, MaxKeys: 1})
	if err != nil {
		return models.Folder{}, err
	}
	if len(existing) > 0 {
		return models.Folder{}, ErrFolderExists
	}

	if err := s.store.Put(ctx, prefix+markerName, strings.NewReader(""), 0, ""); err != nil {
		return models.Folder{}, err
	}

	log.Info().Str("folder", sanitized).Msg("folder created")
	return models.Folder{Name: sanitized, Path: prefix}, nil
}

// RenameFolder moves every object under the old prefix to the new one,
// preserving each key's relative suffix byte for byte. Objects are moved
// one at a time as independent copy+delete pairs with no rollback: an
// interruption leaves already-moved objects under the new prefix and the
// rest under the old one. Per-key failures are aggregated in the result
// rather than aborting the loop.
func (s *Service) RenameFolder(ctx context.Context, oldName, newName string) (models.RenameResult, error) {
	oldPrefix := NormalizePrefix(oldName)
	newPrefix := NormalizePrefix(newName)

	objects, err := s.store.List(ctx, storage.ListOptions{Prefix: oldPrefix, Recursive: true})
	if err != nil {
		return models.RenameResult{}, err
	}
	if len(objects) == 0 {
		return models.RenameResult{}, ErrFolderNotFound
	}

	result := models.RenameResult{
		OldName: strings.TrimSuffix(oldPrefix, "/"),
		NewName: strings.TrimSuffix(newPrefix, "/"),
	}
	for _, obj := range objects {
		newKey := newPrefix + strings.TrimPrefix(obj.Key, oldPrefix)
		if err := s.store.Copy(ctx, obj.Key, newKey); err != nil {
			log.Error().Err(err).Str("key", obj.Key).Msg("rename: copy failed")
			result.Failed++
			result.FailedKeys = append(result.FailedKeys, obj.Key)
			continue
		}
		if err := s.store.Remove(ctx, obj.Key); err != nil {
			// The copy landed but the original lingers under the old
			// prefix, so the key counts as failed.
			log.Error().Err(err).Str("key", obj.Key).Msg("rename: delete of original failed")
			result.Failed++
			result.FailedKeys = append(result.FailedKeys, obj.Key)
			continue
		}
		result.Moved++
	}

	if result.Failed == 0 {
		if err := s.idx.RenameFolder(ctx, result.OldName, result.NewName); err != nil {
			log.Warn().Err(err).Str("folder", result.OldName).Msg("image index rename failed")
		}
	}

	log.Info().Str("from", result.OldName).Str("to", result.NewName).
		Int("moved", result.Moved).Int("failed", result.Failed).Msg("folder renamed")
	return result, nil
}

// DeleteFolder removes every object under the folder's prefix. Deletes
// fan out concurrently; per-key failures are aggregated in the result.
func (s *Service) DeleteFolder(ctx context.Context, name string) (models.DeleteFolderResult, error) {
	prefix := NormalizePrefix(name)

	objects, err := s.store.List(ctx, storage.ListOptions{Prefix: prefix, Recursive: true})
	if err != nil {
		return models.DeleteFolderResult{}, err
	}
	if len(objects) == 0 {
		return models.DeleteFolderResult{}, ErrFolderNotFound
	}

	failures := make([]error, len(objects))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(deleteConcurrency)
	for i, obj := range objects {
		g.Go(func() error {
			failures[i] = s.store.Remove(gctx, obj.Key)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; outcomes live in failures

	result := models.DeleteFolderResult{Folder: strings.TrimSuffix(prefix, "/")}
	for i, failure := range failures {
		if failure != nil {
			log.Error().Err(failure).Str("key", objects[i].Key).Msg("folder delete: remove failed")
			result.Failed++
			result.FailedKeys = append(result.FailedKeys, objects[i].Key)
			continue
		}
		result.Deleted++
	}

	if result.Failed == 0 {
		if err := s.idx.DeleteFolder(ctx, result.Folder); err != nil {
			log.Warn().Err(err).Str("folder", result.Folder).Msg("image index folder delete failed")
		}
	}

	log.Info().Str("folder", result.Folder).
		Int("deleted", result.Deleted).Int("failed", result.Failed).Msg("folder deleted")
	return result, nil
}

// DeleteMedia removes a single object. Object-store deletes are
// idempotent, so deleting a missing key succeeds.
func (s *Service) DeleteMedia(ctx context.Context, folder, key string) error {
	if err := s.store.Remove(ctx, NormalizePrefix(folder)+key); err != nil {
		return err
	}
	if err := s.idx.DeleteImage(ctx, key, strings.TrimSuffix(folder, "/")); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("image index delete failed")
	}
	return nil
}

// Upload stores a file under a collision-resistant key derived from the
// upload time and the original filename.
func (s *Service) Upload(ctx context.Context, folder, filename, contentType string, size int64, body io.Reader) (models.UploadResult, error) {
	target := SanitizeFolderName(folder)
	if target == "" {
		target = DefaultUploadFolder
	}

	key := fmt.Sprintf("%s/%d-%s", target, time.Now().UnixMilli(), filename)
	if err := s.store.Put(ctx, key, body, size, contentType); err != nil {
		return models.UploadResult{}, err
	}

	if err := s.idx.AddImage(ctx, strings.TrimPrefix(key, target+"/"), target); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("image index insert failed")
	}

	log.Info().Str("key", key).Int64("size", size).Msg("file uploaded")
	return models.UploadResult{
		Name: filename,
		URL:  PublicURL(s.publicBase, key),
		Key:  key,
		Size: size,
		Type: MediaType(key),
	}, nil
}

// Download opens a single object for streaming to the client.
func (s *Service) Download(ctx context.Context, folder, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	return s.store.Get(ctx, NormalizePrefix(folder)+key)
}
