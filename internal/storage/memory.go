package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// ErrNotFound is returned by MemStore for missing keys on Get.
var ErrNotFound = errors.New("storage: object not found")

type memObject struct {
	body         []byte
	contentType  string
	lastModified time.Time
}

// MemStore is an in-memory ObjectStore used by tests. It mimics S3
// delimiter semantics: non-recursive listings collapse nested keys into
// common-prefix entries whose Key ends in "/".
type MemStore struct {
	mu      sync.Mutex
	objects map[string]memObject
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{objects: make(map[string]memObject)}
}

func (s *MemStore) List(_ context.Context, opts ListOptions) ([]ObjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	maxKeys := opts.MaxKeys
	if maxKeys <= 0 {
		maxKeys = MaxListKeys
	}

	var infos []ObjectInfo
	seenPrefixes := make(map[string]bool)
	for _, key := range s.sortedKeys() {
		if !strings.HasPrefix(key, opts.Prefix) {
			continue
		}
		rest := strings.TrimPrefix(key, opts.Prefix)
		if !opts.Recursive {
			// Keys nested past the delimiter collapse into one entry per
			// common prefix, the way a delimited S3 listing groups them.
			if idx := strings.Index(rest, "/"); idx >= 0 {
				prefix := opts.Prefix + rest[:idx+1]
				if !seenPrefixes[prefix] {
					seenPrefixes[prefix] = true
					infos = append(infos, ObjectInfo{Key: prefix})
				}
				continue
			}
		}
		obj := s.objects[key]
		infos = append(infos, ObjectInfo{
			Key:          key,
			Size:         int64(len(obj.body)),
			LastModified: obj.lastModified,
			ContentType:  obj.contentType,
		})
		if len(infos) >= maxKeys {
			break
		}
	}
	if len(infos) > maxKeys {
		infos = infos[:maxKeys]
	}
	return infos, nil
}

func (s *MemStore) Put(_ context.Context, key string, reader io.Reader, _ int64, contentType string) error {
	body, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = memObject{body: body, contentType: contentType, lastModified: time.Now()}
	return nil
}

func (s *MemStore) Copy(_ context.Context, srcKey, dstKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	src, ok := s.objects[srcKey]
	if !ok {
		return ErrNotFound
	}
	s.objects[dstKey] = memObject{
		body:         append([]byte(nil), src.body...),
		contentType:  src.contentType,
		lastModified: time.Now(),
	}
	return nil
}

func (s *MemStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// S3 deletes are idempotent: removing a missing key succeeds.
	delete(s.objects, key)
	return nil
}

func (s *MemStore) Get(_ context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[key]
	if !ok {
		return nil, ObjectInfo{}, ErrNotFound
	}
	info := ObjectInfo{
		Key:          key,
		Size:         int64(len(obj.body)),
		LastModified: obj.lastModified,
		ContentType:  obj.contentType,
	}
	return io.NopCloser(bytes.NewReader(obj.body)), info, nil
}

// Body returns the stored body for a key, for test assertions.
func (s *MemStore) Body(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), obj.body...), true
}

// Len reports the number of stored objects.
func (s *MemStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

func (s *MemStore) sortedKeys() []string {
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
