// Package gallery implements the folder-as-prefix model over a flat
// object store: folder names map to key prefixes, media items are keys
// one level below a folder prefix, and every operation is a composition
// of list/put/copy/delete calls.
package gallery

import (
	"net/url"
	"path"
	"strings"
)

// mediaExtensions is the supported set of media file extensions,
// lower-case and without the leading dot.
var mediaExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
	"mp4":  true,
	"webm": true,
	"ogg":  true,
	"mov":  true,
}

// SanitizeFolderName derives a valid folder name from arbitrary input:
// lower-case ASCII letters, digits and hyphens only, with disallowed
// characters replaced by hyphens, runs collapsed and edges trimmed.
// The result is empty when the input has no usable characters.
// Sanitizing an already-sanitized name is a no-op.
func SanitizeFolderName(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphens
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// NormalizePrefix ensures a folder name carries exactly one trailing
// slash, making it usable as a listing prefix.
func NormalizePrefix(folder string) string {
	return strings.TrimSuffix(folder, "/") + "/"
}

// HasHiddenSegment reports whether any path segment of the key starts
// with a dot (".keep" markers, ".DS_Store" droppings and the like).
func HasHiddenSegment(key string) bool {
	return strings.HasPrefix(key, ".") || strings.Contains(key, "/.")
}

// MediaType returns the lower-cased extension of a key without the dot,
// or "" when the key has no extension.
func MediaType(key string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(key), "."))
}

// IsMediaKey reports whether a key names a browsable media object:
// not a folder marker, not hidden, and carrying a supported extension.
func IsMediaKey(key string) bool {
	if strings.HasSuffix(key, "/") || HasHiddenSegment(key) {
		return false
	}
	return mediaExtensions[MediaType(key)]
}

// BaseName returns the final path segment of a key.
func BaseName(key string) string {
	return path.Base(key)
}

// PublicURL joins the public base URL with an object key, escaping the
// key as a URL path.
func PublicURL(base, key string) string {
	u, err := url.Parse(base)
	if err != nil {
		return strings.TrimSuffix(base, "/") + "/" + key
	}
	u.Path = "/" + key
	return u.String()
}
