package storage

import (
	"mime"
	"path"
	"strings"

	"github.com/google/uuid"
)

func sanitizePathSegment(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	builder := strings.Builder{}
	builder.Grow(len(value))
	for i := 0; i < len(value); i++ {
		ch := value[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9':
			builder.WriteByte(ch)
		case ch >= 'A' && ch <= 'Z':
			builder.WriteByte(ch + 32)
		case ch == '-', ch == '_':
			builder.WriteByte(ch)
		}
	}
	return builder.String()
}

func normalizeExtension(ext string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if trimmed == "" {
		return "bin"
	}
	return sanitizePathSegment(trimmed)
}

// buildObjectKey returns "{category}/{base}.{ext}", generating a random base
// when none is given.
func buildObjectKey(opts SaveOptions) string {
	category := sanitizePathSegment(opts.Category)
	if category == "" {
		category = "misc"
	}
	base := strings.Trim(sanitizePathSegment(strings.ReplaceAll(opts.BaseName, " ", "-")), "-_")
	if base == "" {
		base = uuid.NewString()
	}
	return path.Join(category, base+"."+normalizeExtension(opts.Extension))
}

// cleanKey validates a caller-supplied key and returns it in canonical form.
func cleanKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || strings.Contains(key, "\\") {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean("/" + key)
	if cleaned == "/" || cleaned != "/"+strings.TrimPrefix(key, "/") {
		return "", ErrInvalidKey
	}
	return strings.TrimPrefix(cleaned, "/"), nil
}

func contentTypeFor(opts SaveOptions) string {
	if ct := strings.TrimSpace(opts.ContentType); ct != "" {
		return ct
	}
	typeName := mime.TypeByExtension("." + normalizeExtension(opts.Extension))
	if typeName == "" {
		return "application/octet-stream"
	}
	return typeName
}

func joinPrefix(prefix, key string) string {
	cleanPrefix := trimPrefix(prefix)
	if cleanPrefix == "" {
		return strings.TrimLeft(key, "/")
	}
	return path.Join(cleanPrefix, strings.TrimLeft(key, "/"))
}

func trimPrefix(prefix string) string {
	return strings.Trim(strings.TrimSpace(prefix), "/")
}
