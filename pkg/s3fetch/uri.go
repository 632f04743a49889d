// Package s3fetch downloads measurement files from S3 to local temp files so
// they can be memory-mapped like any other input.
package s3fetch

import (
	"fmt"
	"strings"
)

const scheme = "s3://"

// IsS3URI reports whether s uses the s3:// scheme.
func IsS3URI(s string) bool {
	return strings.HasPrefix(s, scheme)
}

// ParseS3URI splits s3://bucket/key into its parts. Both must be non-empty.
func ParseS3URI(uri string) (bucket, key string, err error) {
	if !IsS3URI(uri) {
		return "", "", fmt.Errorf("%w %q: must start with %s", ErrInvalidURI, uri, scheme)
	}

	bucket, key, _ = strings.Cut(strings.TrimPrefix(uri, scheme), "/")
	if bucket == "" {
		return "", "", fmt.Errorf("%w %q: missing bucket name", ErrInvalidURI, uri)
	}
	if key == "" || strings.HasSuffix(key, "/") {
		return "", "", fmt.Errorf("%w %q: missing object key", ErrInvalidURI, uri)
	}
	return bucket, key, nil
}
