package s3fetch

import "errors"

// ErrInvalidURI indicates a string that is not an s3://bucket/key object URI.
var ErrInvalidURI = errors.New("invalid S3 URI")
