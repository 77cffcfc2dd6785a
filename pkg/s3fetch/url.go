package s3fetch

import (
	"fmt"
	"strings"
)

// IsURL reports whether path names an S3 object rather than a local file.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "s3://")
}

// ParseURL splits an s3://bucket/key URL into bucket and key.
func ParseURL(url string) (bucket, key string, err error) {
	if !IsURL(url) {
		return "", "", fmt.Errorf("not an s3:// URL: %q", url)
	}
	rest := strings.TrimPrefix(url, "s3://")
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 URL must be s3://bucket/key: %q", url)
	}
	return bucket, key, nil
}
