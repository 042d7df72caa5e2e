// Package settings holds the runtime configuration for the distribution
// handlers. Values come from environment variables injected by the
// deployment stack, resolved once at cold start and never mutated after.
package settings

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	envBucket        = "BUCKET_NAME"
	envPresignExpiry = "PRESIGNED_URL_EXPIRY"
	envDownloadURL   = "DOWNLOAD_URL_TEMPLATE"

	defaultPresignExpiry = 3600 * time.Second
	defaultDownloadURL   = "https://your-api-url/download?platform=<platform>&arch=<arch>"
)

// Settings is the frozen runtime configuration shared by all handler
// invocations within one execution environment.
type Settings struct {
	// Bucket is the S3 bucket holding the published binaries.
	Bucket string

	// PresignExpiry bounds the lifetime of generated download URLs.
	PresignExpiry time.Duration

	// DownloadURL is the template string advertised by the list endpoint.
	DownloadURL string
}

// Load resolves settings from the environment, applying defaults for the
// optional fields. It fails when the bucket is unset or the expiry does not
// parse as a positive number of seconds.
func Load() (Settings, error) {
	s := Settings{
		Bucket:        os.Getenv(envBucket),
		PresignExpiry: defaultPresignExpiry,
		DownloadURL:   defaultDownloadURL,
	}
	if s.Bucket == "" {
		return Settings{}, fmt.Errorf("settings: %s is required", envBucket)
	}
	if v := os.Getenv(envPresignExpiry); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return Settings{}, fmt.Errorf("settings: invalid %s value %q", envPresignExpiry, v)
		}
		s.PresignExpiry = time.Duration(secs) * time.Second
	}
	if v := os.Getenv(envDownloadURL); v != "" {
		s.DownloadURL = v
	}
	return s, nil
}
