// Package storage reads binary objects from the S3 bucket owned by the
// build tooling. Handlers only ever check existence, list metadata, and
// mint presigned GET URLs; nothing here mutates the bucket.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Object is the metadata the service exposes for one stored binary.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// Store is the read-only view of the binary bucket consumed by handlers.
// Implementations must be safe for concurrent use.
type Store interface {
	// Exists reports whether an object is present at key. A missing
	// object is not an error: it returns (false, nil).
	Exists(ctx context.Context, key string) (bool, error)

	// List returns metadata for the stored binaries. A single backend
	// page only; the bucket holds one object per platform/arch pair.
	List(ctx context.Context) ([]Object, error)

	// PresignGet returns a time-limited URL granting read access to key.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// objectAPI is the slice of the S3 client the store calls. Narrow so tests
// can substitute a fake.
type objectAPI interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

type presignAPI interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Store implements Store against one S3 bucket.
type S3Store struct {
	api       objectAPI
	presigner presignAPI
	bucket    string
}

// LoadAWSConfig loads the default AWS configuration, pinned to region when
// non-empty.
func LoadAWSConfig(ctx context.Context, region string) (aws.Config, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return cfg, nil
}

// NewS3Store builds a store for bucket from an AWS configuration. The
// underlying client is safe to share across concurrent invocations, so one
// store is constructed per execution environment and reused.
func NewS3Store(cfg aws.Config, bucket string) *S3Store {
	client := s3.NewFromConfig(cfg)
	return &S3Store{
		api:       client,
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
	}
}

// NewS3StoreWithAPI builds a store around explicit API implementations.
// Used by tests.
func NewS3StoreWithAPI(api objectAPI, presigner presignAPI, bucket string) *S3Store {
	return &S3Store{api: api, presigner: presigner, bucket: bucket}
}

func (s *S3Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("head %s/%s: %w", s.bucket, key, err)
	}
	return true, nil
}

func (s *S3Store) List(ctx context.Context) ([]Object, error) {
	out, err := s.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.bucket, err)
	}
	objects := make([]Object, 0, len(out.Contents))
	for _, o := range out.Contents {
		objects = append(objects, Object{
			Key:          aws.ToString(o.Key),
			Size:         o.Size,
			LastModified: aws.ToTime(o.LastModified),
		})
	}
	return objects, nil
}

func (s *S3Store) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(o *s3.PresignOptions) {
		o.Expires = expiry
	})
	if err != nil {
		return "", fmt.Errorf("presign %s/%s: %w", s.bucket, key, err)
	}
	return req.URL, nil
}

// isNotFound classifies the HeadObject error for a missing object. S3
// surfaces it as NotFound (404 on HEAD) or NoSuchKey depending on the path.
func isNotFound(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "NotFound") || strings.Contains(msg, "NoSuchKey")
}
