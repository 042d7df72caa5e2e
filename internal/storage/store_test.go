package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI lets each test script the S3 responses it needs.
type fakeAPI struct {
	headErr error
	listOut *s3.ListObjectsV2Output
	listErr error

	headedKey string
}

func (f *fakeAPI) HeadObject(_ context.Context, params *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.headedKey = aws.ToString(params.Key)
	if f.headErr != nil {
		return nil, f.headErr
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeAPI) ListObjectsV2(_ context.Context, _ *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

type fakePresigner struct {
	url string
	err error

	expiry time.Duration
}

func (f *fakePresigner) PresignGetObject(_ context.Context, _ *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	opts := &s3.PresignOptions{}
	for _, fn := range optFns {
		fn(opts)
	}
	f.expiry = opts.Expires
	if f.err != nil {
		return nil, f.err
	}
	return &v4.PresignedHTTPRequest{URL: f.url}, nil
}

func TestS3Store_Exists(t *testing.T) {
	tests := []struct {
		name    string
		headErr error
		want    bool
		wantErr bool
	}{
		{name: "present", headErr: nil, want: true},
		{name: "missing classified as not found", headErr: errors.New("operation error S3: HeadObject, https response error StatusCode: 404, NotFound"), want: false},
		{name: "no such key classified as not found", headErr: errors.New("NoSuchKey: the specified key does not exist"), want: false},
		{name: "other failure propagates", headErr: errors.New("operation error S3: HeadObject, AccessDenied"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{headErr: tt.headErr}
			store := NewS3StoreWithAPI(api, &fakePresigner{}, "appinit-binaries")

			got, err := store.Exists(context.Background(), "appinit-linux-amd64")
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "appinit-linux-amd64")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "appinit-linux-amd64", api.headedKey)
		})
	}
}

func TestS3Store_List(t *testing.T) {
	modified := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	api := &fakeAPI{listOut: &s3.ListObjectsV2Output{
		Contents: []types.Object{
			{Key: aws.String("appinit-linux-amd64"), Size: 1024, LastModified: aws.Time(modified)},
			{Key: aws.String("appinit-windows-amd64.exe"), Size: 2048},
		},
	}}
	store := NewS3StoreWithAPI(api, &fakePresigner{}, "appinit-binaries")

	objects, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, Object{Key: "appinit-linux-amd64", Size: 1024, LastModified: modified}, objects[0])
	assert.Equal(t, "appinit-windows-amd64.exe", objects[1].Key)
	assert.True(t, objects[1].LastModified.IsZero())
}

func TestS3Store_List_Error(t *testing.T) {
	api := &fakeAPI{listErr: errors.New("backend down")}
	store := NewS3StoreWithAPI(api, &fakePresigner{}, "appinit-binaries")

	_, err := store.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "appinit-binaries")
}

func TestS3Store_PresignGet(t *testing.T) {
	presigner := &fakePresigner{url: "https://example.com/signed"}
	store := NewS3StoreWithAPI(&fakeAPI{}, presigner, "appinit-binaries")

	url, err := store.PresignGet(context.Background(), "appinit-linux-amd64", 30*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/signed", url)
	assert.Equal(t, 30*time.Minute, presigner.expiry)
}
