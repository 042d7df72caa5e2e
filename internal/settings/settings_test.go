package settings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    Settings
		wantErr string
	}{
		{
			name:    "missing bucket",
			env:     map[string]string{},
			wantErr: "BUCKET_NAME is required",
		},
		{
			name: "defaults applied",
			env:  map[string]string{"BUCKET_NAME": "appinit-binaries"},
			want: Settings{
				Bucket:        "appinit-binaries",
				PresignExpiry: time.Hour,
				DownloadURL:   "https://your-api-url/download?platform=<platform>&arch=<arch>",
			},
		},
		{
			name: "explicit expiry and template",
			env: map[string]string{
				"BUCKET_NAME":           "appinit-binaries",
				"PRESIGNED_URL_EXPIRY":  "900",
				"DOWNLOAD_URL_TEMPLATE": "https://get.example.com/download",
			},
			want: Settings{
				Bucket:        "appinit-binaries",
				PresignExpiry: 15 * time.Minute,
				DownloadURL:   "https://get.example.com/download",
			},
		},
		{
			name: "non-numeric expiry",
			env: map[string]string{
				"BUCKET_NAME":          "appinit-binaries",
				"PRESIGNED_URL_EXPIRY": "abc",
			},
			wantErr: `invalid PRESIGNED_URL_EXPIRY value "abc"`,
		},
		{
			name: "negative expiry",
			env: map[string]string{
				"BUCKET_NAME":          "appinit-binaries",
				"PRESIGNED_URL_EXPIRY": "-5",
			},
			wantErr: `invalid PRESIGNED_URL_EXPIRY value "-5"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"BUCKET_NAME", "PRESIGNED_URL_EXPIRY", "DOWNLOAD_URL_TEMPLATE"} {
				t.Setenv(k, tt.env[k])
			}

			got, err := Load()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
