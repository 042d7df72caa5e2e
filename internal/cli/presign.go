package cli

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/appinit/bindist/internal/platform"
	"github.com/appinit/bindist/internal/storage"
)

var (
	presignPlatform string
	presignArch     string
	presignExpiry   int
)

var presignCmd = &cobra.Command{
	Use:   "presign",
	Short: "Emit a presigned download URL for a platform/arch pair",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		cfg, err := storage.LoadAWSConfig(ctx, region)
		if err != nil {
			return err
		}
		store := storage.NewS3Store(cfg, bucket)

		key := platform.BinaryKey(presignPlatform, presignArch)
		exists, err := store.Exists(ctx, key)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("no binary at %s in %s", key, bucket)
		}

		url, err := store.PresignGet(ctx, key, time.Duration(presignExpiry)*time.Second)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), url)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(presignCmd)
	presignCmd.Flags().StringVar(&presignPlatform, "platform", runtime.GOOS,
		"target platform ("+strings.Join(platform.Platforms, "|")+")")
	presignCmd.Flags().StringVar(&presignArch, "arch", runtime.GOARCH,
		"target architecture ("+strings.Join(platform.Architectures, "|")+")")
	presignCmd.Flags().IntVar(&presignExpiry, "expiry", 3600, "URL lifetime in seconds")
}
