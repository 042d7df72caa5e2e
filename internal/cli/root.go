// Package cli implements the bindist operations CLI: bucket inspection,
// presigning, and smoke-testing deployed functions. It runs when the binary
// is started outside of Lambda.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	bucket string
	region string
)

var rootCmd = &cobra.Command{
	Use:   "bindist",
	Short: "Operate the appinit binary distribution service",
	Long: `bindist inspects the binary bucket and smoke-tests deployed handlers.

The same binary serves as the Lambda entrypoint when started inside the
runtime; these commands are for operators working against a deployed stack.`,
	SilenceUsage: true,
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&bucket, "bucket", "appinit-binaries", "S3 bucket holding the published binaries")
	rootCmd.PersistentFlags().StringVar(&region, "region", "us-east-1", "AWS region")
}
