package cli

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/appinit/bindist/internal/filter"
	"github.com/appinit/bindist/internal/storage"
)

var scanExpr string

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Print binaries matching a gval filter expression",
	Long: `Scan evaluates a gval boolean expression against every object in the
bucket and prints the keys that match. The expression sees name, size and
last_modified, plus contains(s, substr) for case-insensitive matching.

Example:
  bindist scan --expr 'contains(name, "darwin") && size > 1000000'`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		eval, err := filter.Compile(scanExpr)
		if err != nil {
			return fmt.Errorf("invalid expression %q: %w", scanExpr, err)
		}

		cfg, err := storage.LoadAWSConfig(ctx, region)
		if err != nil {
			return err
		}

		pager := s3.NewListObjectsV2Paginator(s3.NewFromConfig(cfg), &s3.ListObjectsV2Input{
			Bucket: aws.String(bucket),
		})
		var scanned, matched int
		for pager.HasMorePages() {
			page, err := pager.NextPage(ctx)
			if err != nil {
				return fmt.Errorf("list %s: %w", bucket, err)
			}
			for _, o := range page.Contents {
				scanned++
				modified := aws.ToTime(o.LastModified)
				var lastModified string
				if !modified.IsZero() {
					lastModified = modified.UTC().Format(time.RFC3339)
				}
				v, err := eval(ctx, map[string]any{
					"name":          aws.ToString(o.Key),
					"size":          float64(o.Size),
					"last_modified": lastModified,
				})
				if err != nil {
					return fmt.Errorf("evaluating %q against %s: %w", scanExpr, aws.ToString(o.Key), err)
				}
				if v == true {
					fmt.Fprintln(cmd.OutOrStdout(), aws.ToString(o.Key))
					matched++
				}
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d of %d objects matched\n", matched, scanned)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVar(&scanExpr, "expr", "true", "gval expression evaluating to a bool")
}
