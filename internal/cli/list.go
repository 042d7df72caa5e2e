package cli

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/appinit/bindist/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List published binaries with size and age",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		cfg, err := storage.LoadAWSConfig(ctx, region)
		if err != nil {
			return err
		}

		// Unlike the list endpoint, walk every page: operators may point
		// this at buckets with more than one page of objects.
		pager := s3.NewListObjectsV2Paginator(s3.NewFromConfig(cfg), &s3.ListObjectsV2Input{
			Bucket: aws.String(bucket),
		})
		var count int
		for pager.HasMorePages() {
			page, err := pager.NextPage(ctx)
			if err != nil {
				return fmt.Errorf("list %s: %w", bucket, err)
			}
			for _, o := range page.Contents {
				fmt.Fprintf(cmd.OutOrStdout(), "%-40s %10d  %s\n",
					aws.ToString(o.Key), o.Size, age(aws.ToTime(o.LastModified)))
				count++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d binaries in %s\n", count, bucket)
		return nil
	},
}

func age(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return time.Since(t).Round(time.Minute).String() + " ago"
}

func init() {
	rootCmd.AddCommand(listCmd)
}
