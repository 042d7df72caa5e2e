package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/spf13/cobra"

	"github.com/appinit/bindist/internal/storage"
)

var (
	invokeFunction string
	invokePath     string
	invokeQuery    []string
)

var invokeCmd = &cobra.Command{
	Use:   "invoke",
	Short: "Invoke a deployed handler with a synthesized API Gateway event",
	Long: `Invoke sends a GET event straight to the Lambda function, bypassing the
gateway. Useful for smoke-testing a fresh deployment.

Example:
  bindist invoke --function appinit-download-handler --path /download --query platform=linux --query arch=amd64`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		cfg, err := storage.LoadAWSConfig(ctx, region)
		if err != nil {
			return err
		}

		query := map[string]string{}
		for _, q := range invokeQuery {
			k, v, ok := strings.Cut(q, "=")
			if !ok {
				return fmt.Errorf("malformed --query value %q, want key=value", q)
			}
			query[k] = v
		}

		payload, err := json.Marshal(events.APIGatewayProxyRequest{
			HTTPMethod:            http.MethodGet,
			Path:                  invokePath,
			QueryStringParameters: query,
		})
		if err != nil {
			return err
		}

		client := awslambda.NewFromConfig(cfg)
		out, err := client.Invoke(ctx, &awslambda.InvokeInput{
			FunctionName: &invokeFunction,
			Payload:      payload,
		})
		if err != nil {
			return fmt.Errorf("invoke %s: %w", invokeFunction, err)
		}
		if out.FunctionError != nil {
			return fmt.Errorf("invoke %s: function error: %s", invokeFunction, *out.FunctionError)
		}

		var resp events.APIGatewayProxyResponse
		if err := json.Unmarshal(out.Payload, &resp); err != nil {
			return fmt.Errorf("decoding response payload: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "status: %d\n", resp.StatusCode)
		for k, v := range resp.Headers {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", k, v)
		}
		fmt.Fprintln(cmd.OutOrStdout(), resp.Body)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(invokeCmd)
	invokeCmd.Flags().StringVar(&invokeFunction, "function", "", "name of the deployed Lambda function (required)")
	invokeCmd.Flags().StringVar(&invokePath, "path", "/download", "request path for the synthesized event")
	invokeCmd.Flags().StringArrayVar(&invokeQuery, "query", nil, "query parameter as key=value, repeatable")
	invokeCmd.MarkFlagRequired("function")
}
