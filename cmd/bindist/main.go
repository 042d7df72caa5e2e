// bindist serves the appinit binary distribution API when started inside
// AWS Lambda, and acts as an operations CLI otherwise.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/appinit/bindist/internal/cli"
	"github.com/appinit/bindist/internal/handler"
	"github.com/appinit/bindist/internal/settings"
	"github.com/appinit/bindist/internal/storage"
)

func setupLogging(inLambda bool) {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}

	var h slog.Handler
	if inLambda || os.Getenv("ENV") == "production" {
		h = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		h = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(h))
}

func main() {
	fn := os.Getenv("AWS_LAMBDA_FUNCTION_NAME")
	setupLogging(fn != "")

	if fn == "" {
		cli.Execute()
		return
	}

	cfg, err := settings.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	awsCfg, err := storage.LoadAWSConfig(context.Background(), "")
	if err != nil {
		slog.Error("aws configuration failed", "error", err)
		os.Exit(1)
	}

	// One store per execution environment, reused across warm invocations.
	store := storage.NewS3Store(awsCfg, cfg.Bucket)
	svc := handler.New(store, cfg, slog.Default())

	slog.Info("starting handler", "function", fn, "bucket", cfg.Bucket)
	lambda.Start(svc.Route)
}
