// Package handler serves the binary-distribution API behind API Gateway:
// /list, /download and /install. Handlers are stateless; the storage client
// and settings are built once per execution environment and injected.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"path"

	"github.com/aws/aws-lambda-go/events"

	"github.com/appinit/bindist/internal/settings"
	"github.com/appinit/bindist/internal/storage"
)

// Service holds the shared dependencies of the three handlers.
type Service struct {
	store storage.Store
	cfg   settings.Settings
	log   *slog.Logger
}

// New builds a Service around an object store and frozen settings.
func New(store storage.Store, cfg settings.Settings, log *slog.Logger) *Service {
	return &Service{store: store, cfg: cfg, log: log}
}

// Route dispatches an API Gateway request to the matching handler based on
// the trailing path segment, so both stage-prefixed ("/prod/download") and
// bare ("/download") paths work.
func (s *Service) Route(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if req.HTTPMethod != http.MethodGet {
		return errorResponse(http.StatusMethodNotAllowed, "method not allowed"), nil
	}
	switch path.Base(req.Path) {
	case "list":
		return s.List(ctx, req), nil
	case "download":
		return s.Download(ctx, req), nil
	case "install":
		return s.Install(ctx, req), nil
	default:
		return errorResponse(http.StatusNotFound, "unknown route"), nil
	}
}

// userAgent returns the request's User-Agent header, tolerating the
// lowercase form some gateway integrations use. Absent means empty.
func userAgent(req events.APIGatewayProxyRequest) string {
	if ua, ok := req.Headers["User-Agent"]; ok {
		return ua
	}
	return req.Headers["user-agent"]
}

func jsonResponse(status int, body any) events.APIGatewayProxyResponse {
	b, err := json.Marshal(body)
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Body:       `{"error": "internal error"}`,
		}
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(b),
	}
}

func errorResponse(status int, msg string) events.APIGatewayProxyResponse {
	return jsonResponse(status, map[string]string{"error": msg})
}
