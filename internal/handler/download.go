package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/appinit/bindist/internal/platform"
)

// Download resolves the requested platform/architecture, checks that the
// matching binary exists, and answers with a 302 redirect to a presigned
// GET URL. A missing binary is a 404; any other backend failure is a
// generic 500.
func (s *Service) Download(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	p, arch := platform.Resolve(
		req.QueryStringParameters["platform"],
		req.QueryStringParameters["arch"],
		userAgent(req),
	)
	key := platform.BinaryKey(p, arch)

	exists, err := s.store.Exists(ctx, key)
	if err != nil {
		s.log.Error("existence check failed", "key", key, "error", err)
		return errorResponse(http.StatusInternalServerError, "internal error")
	}
	if !exists {
		return jsonResponse(http.StatusNotFound, map[string]string{
			"error":              fmt.Sprintf("binary not found for %s/%s", p, arch),
			"available_binaries": "check the /list endpoint",
		})
	}

	url, err := s.store.PresignGet(ctx, key, s.cfg.PresignExpiry)
	if err != nil {
		s.log.Error("presign failed", "key", key, "error", err)
		return errorResponse(http.StatusInternalServerError, "internal error")
	}

	s.log.Info("serving binary", "key", key, "platform", p, "arch", arch)
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusFound,
		Headers: map[string]string{
			"Location":            url,
			"Content-Type":        "application/octet-stream",
			"Content-Disposition": fmt.Sprintf("attachment; filename=%q", key),
		},
		Body: fmt.Sprintf(`{"url": %q}`, url),
	}
}
