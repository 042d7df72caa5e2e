package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/appinit/bindist/internal/filter"
	"github.com/appinit/bindist/internal/storage"
)

var errNonBoolean = errors.New("filter expression must evaluate to a boolean")

type binaryInfo struct {
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	LastModified string `json:"last_modified"`
}

type listBody struct {
	Binaries    []binaryInfo `json:"binaries"`
	DownloadURL string       `json:"download_url"`
}

// List enumerates the stored binaries with their metadata. An optional
// "filter" query parameter narrows the result: a gval boolean expression
// over name, size and last_modified, e.g. contains(name, "linux").
func (s *Service) List(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	objects, err := s.store.List(ctx)
	if err != nil {
		s.log.Error("list failed", "error", err)
		return errorResponse(http.StatusInternalServerError, err.Error())
	}

	keep := func(storage.Object) (bool, error) { return true, nil }
	if expr := req.QueryStringParameters["filter"]; expr != "" {
		eval, err := filter.Compile(expr)
		if err != nil {
			return errorResponse(http.StatusBadRequest, "invalid filter expression")
		}
		keep = func(o storage.Object) (bool, error) {
			v, err := eval(ctx, map[string]any{
				"name":          o.Key,
				"size":          float64(o.Size),
				"last_modified": formatModified(o.LastModified),
			})
			if err != nil {
				return false, err
			}
			b, ok := v.(bool)
			if !ok {
				return false, errNonBoolean
			}
			return b, nil
		}
	}

	binaries := make([]binaryInfo, 0, len(objects))
	for _, o := range objects {
		ok, err := keep(o)
		if err != nil {
			return errorResponse(http.StatusBadRequest, "invalid filter expression")
		}
		if !ok {
			continue
		}
		binaries = append(binaries, binaryInfo{
			Name:         o.Key,
			Size:         o.Size,
			LastModified: formatModified(o.LastModified),
		})
	}

	resp := jsonResponse(http.StatusOK, listBody{
		Binaries:    binaries,
		DownloadURL: s.cfg.DownloadURL,
	})
	resp.Headers["Access-Control-Allow-Origin"] = "*"
	return resp
}

// formatModified renders a timestamp for the API, empty when the backend
// did not report one.
func formatModified(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
