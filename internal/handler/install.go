package handler

import (
	"bytes"
	"context"
	"net/http"
	"text/template"

	"github.com/aws/aws-lambda-go/events"
)

// installScript is the self-detecting installer served by /install. It is
// meant to be piped straight into a shell; everything platform-specific
// happens client-side via uname.
var installScript = template.Must(template.New("install.sh").Parse(`#!/bin/bash
set -e

OS=$(uname -s | tr '[:upper:]' '[:lower:]')
ARCH=$(uname -m)

case $ARCH in
    x86_64) ARCH="amd64" ;;
    aarch64|arm64) ARCH="arm64" ;;
    *) echo "Unsupported architecture: $ARCH"; exit 1 ;;
esac

case $OS in
    darwin) OS="darwin" ;;
    linux) OS="linux" ;;
    *) echo "Unsupported OS: $OS"; exit 1 ;;
esac

echo "Downloading appinit for $OS/$ARCH..."

DOWNLOAD_URL="https://{{.Domain}}/{{.Stage}}/download?platform=$OS&arch=$ARCH"
curl -L -o appinit "$DOWNLOAD_URL"

chmod +x appinit

if [ -w "/usr/local/bin" ]; then
    mv appinit /usr/local/bin/
    echo "appinit installed to /usr/local/bin/appinit"
else
    echo "appinit downloaded to current directory"
    echo "To install globally, run: sudo mv appinit /usr/local/bin/"
fi

echo "Installation complete! Run 'appinit --help' to get started."
`))

// Install renders the installer script for the deployment the request came
// through. Domain and stage come from the gateway's routing context and
// default to local-development values when absent.
func (s *Service) Install(_ context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	domain := req.RequestContext.DomainName
	if domain == "" {
		domain = "localhost"
	}
	stage := req.RequestContext.Stage
	if stage == "" {
		stage = "dev"
	}

	var buf bytes.Buffer
	if err := installScript.Execute(&buf, struct{ Domain, Stage string }{domain, stage}); err != nil {
		s.log.Error("install script render failed", "error", err)
		return errorResponse(http.StatusInternalServerError, "internal error")
	}

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Content-Type":        "text/plain",
			"Content-Disposition": `attachment; filename="install.sh"`,
		},
		Body: buf.String(),
	}
}
