package render

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/matzehuels/dirgraph/pkg/errors"
)

// DefaultRemoteURL is the hosted Graphviz endpoint used by [Remote].
const DefaultRemoteURL = "https://quickchart.io/graphviz"

// DefaultRemoteMaxBytes caps the size of a rendered image read from the
// service.
const DefaultRemoteMaxBytes = 64 << 20

// Remote renders through a hosted Graphviz service speaking the
// quickchart.io API: a JSON body {"graph": ..., "format": ...} answered
// with the image bytes. Requests are not retried.
type Remote struct {
	URL      string       // Endpoint (default DefaultRemoteURL)
	Client   *http.Client // HTTP client (default http.DefaultClient)
	MaxBytes int64        // Largest accepted response (default DefaultRemoteMaxBytes)
}

type remoteRequest struct {
	Graph  string `json:"graph"`
	Layout string `json:"layout"`
	Format string `json:"format"`
}

// Render implements [Renderer].
func (r Remote) Render(ctx context.Context, dot []byte, format Format) ([]byte, error) {
	if format != FormatSVG && format != FormatPNG {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %q", format)
	}

	body, err := json.Marshal(remoteRequest{Graph: string(dot), Layout: "dot", Format: string(format)})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode request")
	}

	url := r.URL
	if url == "" {
		url = DefaultRemoteURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client().Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errors.Wrap(errors.ErrCodeRender, err, "request %s", url)
	}
	defer resp.Body.Close()

	limit := r.MaxBytes
	if limit <= 0 {
		limit = DefaultRemoteMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "read response")
	}
	if resp.StatusCode != http.StatusOK {
		if int64(len(data)) > limit {
			data = data[:limit]
		}
		return nil, errors.New(errors.ErrCodeRender, "%s: status %d: %s", url, resp.StatusCode, bytes.TrimSpace(data))
	}
	if int64(len(data)) > limit {
		return nil, errors.New(errors.ErrCodeRender, "%s: response exceeds %d bytes", url, limit)
	}
	return data, nil
}

func (r Remote) client() *http.Client {
	if r.Client != nil {
		return r.Client
	}
	return http.DefaultClient
}
