package render

import (
	"bytes"
	"context"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/dirgraph/pkg/errors"
)

// Format is an output image format.
type Format string

// Supported output formats.
const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

// Renderer lays out DOT text and encodes the result as an image.
// Failures are returned as RENDER_ERROR.
type Renderer interface {
	Render(ctx context.Context, dot []byte, format Format) ([]byte, error)
}

// Graphviz renders in-process with the WebAssembly build of Graphviz.
type Graphviz struct{}

// Render implements [Renderer].
func (Graphviz) Render(ctx context.Context, dot []byte, format Format) ([]byte, error) {
	gvFormat, err := graphvizFormat(format)
	if err != nil {
		return nil, err
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(dot)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "render %s", format)
	}
	return buf.Bytes(), nil
}

func graphvizFormat(f Format) (graphviz.Format, error) {
	switch f {
	case FormatSVG:
		return graphviz.SVG, nil
	case FormatPNG:
		return graphviz.PNG, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %q", f)
}
