package render

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/matzehuels/dirgraph/pkg/errors"
)

// Exec renders by piping DOT text into an external Graphviz dot binary.
//
// Path is the location of the binary. When empty, "dot" is looked up on the
// current PATH; the process environment is never modified.
type Exec struct {
	Path string
}

// Render implements [Renderer].
func (r Exec) Render(ctx context.Context, dot []byte, format Format) ([]byte, error) {
	if format != FormatSVG && format != FormatPNG {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %q", format)
	}

	bin, err := r.binary()
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, bin, "-T"+string(format))
	cmd.Stdin = bytes.NewReader(dot)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errors.Wrap(errors.ErrCodeRender, err, "%s: %s", bin, strings.TrimSpace(errBuf.String()))
	}
	return out.Bytes(), nil
}

func (r Exec) binary() (string, error) {
	if r.Path != "" {
		return r.Path, nil
	}
	bin, err := exec.LookPath("dot")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeRender, err,
			"graphviz dot binary not found; set --dot-path or install Graphviz")
	}
	return bin, nil
}
