package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/dirgraph/pkg/render"
)

// fakeRenderer returns a fixed artifact per format and records its input.
type fakeRenderer struct {
	dot    []byte
	format render.Format
	err    error
}

func (f *fakeRenderer) Render(_ context.Context, dot []byte, format render.Format) ([]byte, error) {
	f.dot = dot
	f.format = format
	if f.err != nil {
		return nil, f.err
	}
	if format == render.FormatPNG {
		return []byte("\x89PNG"), nil
	}
	return []byte("<svg/>"), nil
}

// testCLI returns a CLI that logs nowhere and renders with fake.
func testCLI(fake *fakeRenderer) *CLI {
	c := New(io.Discard, LogInfo)
	c.renderer = fake
	return c
}

// testBase creates <base>/R/a.txt (10 bytes), <base>/R/S/b.txt (2000 bytes)
// and <base>/R/.git/config.
func testBase(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	for name, size := range map[string]int{
		"R/a.txt":       10,
		"R/S/b.txt":     2000,
		"R/.git/config": 5,
	} {
		p := filepath.Join(base, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, make([]byte, size), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return base
}

// writeConfig writes a config file into a temp dir and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), configFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
