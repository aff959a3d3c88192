package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// compileTimeout bounds a single typesetting run. A hung engine is
// killed and its scratch directory removed.
const compileTimeout = 30 * time.Second

// latexmkArgs is the typesetting command line. Tests swap it out.
var latexmkArgs = []string{"latexmk", "-pdf", "-interaction=nonstopmode", "-halt-on-error", "main.tex"}

// CompileError reports a failed typesetting run with the tail of the
// engine's output for diagnosis.
type CompileError struct {
	Stdout string
	Stderr string
	Err    error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("latex compile failed: %v", e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

func tail(b []byte, n int) string {
	if len(b) > n {
		b = b[len(b)-n:]
	}
	return string(b)
}

// CompilePDF typesets the given .tex source in a private scratch
// directory and returns the PDF bytes. The directory is removed on
// every path, success or failure. The run is bounded by ctx and by
// compileTimeout, whichever expires first; on expiry the engine process
// is killed.
func CompilePDF(ctx context.Context, texSource []byte) ([]byte, error) {
	dir, err := os.MkdirTemp("", "seewee-tex-")
	if err != nil {
		return nil, fmt.Errorf("creating scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	if err := os.WriteFile(filepath.Join(dir, "main.tex"), texSource, 0o600); err != nil {
		return nil, fmt.Errorf("writing tex source: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, compileTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, latexmkArgs[0], latexmkArgs[1:]...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, &CompileError{
			Stdout: tail(stdout.Bytes(), 4000),
			Stderr: tail(stderr.Bytes(), 4000),
			Err:    err,
		}
	}

	pdf, err := os.ReadFile(filepath.Join(dir, "main.pdf"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &CompileError{
				Stdout: tail(stdout.Bytes(), 4000),
				Stderr: tail(stderr.Bytes(), 4000),
				Err:    errors.New("pdf not generated"),
			}
		}
		return nil, fmt.Errorf("reading pdf: %w", err)
	}
	return pdf, nil
}
