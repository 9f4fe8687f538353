package graph

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

var (
	// ErrRendererNotFound indicates the Graphviz dot binary is not on PATH
	ErrRendererNotFound = errors.New("graph: graphviz dot binary not found")

	// ErrInvalidFormat indicates an output format dot cannot be asked for
	ErrInvalidFormat = errors.New("graph: invalid output format")

	formatPattern = regexp.MustCompile(`^[a-z0-9]+(:[a-z0-9]+)*$`)
)

// Render runs Graphviz over a DOT file and returns the path of the image,
// which is the DOT path with the format appended (graph.gv → graph.gv.png).
func Render(ctx context.Context, dotPath, format string) (string, error) {
	if !formatPattern.MatchString(format) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}

	bin, err := exec.LookPath("dot")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRendererNotFound, err)
	}

	outPath := dotPath + "." + format
	cmd := exec.CommandContext(ctx, bin, "-T"+format, "-o", outPath, dotPath)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("dot exited with error: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return outPath, nil
}
