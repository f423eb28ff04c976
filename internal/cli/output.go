package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kochwerk/kochwerk/pkg/pipeline"
)

// nopCloser wraps an io.Writer with a no-op Close method so os.Stdout
// can stand in for a file.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path, or stdout when
// the path is empty. Files are created with 0644, overwriting.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// basePath derives the base output path from the output flag and the
// input file. An empty output strips the input's extension (and a
// trailing ".scene" or ".figure" marker); an output carrying a known
// format extension has that extension stripped.
func basePath(output, input string) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		base = strings.TrimSuffix(base, ".scene")
		return strings.TrimSuffix(base, ".figure")
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// artifactWriteParams bundles everything needed to write rendered
// artifacts to disk and report the result.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	output    string // output flag value
	input     string // input file path, used to derive a base
	vertices  int
	edges     int
	cacheHit  bool
}

// writeArtifacts writes each rendered format next to the input file (or
// under the output base) and prints a summary. A single format with an
// explicit output path is written exactly there.
func writeArtifacts(p artifactWriteParams) error {
	single := len(p.formats) == 1 && p.output != ""

	printSuccess("Render complete")
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}

		path := p.output
		if !single {
			path = basePath(p.output, p.input) + "." + format
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(p.vertices, p.edges, p.cacheHit)
	return nil
}
