package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"derive from figure file", "", "snowflake.figure.json", "snowflake"},
		{"derive from scene file", "", "curve.scene.json", "curve"},
		{"derive from plain json", "", "curve.json", "curve"},
		{"derive without extension", "", "snowflake", "snowflake"},
		{"derive keeps directories", "", filepath.Join("out", "deep.scene.json"), filepath.Join("out", "deep")},
		{"output strips format extension", "art.svg", "ignored.json", "art"},
		{"output strips png extension", "art.png", "", "art"},
		{"output without extension kept", "art", "", "art"},
		{"output with unknown extension kept", "art.bak", "", "art.bak"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := basePath(tt.output, tt.input)
			if got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestWriteArtifactsMultipleFormats(t *testing.T) {
	dir := t.TempDir()

	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{
			"svg": []byte("<svg/>"),
			"png": []byte{0x89, 0x50},
		},
		formats:  []string{"svg", "png"},
		output:   "",
		input:    filepath.Join(dir, "curve.scene.json"),
		vertices: 13,
		edges:    12,
	})
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}

	for _, name := range []string{"curve.svg", "curve.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected artifact %s: %v", name, err)
		}
	}
}

func TestWriteArtifactsSingleFormatExactPath(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "exact.svg")

	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"svg": []byte("<svg/>")},
		formats:   []string{"svg"},
		output:    target,
		input:     "",
		vertices:  4,
		edges:     3,
	})
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("artifact not written to explicit path: %v", err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("artifact content = %q, want %q", data, "<svg/>")
	}
}

func TestWriteArtifactsSkipsMissingFormats(t *testing.T) {
	dir := t.TempDir()

	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"svg": []byte("<svg/>")},
		formats:   []string{"svg", "pdf"},
		output:    "",
		input:     filepath.Join(dir, "curve.json"),
	})
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "curve.pdf")); !os.IsNotExist(err) {
		t.Error("pdf file should not exist when the artifact is missing")
	}
}

func TestOpenOutputStdout(t *testing.T) {
	w, err := openOutput("")
	if err != nil {
		t.Fatalf("openOutput(\"\") error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("closing the stdout writer should be a no-op, got %v", err)
	}
}

func TestOpenOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	w, err := openOutput(path)
	if err != nil {
		t.Fatalf("openOutput(%q) error: %v", path, err)
	}
	if _, err := w.Write([]byte("{}")); err != nil {
		t.Fatalf("write error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back error: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("file content = %q, want %q", data, "{}")
	}
}
