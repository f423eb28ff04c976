package render

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// rsvgBinary is the external converter behind PDF export. SVG stays the
// canonical vector output; PDF is derived from it instead of being drawn
// a second time.
const rsvgBinary = "rsvg-convert"

// ToPDF converts rendered SVG bytes into a PDF document by piping them
// through rsvg-convert. librsvg provides the binary (apt install
// librsvg2-bin, brew install librsvg).
func ToPDF(svg []byte) ([]byte, error) {
	if _, err := exec.LookPath(rsvgBinary); err != nil {
		return nil, fmt.Errorf("pdf export needs %s from librsvg (apt install librsvg2-bin, brew install librsvg)", rsvgBinary)
	}

	cmd := exec.Command(rsvgBinary, "-f", "pdf")
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %v: %s", rsvgBinary, err, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}
