package figure

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kochwerk/kochwerk/pkg/errors"
)

// WriteJSON encodes a figure as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(f Figure, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a figure from r and validates it.
//
// ReadJSON returns an error if the JSON is malformed, the level is
// negative, the point count does not match the level, or the point
// sequence fails curve validation. ReadJSON does not close r.
func ReadJSON(r io.Reader) (Figure, error) {
	var f Figure
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return Figure{}, fmt.Errorf("decode: %w", err)
	}
	if err := f.Validate(); err != nil {
		return Figure{}, err
	}
	return f, nil
}

// ExportJSON writes a figure to a JSON file at path via [WriteJSON].
func ExportJSON(f Figure, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()
	return WriteJSON(f, file)
}

// ImportJSON reads a JSON file at path and returns the validated figure.
// A missing file yields a coded error so callers can distinguish it from a
// corrupt one; other failures wrap the underlying cause with the path.
func ImportJSON(path string) (Figure, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Figure{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "figure file not found: %s", path)
		}
		return Figure{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	return ReadJSON(file)
}
