package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kochwerk/kochwerk/pkg/errors"
)

// WriteJSON encodes a scene as indented JSON and writes it to w.
func WriteJSON(s Scene, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a scene from r and validates it. ReadJSON does not
// close r.
func ReadJSON(r io.Reader) (Scene, error) {
	var s Scene
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Scene{}, fmt.Errorf("decode: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Scene{}, err
	}
	return s, nil
}

// ExportJSON writes a scene to a JSON file at path.
func ExportJSON(s Scene, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()
	return WriteJSON(s, file)
}

// ImportJSON reads a JSON file at path and returns the validated scene.
// A missing file yields a coded error so callers can distinguish it from a
// corrupt one; other failures wrap the underlying cause with the path.
func ImportJSON(path string) (Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Scene{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene file not found: %s", path)
		}
		return Scene{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	return ReadJSON(file)
}
