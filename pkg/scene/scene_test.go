package scene

import (
	stderrors "errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/kochwerk/kochwerk/pkg/errors"
	"github.com/kochwerk/kochwerk/pkg/figure"
	"github.com/kochwerk/kochwerk/pkg/koch"
)

func testFigure(t *testing.T, level int) figure.Figure {
	t.Helper()
	p, err := koch.Snowflake(level)
	if err != nil {
		t.Fatalf("Snowflake(%d) failed: %v", level, err)
	}
	return figure.FromPolyline(level, "identity", p)
}

func TestFitFrame(t *testing.T) {
	f := testFigure(t, 2)
	s, err := Fit(f, DefaultOptions())
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if s.Width != DefaultWidth || s.Height != DefaultHeight {
		t.Errorf("frame = %gx%g, want %gx%g", s.Width, s.Height, DefaultWidth, DefaultHeight)
	}
	if s.Level != 2 || s.Map != "identity" {
		t.Errorf("provenance = (%d, %q), want (2, identity)", s.Level, s.Map)
	}
	if len(s.Path) != koch.VertexCount(2) {
		t.Errorf("path has %d points, want %d", len(s.Path), koch.VertexCount(2))
	}
	if !s.IsClosed() {
		t.Error("fitted path should remain closed")
	}
}

func TestFitMarginRespected(t *testing.T) {
	f := testFigure(t, 3)
	opts := Options{Width: 640, Height: 480, Margin: 0.1}
	s, err := Fit(f, opts)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	minX, minY := opts.Width*opts.Margin, opts.Height*opts.Margin
	maxX, maxY := opts.Width-minX, opts.Height-minY
	const eps = 1e-9
	for i, pt := range s.Path {
		if pt.X < minX-eps || pt.X > maxX+eps || pt.Y < minY-eps || pt.Y > maxY+eps {
			t.Fatalf("point %d = (%g, %g) outside margin box [%g,%g]x[%g,%g]",
				i, pt.X, pt.Y, minX, maxX, minY, maxY)
		}
	}
}

func TestFitUniformScale(t *testing.T) {
	f := testFigure(t, 1)
	s, err := Fit(f, DefaultOptions())
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// Every curve segment has world length 1/3 at level 1, so every canvas
	// segment must come out the same length.
	dist := func(a, b Point) float64 {
		return math.Hypot(b.X-a.X, b.Y-a.Y)
	}
	first := dist(s.Path[0], s.Path[1])
	for i := 1; i < len(s.Path)-1; i++ {
		d := dist(s.Path[i], s.Path[i+1])
		if math.Abs(d-first) > 1e-9 {
			t.Fatalf("segment %d length %g differs from %g: scaling is not uniform", i, d, first)
		}
	}
}

func TestFitFlipsY(t *testing.T) {
	f := testFigure(t, 0)
	s, err := Fit(f, DefaultOptions())
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// The triangle's apex has the largest world Y and must land above
	// (smaller canvas Y than) the base vertices.
	apex, left := s.Path[0], s.Path[1]
	if apex.Y >= left.Y {
		t.Errorf("apex canvas Y = %g, base vertex Y = %g: Y axis was not flipped", apex.Y, left.Y)
	}
}

func TestFitCentersCurve(t *testing.T) {
	f := testFigure(t, 2)
	s, err := Fit(f, DefaultOptions())
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, pt := range s.Path {
		minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
		minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
	}
	if lo, hi := minX, s.Width-maxX; math.Abs(lo-hi) > 1e-9 {
		t.Errorf("horizontal slack %g vs %g: curve not centered", lo, hi)
	}
	if lo, hi := minY, s.Height-maxY; math.Abs(lo-hi) > 1e-9 {
		t.Errorf("vertical slack %g vs %g: curve not centered", lo, hi)
	}
}

func TestFitCarriesMeta(t *testing.T) {
	f := testFigure(t, 1)
	f.Meta = map[string]any{
		figure.MetaStyle: "handdrawn",
		figure.MetaSeed:  int64(7),
		figure.MetaTitle: "level one",
	}
	s, err := Fit(f, DefaultOptions())
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if s.Style != "handdrawn" || s.Seed != 7 || s.Title != "level one" {
		t.Errorf("meta = (%q, %d, %q), want (handdrawn, 7, level one)", s.Style, s.Seed, s.Title)
	}
}

func TestFitSeedFromJSONNumber(t *testing.T) {
	// Figures read back from JSON files hold numbers as float64.
	f := testFigure(t, 0)
	f.Meta = map[string]any{figure.MetaSeed: float64(42)}
	s, err := Fit(f, DefaultOptions())
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if s.Seed != 42 {
		t.Errorf("seed = %d, want 42", s.Seed)
	}
}

func TestFitRejectsBadOptions(t *testing.T) {
	f := testFigure(t, 0)
	tests := []struct {
		name    string
		opts    Options
		wantErr error
	}{
		{"ZeroWidth", Options{Width: 0, Height: 100, Margin: 0.1}, ErrFrameTooSmall},
		{"NegativeHeight", Options{Width: 100, Height: -1, Margin: 0.1}, ErrFrameTooSmall},
		{"MarginHalf", Options{Width: 100, Height: 100, Margin: 0.5}, ErrMarginTooLarge},
		{"NegativeMargin", Options{Width: 100, Height: 100, Margin: -0.01}, ErrMarginTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Fit(f, tt.opts); !stderrors.Is(err, tt.wantErr) {
				t.Errorf("Fit error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFitRejectsBrokenFigure(t *testing.T) {
	f := testFigure(t, 1)
	f.Points = f.Points[:len(f.Points)-1] // no longer closed
	if _, err := Fit(f, DefaultOptions()); err == nil {
		t.Error("expected error for unclosed figure")
	}
}

func TestSceneRoundTrip(t *testing.T) {
	f := testFigure(t, 2)
	s, err := Fit(f, Options{Width: 640, Height: 480, Margin: 0.08})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	s.Style = "simple"
	s.Title = "snowflake"

	data, err := Marshal(s)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if got.Width != s.Width || got.Height != s.Height || got.Margin != s.Margin {
		t.Errorf("frame changed in round trip: got %+v", got)
	}
	if got.Level != s.Level || got.Style != s.Style || got.Title != s.Title {
		t.Errorf("metadata changed in round trip: got %+v", got)
	}
	if len(got.Path) != len(s.Path) {
		t.Fatalf("path length = %d, want %d", len(got.Path), len(s.Path))
	}
	for i := range got.Path {
		if got.Path[i] != s.Path[i] {
			t.Fatalf("path[%d] = %v, want %v", i, got.Path[i], s.Path[i])
		}
	}
}

func TestUnmarshalRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"EmptyPath", `{"width": 100, "height": 100, "level": 0, "path": []}`, ErrEmptyScene},
		{"ZeroFrame", `{"width": 0, "height": 100, "level": 0, "path": [{"x": 1, "y": 2}]}`, ErrFrameTooSmall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Unmarshal([]byte(tt.data)); !stderrors.Is(err, tt.wantErr) {
				t.Errorf("Unmarshal error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("Garbage", func(t *testing.T) {
		if _, err := Unmarshal([]byte("not json")); err == nil {
			t.Error("expected error for malformed JSON")
		}
	})
}

func TestFileRoundTrip(t *testing.T) {
	s, err := Fit(testFigure(t, 1), DefaultOptions())
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	path := filepath.Join(t.TempDir(), "scene.json")

	if err := ExportJSON(s, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if got.Level != s.Level || len(got.Path) != len(s.Path) {
		t.Errorf("file round-trip mismatch: level=%d path=%d", got.Level, len(got.Path))
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("ImportJSON should fail for missing file")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error should carry the file-not-found code: %v", err)
	}
	if !stderrors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist: %v", err)
	}
}
