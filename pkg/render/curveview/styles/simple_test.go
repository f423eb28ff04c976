package styles

import (
	"bytes"
	"strings"
	"testing"
)

func square(closed bool) Curve {
	pts := []Point{{0, 0}, {100, 0}, {100, 100}, {0, 100}}
	if closed {
		pts = append(pts, Point{0, 0})
	}
	return Curve{Points: pts, Closed: closed}
}

func TestSimpleRenderDefs(t *testing.T) {
	s := Simple{}
	var buf bytes.Buffer
	s.RenderDefs(&buf)

	// Simple style has no defs
	if buf.Len() != 0 {
		t.Errorf("RenderDefs() wrote %d bytes, want 0", buf.Len())
	}
}

func TestSimpleRenderBackground(t *testing.T) {
	s := Simple{}
	var buf bytes.Buffer
	s.RenderBackground(&buf, 640, 480)
	output := buf.String()

	for _, want := range []string{`<rect`, `width="640.0"`, `height="480.0"`, `fill="#ffffff"`} {
		if !strings.Contains(output, want) {
			t.Errorf("RenderBackground() output missing %q\nGot: %s", want, output)
		}
	}
}

func TestSimpleRenderCurve(t *testing.T) {
	s := Simple{}

	tests := []struct {
		name     string
		curve    Curve
		contains []string
	}{
		{
			name:  "closed curve uses Z instead of the repeated point",
			curve: square(true),
			contains: []string{
				`<path`,
				`M 0.00 0.00`,
				`L 100.00 0.00`,
				`L 0.00 100.00`,
				` Z"`,
				`stroke-linejoin="round"`,
			},
		},
		{
			name:  "open curve has no Z",
			curve: square(false),
			contains: []string{
				`M 0.00 0.00`,
				`L 0.00 100.00`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			s.RenderCurve(&buf, tt.curve)
			output := buf.String()

			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("RenderCurve() output missing %q\nGot: %s", want, output)
				}
			}
		})
	}

	t.Run("open curve really omits Z", func(t *testing.T) {
		var buf bytes.Buffer
		s.RenderCurve(&buf, square(false))
		if strings.Contains(buf.String(), "Z") {
			t.Errorf("open curve should not close the path\nGot: %s", buf.String())
		}
	})
}

func TestSimpleRenderCurveEmpty(t *testing.T) {
	s := Simple{}
	var buf bytes.Buffer
	s.RenderCurve(&buf, Curve{})
	if buf.Len() != 0 {
		t.Errorf("RenderCurve() on empty curve wrote %d bytes, want 0", buf.Len())
	}
}

func TestSimpleRenderVertices(t *testing.T) {
	s := Simple{}
	var buf bytes.Buffer
	s.RenderVertices(&buf, square(true))
	output := buf.String()

	// Four distinct corners: the repeated closing point draws no marker.
	if got := strings.Count(output, "<circle"); got != 4 {
		t.Errorf("RenderVertices() drew %d markers, want 4\nGot: %s", got, output)
	}
}

func TestSimpleRenderCaption(t *testing.T) {
	s := Simple{}
	var buf bytes.Buffer
	s.RenderCaption(&buf, Caption{Text: "level 3 <koch>", X: 320, Y: 460, Width: 640})
	output := buf.String()

	for _, want := range []string{`<text`, `x="320.0"`, `text-anchor="middle"`, `level 3 &lt;koch&gt;`} {
		if !strings.Contains(output, want) {
			t.Errorf("RenderCaption() output missing %q\nGot: %s", want, output)
		}
	}

	buf.Reset()
	s.RenderCaption(&buf, Caption{})
	if buf.Len() != 0 {
		t.Errorf("RenderCaption() with empty text wrote %d bytes, want 0", buf.Len())
	}
}
