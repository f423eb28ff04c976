package curveview

import (
	"strings"
	"testing"

	"github.com/kochwerk/kochwerk/pkg/render/curveview/styles/handdrawn"
	"github.com/kochwerk/kochwerk/pkg/scene"
)

// testScene is a closed square fitted in a 100x80 frame.
func testScene() scene.Scene {
	return scene.Scene{
		Width:  100,
		Height: 80,
		Level:  1,
		Map:    "identity",
		Path: []scene.Point{
			{X: 15, Y: 15}, {X: 85, Y: 15}, {X: 85, Y: 65}, {X: 15, Y: 65}, {X: 15, Y: 15},
		},
	}
}

func TestRenderSVGStructure(t *testing.T) {
	out := string(RenderSVG(testScene()))

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.0 80.0" width="100" height="80">`,
		`<rect`,
		`<path`,
		` Z"`,
		"</svg>\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderSVG() output missing %q\nGot: %s", want, out)
		}
	}
}

func TestRenderSVGDefaultsToSimpleStyle(t *testing.T) {
	out := string(RenderSVG(testScene()))
	if !strings.Contains(out, `fill="#e8f1fb"`) {
		t.Errorf("default render should use the clean palette\nGot: %s", out)
	}
	if strings.Contains(out, "<circle") {
		t.Error("vertex markers should be off by default")
	}
	if strings.Contains(out, "<text") {
		t.Error("caption should be off by default")
	}
}

func TestRenderSVGWithVertices(t *testing.T) {
	out := string(RenderSVG(testScene(), WithVertices()))
	if got := strings.Count(out, "<circle"); got != 4 {
		t.Errorf("rendered %d vertex markers, want 4\nGot: %s", got, out)
	}
}

func TestRenderSVGWithCaption(t *testing.T) {
	out := string(RenderSVG(testScene(), WithCaption("koch level 1")))
	if !strings.Contains(out, ">koch level 1</text>") {
		t.Errorf("caption text missing\nGot: %s", out)
	}
}

func TestRenderSVGHanddrawnStyle(t *testing.T) {
	out := string(RenderSVG(testScene(), WithStyle(handdrawn.New(42))))
	if !strings.Contains(out, "Q ") {
		t.Errorf("hand-drawn render should emit bezier segments\nGot: %s", out)
	}

	again := string(RenderSVG(testScene(), WithStyle(handdrawn.New(42))))
	if out != again {
		t.Error("hand-drawn render should be deterministic for a fixed seed")
	}
}
