package curveview

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	"github.com/kochwerk/kochwerk/pkg/scene"
)

func decodePNG(t *testing.T, data []byte) (w, h int, at func(x, y int) (r, g, b uint32)) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), func(x, y int) (uint32, uint32, uint32) {
		r, g, b, _ := img.At(x, y).RGBA()
		return r >> 8, g >> 8, b >> 8
	}
}

func TestRenderPNGDimensions(t *testing.T) {
	data, err := RenderPNG(testScene(), WithScale(2))
	if err != nil {
		t.Fatalf("RenderPNG failed: %v", err)
	}
	w, h, _ := decodePNG(t, data)
	if w != 200 || h != 160 {
		t.Errorf("image = %dx%d, want 200x160", w, h)
	}
}

func TestRenderPNGColors(t *testing.T) {
	data, err := RenderPNG(testScene(), WithScale(2))
	if err != nil {
		t.Fatalf("RenderPNG failed: %v", err)
	}
	_, _, at := decodePNG(t, data)

	// Far corner: background white.
	if r, g, b := at(2, 2); r != 0xff || g != 0xff || b != 0xff {
		t.Errorf("corner pixel = #%02x%02x%02x, want background #ffffff", r, g, b)
	}
	// Center of the square: interior fill, away from any stroke.
	if r, g, b := at(100, 80); r != 0xe8 || g != 0xf1 || b != 0xfb {
		t.Errorf("center pixel = #%02x%02x%02x, want fill #e8f1fb", r, g, b)
	}
	// On the top edge midpoint: stroke color.
	if r, g, b := at(100, 30); r != 0x1d || g != 0x4e || b != 0xd8 {
		t.Errorf("edge pixel = #%02x%02x%02x, want stroke #1d4ed8", r, g, b)
	}
}

func TestRenderPNGPencilPalette(t *testing.T) {
	data, err := RenderPNG(testScene(), WithScale(1), WithPalette(PencilPalette()))
	if err != nil {
		t.Fatalf("RenderPNG failed: %v", err)
	}
	_, _, at := decodePNG(t, data)

	if r, g, b := at(1, 1); r != 0xfd || g != 0xfc || b != 0xf7 {
		t.Errorf("corner pixel = #%02x%02x%02x, want paper #fdfcf7", r, g, b)
	}
}

func TestRenderPNGDeterministic(t *testing.T) {
	a, err := RenderPNG(testScene(), WithPNGVertices(), WithPNGCaption("koch"))
	if err != nil {
		t.Fatalf("RenderPNG failed: %v", err)
	}
	b, err := RenderPNG(testScene(), WithPNGVertices(), WithPNGCaption("koch"))
	if err != nil {
		t.Fatalf("RenderPNG failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("identical inputs should produce identical PNG bytes")
	}
}

func TestRenderPNGRejectsEmptyScene(t *testing.T) {
	if _, err := RenderPNG(scene.Scene{Width: 10, Height: 10}); !errors.Is(err, scene.ErrEmptyScene) {
		t.Errorf("error = %v, want %v", err, scene.ErrEmptyScene)
	}
}

func TestRenderPNGRejectsZeroFrame(t *testing.T) {
	s := testScene()
	s.Width = 0
	if _, err := RenderPNG(s); !errors.Is(err, scene.ErrFrameTooSmall) {
		t.Errorf("error = %v, want %v", err, scene.ErrFrameTooSmall)
	}
}
