package pipeline

import (
	"strings"
	"testing"

	"github.com/kochwerk/kochwerk/pkg/errors"
	"github.com/kochwerk/kochwerk/pkg/koch"
	"github.com/kochwerk/kochwerk/pkg/scene"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"simple", false},
		{"handdrawn", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateStyle(tt.style)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
	}
}

func TestValidateVizType(t *testing.T) {
	tests := []struct {
		vizType string
		wantErr bool
	}{
		{"curve", false},
		{"wire", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateVizType(tt.vizType)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateVizType(%q) error = %v, wantErr %v", tt.vizType, err, tt.wantErr)
		}
	}
}

func TestValidateMap(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"identity", false},
		{"exp", false},
		{"sin", false},
		{"reciprocal", false},
		{"bessel", false},
		{"spiral", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateMap(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateMap(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}

	if err := opts.ValidateForGenerate(); err != nil {
		t.Errorf("Valid options should pass: %v", err)
	}

	// Check defaults were set; level zero stays zero (the base triangle)
	if opts.Map != DefaultMap {
		t.Errorf("Map should be %s, got %s", DefaultMap, opts.Map)
	}
	if opts.Level != 0 {
		t.Errorf("Level should stay 0, got %d", opts.Level)
	}
}

func TestOptionsValidateForGenerate(t *testing.T) {
	// Negative level
	opts := Options{Level: -1}
	if err := opts.ValidateForGenerate(); !errors.Is(err, errors.ErrCodeInvalidLevel) {
		t.Errorf("Negative level should fail with INVALID_LEVEL, got %v", err)
	}

	// Level past the generator bound
	opts = Options{Level: koch.MaxLevel + 1}
	if err := opts.ValidateForGenerate(); !errors.Is(err, errors.ErrCodeInvalidLevel) {
		t.Errorf("Oversized level should fail with INVALID_LEVEL, got %v", err)
	}

	// Unknown map
	opts = Options{Level: 2, Map: "spiral"}
	if err := opts.ValidateForGenerate(); !errors.Is(err, errors.ErrCodeInvalidMap) {
		t.Errorf("Unknown map should fail with INVALID_MAP, got %v", err)
	}

	// Level past a configured operator cap
	opts = Options{Level: 5, MaxLevel: 3}
	if err := opts.ValidateForGenerate(); !errors.Is(err, errors.ErrCodeInvalidLevel) {
		t.Errorf("Level above operator cap should fail with INVALID_LEVEL, got %v", err)
	}

	// The same level passes without the cap
	opts = Options{Level: 5}
	if err := opts.ValidateForGenerate(); err != nil {
		t.Errorf("Level 5 without a cap should pass: %v", err)
	}
}

func TestLevelCap(t *testing.T) {
	tests := []struct {
		max  int
		want int
	}{
		{0, koch.MaxLevel},                 // unconfigured
		{-1, koch.MaxLevel},                // nonsense treated as unconfigured
		{3, 3},                             // tighter cap wins
		{koch.MaxLevel, koch.MaxLevel},     // equal to the hard cap
		{koch.MaxLevel + 5, koch.MaxLevel}, // cannot raise the hard cap
	}
	for _, tt := range tests {
		if got := LevelCap(tt.max); got != tt.want {
			t.Errorf("LevelCap(%d) = %d, want %d", tt.max, got, tt.want)
		}
	}
}

func TestOptionsIsCurve(t *testing.T) {
	opts := Options{}
	if !opts.IsCurve() {
		t.Error("Empty VizType should be curve")
	}

	opts.VizType = "curve"
	if !opts.IsCurve() {
		t.Error("curve VizType should be curve")
	}

	opts.VizType = "wire"
	if opts.IsCurve() {
		t.Error("wire VizType should not be curve")
	}
}

func TestOptionsIsWire(t *testing.T) {
	opts := Options{}
	if opts.IsWire() {
		t.Error("Empty VizType should not be wire")
	}

	opts.VizType = "wire"
	if !opts.IsWire() {
		t.Error("wire VizType should be wire")
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Level: 3}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalMap := opts.Map
	originalVizType := opts.VizType
	originalStyle := opts.Style

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.Map != originalMap {
		t.Error("Map changed on second call")
	}
	if opts.VizType != originalVizType {
		t.Error("VizType changed on second call")
	}
	if opts.Style != originalStyle {
		t.Error("Style changed on second call")
	}
}

func TestSetFitDefaults(t *testing.T) {
	opts := Options{}
	opts.SetFitDefaults()

	if opts.VizType != DefaultVizType {
		t.Errorf("VizType should be %s, got %s", DefaultVizType, opts.VizType)
	}
	if opts.Width != DefaultWidth {
		t.Errorf("Width should be %f, got %f", DefaultWidth, opts.Width)
	}
	if opts.Height != DefaultHeight {
		t.Errorf("Height should be %f, got %f", DefaultHeight, opts.Height)
	}
	if opts.Margin != DefaultMargin {
		t.Errorf("Margin should be %f, got %f", DefaultMargin, opts.Margin)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Style != DefaultStyle {
		t.Errorf("Style should be %s, got %s", DefaultStyle, opts.Style)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed should be %d, got %d", DefaultSeed, opts.Seed)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale should be %f, got %f", DefaultScale, opts.Scale)
	}
}

func TestArtifactKeyOptsCaption(t *testing.T) {
	opts := Options{Title: "flake"}
	if !opts.ArtifactKeyOpts("svg").Caption {
		t.Error("A title implies a caption in the artifact key")
	}

	opts = Options{Caption: true}
	if !opts.ArtifactKeyOpts("svg").Caption {
		t.Error("Caption flag should flow into the artifact key")
	}

	opts = Options{}
	if opts.ArtifactKeyOpts("svg").Caption {
		t.Error("No caption requested should leave the key flag unset")
	}
}

func TestGenerate(t *testing.T) {
	f, err := Generate(Options{Level: 2})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if f.Level != 2 {
		t.Errorf("Level = %d, want 2", f.Level)
	}
	if f.Map != DefaultMap {
		t.Errorf("Map = %q, want %q", f.Map, DefaultMap)
	}
	if want := 3*16 + 1; len(f.Points) != want {
		t.Errorf("Point count = %d, want %d", len(f.Points), want)
	}
	if err := f.Validate(); err != nil {
		t.Errorf("Generated figure should validate: %v", err)
	}
}

func TestGenerateDeformed(t *testing.T) {
	plain, err := Generate(Options{Level: 2})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	deformed, err := Generate(Options{Level: 2, Map: "exp"})
	if err != nil {
		t.Fatalf("Generate with map failed: %v", err)
	}

	if deformed.Map != "exp" {
		t.Errorf("Map = %q, want exp", deformed.Map)
	}
	if len(deformed.Points) != len(plain.Points) {
		t.Errorf("Deformation must preserve the vertex count: %d vs %d",
			len(deformed.Points), len(plain.Points))
	}

	same := true
	for i := range plain.Points {
		if plain.Points[i] != deformed.Points[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("exp map should move the vertices")
	}
}

func TestGenerateRejectsNegativeLevel(t *testing.T) {
	if _, err := Generate(Options{Level: -1}); !errors.Is(err, errors.ErrCodeInvalidLevel) {
		t.Errorf("Expected INVALID_LEVEL, got %v", err)
	}
}

func TestFit(t *testing.T) {
	f, err := Generate(Options{Level: 1})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	s, err := Fit(f, Options{})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if s.Width != DefaultWidth || s.Height != DefaultHeight {
		t.Errorf("Frame = %gx%g, want %gx%g", s.Width, s.Height, DefaultWidth, DefaultHeight)
	}
	if len(s.Path) != len(f.Points) {
		t.Errorf("Path length = %d, want %d", len(s.Path), len(f.Points))
	}
}

func TestFitStampsRenderSettings(t *testing.T) {
	f, err := Generate(Options{Level: 1})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	s, err := Fit(f, Options{Style: StyleSimple, Seed: 7, Title: "demo"})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if s.Style != StyleSimple {
		t.Errorf("Style = %q, want %q", s.Style, StyleSimple)
	}
	if s.Seed != 7 {
		t.Errorf("Seed = %d, want 7", s.Seed)
	}
	if s.Title != "demo" {
		t.Errorf("Title = %q, want demo", s.Title)
	}
}

func testCurveScene(t *testing.T) scene.Scene {
	t.Helper()
	f, err := Generate(Options{Level: 1})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	s, err := Fit(f, Options{})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	return s
}

func TestRenderSVG(t *testing.T) {
	s := testCurveScene(t)

	artifacts, err := Render(s, Options{Formats: []string{FormatSVG}})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	svg := string(artifacts[FormatSVG])
	if !strings.Contains(svg, "<svg") {
		t.Error("SVG artifact missing root element")
	}
	if !strings.Contains(svg, "<path") {
		t.Error("SVG artifact missing curve path")
	}
}

func TestRenderJSONRoundTrips(t *testing.T) {
	s := testCurveScene(t)

	artifacts, err := Render(s, Options{Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	parsed, err := scene.Unmarshal(artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("JSON artifact should parse back into a scene: %v", err)
	}
	if len(parsed.Path) != len(s.Path) {
		t.Errorf("Round trip lost path points: %d vs %d", len(parsed.Path), len(s.Path))
	}
}

func TestRenderRejectsDOTForCurve(t *testing.T) {
	s := testCurveScene(t)

	_, err := Render(s, Options{Formats: []string{FormatDOT}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("DOT for a curve scene should fail with INVALID_FORMAT, got %v", err)
	}
}

func TestRenderWireDOT(t *testing.T) {
	s := testCurveScene(t)

	artifacts, err := Render(s, Options{VizType: VizTypeWire, Formats: []string{FormatDOT}})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	dot := string(artifacts[FormatDOT])
	if !strings.Contains(dot, "graph curve {") {
		t.Error("DOT artifact missing graph header")
	}
	if !strings.Contains(dot, "pos=") {
		t.Error("DOT artifact should pin node positions")
	}
}

func TestRenderUsesSceneMetadata(t *testing.T) {
	s := testCurveScene(t)
	s.Style = StyleSimple
	s.Title = "stamped"

	artifacts, err := Render(s, Options{Formats: []string{FormatSVG}})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	svg := string(artifacts[FormatSVG])
	if !strings.Contains(svg, "stamped") {
		t.Error("Scene title should surface as the caption")
	}
	// The simple style draws straight segments, not quadratic wobble
	if strings.Contains(svg, " Q ") {
		t.Error("Stamped simple style should not produce wobbled output")
	}
}

func TestRenderExplicitStyleWinsOverScene(t *testing.T) {
	s := testCurveScene(t)
	s.Style = StyleSimple

	artifacts, err := Render(s, Options{Formats: []string{FormatSVG}, Style: StyleHanddrawn})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(string(artifacts[FormatSVG]), " Q ") {
		t.Error("Explicit handdrawn style should override the stamped one")
	}
}

func TestRenderFromSceneData(t *testing.T) {
	s := testCurveScene(t)
	data, err := scene.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	artifacts, err := RenderFromSceneData(data, Options{Formats: []string{FormatSVG}})
	if err != nil {
		t.Fatalf("RenderFromSceneData failed: %v", err)
	}
	if len(artifacts[FormatSVG]) == 0 {
		t.Error("Expected a non-empty SVG artifact")
	}

	if _, err := RenderFromSceneData([]byte("{"), Options{}); err == nil {
		t.Error("Broken scene data should fail")
	}
}

func TestCaptionText(t *testing.T) {
	s := scene.Scene{Level: 3, Map: "bessel"}

	if got := captionText(s, Options{Title: "custom"}); got != "custom" {
		t.Errorf("Title should win, got %q", got)
	}
	if got := captionText(s, Options{Caption: true}); got != "Koch snowflake, level 3, bessel map" {
		t.Errorf("Generated caption = %q", got)
	}
	if got := captionText(scene.Scene{Level: 0}, Options{Caption: true}); got != "Koch snowflake, level 0" {
		t.Errorf("Identity caption = %q", got)
	}
	if got := captionText(s, Options{}); got != "" {
		t.Errorf("No caption requested should yield empty text, got %q", got)
	}
}
