package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// FigureKey identifies a generated figure by the parameters that
	// produced it: subdivision level and deformation map.
	FigureKey(level int, mapName string) string
	// SceneKey identifies a fitted scene by the content hash of its input
	// figure and the framing options.
	SceneKey(figureHash string, opts SceneKeyOpts) string
	// ArtifactKey identifies a rendered artifact by the content hash of its
	// input scene and the render options.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
	// MeasureKey identifies a measurement series by its maximum level.
	MeasureKey(maxLevel int) string
}

// SceneKeyOpts parameterizes scene cache keys. All fields participate in
// the key hash, so changing any of them produces a fresh scene.
type SceneKeyOpts struct {
	Width  float64
	Height float64
	Margin float64
}

// ArtifactKeyOpts parameterizes artifact cache keys.
type ArtifactKeyOpts struct {
	VizType  string
	Format   string
	Style    string
	Seed     int64
	Scale    float64
	Vertices bool
	Caption  bool
	Labels   bool
}

// DefaultKeyer derives keys of the form prefix:sha256(inputs). The stage
// prefix keeps figure, scene, artifact, and measure entries distinguishable
// when inspecting a backend by hand.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) FigureKey(level int, mapName string) string {
	return hashKey("figure", level, mapName)
}

func (DefaultKeyer) SceneKey(figureHash string, opts SceneKeyOpts) string {
	return hashKey("scene", figureHash, opts)
}

func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}

func (DefaultKeyer) MeasureKey(maxLevel int) string {
	return hashKey("measure", maxLevel)
}

// ScopedKeyer prefixes every key from an inner Keyer. Serve deployments
// that point several instances at one Redis give each its own prefix so
// the namespaces stay disjoint.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner (nil means the default keyer) so every
// generated key carries the given prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return ScopedKeyer{inner: inner, prefix: prefix}
}

func (k ScopedKeyer) FigureKey(level int, mapName string) string {
	return k.prefix + k.inner.FigureKey(level, mapName)
}

func (k ScopedKeyer) SceneKey(figureHash string, opts SceneKeyOpts) string {
	return k.prefix + k.inner.SceneKey(figureHash, opts)
}

func (k ScopedKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sceneHash, opts)
}

func (k ScopedKeyer) MeasureKey(maxLevel int) string {
	return k.prefix + k.inner.MeasureKey(maxLevel)
}

// hashKey builds prefix:sha256(json(parts)). JSON gives a stable encoding
// for the mixed int/string/struct key inputs without a custom scheme.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash returns the SHA-256 of data as a 64-character hex string. Stage
// outputs are hashed with this to become the next stage's key input.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
