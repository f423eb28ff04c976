// Package fonts provides the font stacks used by the SVG renderers.
//
// The hand-drawn style prefers the xkcd-script handwriting font
// (https://github.com/ipython/xkcd-font) and degrades to common system
// handwriting fonts when it is not installed.
package fonts

// FontFamily is the CSS font-family name of the preferred handwriting font.
const FontFamily = "xkcd Script"

// FallbackFontFamily is the full stack for systems without the preferred font.
const FallbackFontFamily = `'xkcd Script', 'Comic Sans MS', 'Bradley Hand', 'Segoe Script', cursive`
