// Package figure provides the canonical serialization format for snowflake
// curves.
//
// # Overview
//
// A [Figure] couples the vertex sequence of a generated (and possibly
// deformed) boundary with the parameters that produced it: the subdivision
// level and the name of the deformation map. The format is used for API
// responses, cache entries, archive storage, and file round-trips, and is
// designed so that export → re-import reproduces the curve exactly.
//
// # JSON Format
//
//	{
//	  "level": 1,
//	  "map": "exp",
//	  "points": [
//	    {"x": 0, "y": 0.5773502691896258},
//	    ...
//	  ]
//	}
//
// The points array carries the full closed sequence, including the repeated
// starting vertex at the end, so the count is always 3·4^level+1 regardless
// of deformation.
//
// # Metadata Keys
//
// The optional meta object can hold any data, but certain keys are
// recognized by the render pipeline:
//
//   - style: visual style name ("simple" or "handdrawn")
//   - seed: integer jitter seed for the handdrawn style
//   - title: caption rendered below the curve
//
// # Import and Export
//
// Use [ImportJSON] and [ExportJSON] for files, or [ReadJSON] and
// [WriteJSON] for arbitrary readers and writers. [Unmarshal] validates
// structural integrity on the way in; a [Figure] assembled by hand can be
// checked explicitly with [Figure.Validate].
package figure
