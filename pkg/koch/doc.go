// Package koch generates Koch snowflake boundaries as closed polylines.
//
// # Overview
//
// The Koch snowflake is built by repeated refinement of an equilateral
// triangle. Each refinement step replaces every straight segment with four
// segments of one third the length, raising an outward-pointing equilateral
// bump over the middle third. After N steps the boundary consists of 3·4^N
// segments; the closed vertex sequence carries 3·4^N+1 points because the
// starting vertex is repeated at the end.
//
// # Construction
//
// Vertices live in the complex plane. For a segment from z1 to z2 the
// refinement emits
//
//	w1 = (2·z1 + z2) / 3
//	w3 = (z1 + 2·z2) / 3
//	w2 = (z1 + z2)/2 + i·(√3/2)·(w1 - w3)
//
// so the segment becomes z1 → w1 → w2 → w3 → z2. The bump direction follows
// from the traversal order of the base triangle, which [Base] fixes so that
// all bumps point away from the snowflake's center.
//
// # Basic Usage
//
// [Snowflake] produces the boundary at a given level in one call:
//
//	p, err := koch.Snowflake(4)
//
// [Subdivide] applies a single refinement step to any polyline, which is
// what the level-by-level growth animation and the measurement series build
// on. [VertexCount] and [EdgeCount] give the closed-form sizes without
// generating anything.
//
// # Limits
//
// Vertex counts grow by a factor of four per level, so [Snowflake] rejects
// levels beyond [MaxLevel] with [ErrLevelTooDeep]. At MaxLevel the boundary
// already carries about fifty million vertices; deeper levels add nothing
// visible at any practical output resolution.
package koch
