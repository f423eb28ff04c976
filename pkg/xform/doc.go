// Package xform applies pointwise analytic maps to curve vertices.
//
// # Overview
//
// A deformed snowflake is produced by running every boundary vertex through
// a complex-valued function and connecting the images with straight segments
// again. Because the maps are analytic (conformal away from their poles),
// fine boundary detail survives the deformation: angles between tiny
// segments are preserved even as the overall shape bends.
//
// # Registry
//
// The package ships a fixed registry of named maps - [Identity], [Exp],
// [Sin], [Reciprocal], and [Bessel] - listed in [All] and resolvable by name
// via [Find]. CLI and API layers accept the registry names ("identity",
// "exp", ...) and resolve them here.
//
// # Poles
//
// [Reciprocal] has a pole at the origin. Vertices within [PoleGuard] of a
// pole are rejected with [ErrNearPole] instead of producing astronomically
// large coordinates. Snowflake boundary vertices always stay at least the
// triangle apothem (≈0.289) away from the origin, so the guard only fires
// for arbitrary caller-supplied curves.
package xform
