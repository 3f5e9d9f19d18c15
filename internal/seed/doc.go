// Package seed builds the initial Considered set of a solve: the grid points
// around a point attractor or along a closed attracting curve, together with
// their starting values.
//
// Starting values come from an [Initializer]. [Linearized] gives the exact
// local quadratic form near a stable equilibrium, [CurveDistance] a local
// estimate near a limit cycle.
package seed
