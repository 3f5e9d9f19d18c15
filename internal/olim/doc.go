// Package olim computes the quasi-potential of a planar drift field on a
// rectangular grid with the midpoint Ordered Line Integral Method (OLIM-M).
//
// The solver is a Dijkstra-like front propagation. Grid points move through
// the states Unknown, Considered, AcceptedFront and AcceptedInterior. The
// Considered point with the smallest tentative value is accepted next, and
// every Considered point within a disk of radius K (in grid cells) of it is
// re-estimated by
//
//   - a one-point update from the newly accepted point, and
//   - two-point updates over the segments joining the newly accepted point
//     to its accepted-front neighbours.
//
// The local cost along a segment x0 -> x1 is the midpoint-quadrature geometric
// action
//
//	S(x0, x1) = |b(m)| |x1 - x0| - b(m) . (x1 - x0),   m = (x0 + x1) / 2
//
// which is non-negative by Cauchy-Schwarz. The two-point update minimises the
// action over the segment by solving the stationarity condition with
// [rootfind.Hybrid].
//
// # Termination
//
// Propagation stops when the heap empties, when a point within Margin cells of
// the grid boundary is accepted, or when the accepted value reaches the
// Infinity sentinel. All three are normal outcomes reported in
// [Summary.Termination].
//
// # Complexity
//
// O(N K^2 log N) time for N grid points, O(N) memory. All buffers are
// allocated once by [New].
//
// # Thread Safety
//
// A Solver is owned by one goroutine. Separate solves need separate Solvers.
package olim
