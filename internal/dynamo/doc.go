// Package dynamo provides the core abstractions shared by the quasi-potential
// solver and the drift fields it runs on.
//
// The package defines the interfaces the rest of qpot is written against:
//
//   - [Field]: deterministic drift b(x) of a planar SDE dX = b(X)dt + sqrt(eps)dW
//   - [Exact]: a field whose quasi-potential is known in closed form
//   - [PointAttractor]: a field with a stable equilibrium to seed from
//   - [Metric]: an observer folded over accepted grid points
//   - [Configurable]: named float parameters settable from config files
//
// # Example
//
//	f := physics.NewLinear()
//	grid, _ := mesh.New(129, 129, -1, 1, -1, 1)
//	s, _ := olim.New(grid, f, olim.DefaultOptions())
//	_ = s.Seed(seeds)
//	res, _ := s.Run(ctx)
//
// # Thread Safety
//
// Fields are evaluated from a single goroutine per solve and must not be
// mutated while a solve is running. Independent solves may share a field
// value when its Drift method has no side effects, which holds for every
// field in the physics package. [ForEach] runs such solves concurrently.
package dynamo
