// Package analysis compares computed quasi-potentials with analytic solutions
// and estimates convergence across resolutions.
//
//   - [Compare]: maximum and root-mean-square error over accepted points
//   - [ConvergenceOrder]: observed order between two grid spacings
//   - [Sample]: an analytic potential evaluated on a grid
//
// # Example
//
//	rep := analysis.Compare(res.Grid, res.Values(), field.Potential)
//	fmt.Printf("errmax = %.4e, erms = %.4e\n", rep.ErrMax, rep.ERMS)
package analysis
