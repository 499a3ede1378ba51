// Package analysis provides trace statistics for completed servo runs.
//
// The package characterizes how a run behaved from its recorded error
// and velocity histories:
//
//   - [DecayRate]: exponential convergence rate from a log-linear fit
//   - [SettlingTime]: time after which the error stays below a band
//   - [PeakVelocity]: largest commanded velocity component
//   - [Overshoot]: transient error growth relative to the start
//
// # Convergence Check
//
// A decay rate close to the configured gain means the control law is
// decoupling the error as designed:
//
//	rate := analysis.DecayRate(series.Times, series.Norms)
//	if rate < 0 {
//	    // error is growing, the run diverged
//	}
package analysis
