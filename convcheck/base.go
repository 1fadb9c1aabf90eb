// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convcheck

const (
	zero = 0.0
	one  = 1.0

	// max_cpu_time at or above this value disables the CPU time limit.
	cpuTimeSentinel = 999999.

	// objective value assumed before any iterate has been seen.
	objSentinel = -1e50
)

// Status is the outcome of one convergence check.
// Programs should not rely on the underlying numeric value.
type Status int

const (
	// Continue none of the termination criteria is met.
	Continue Status = iota
	// Converged the desired tolerances are satisfied.
	Converged
	// ConvergedToAcceptablePoint acceptable_iter consecutive iterates satisfied the acceptable tolerances.
	ConvergedToAcceptablePoint
	// MaxIterExceeded the iteration count reached max_iter.
	MaxIterExceeded
	// CPUTimeExceeded the CPU time spent in the solve exceeded max_cpu_time.
	CPUTimeExceeded
	// Diverging some component of the primal iterate exceeded diverging_iterates_tol.
	Diverging
	// UserStop the intermediate callback requested termination.
	UserStop
	// Failed the driver aborted the solve. Never returned by CheckConvergence.
	Failed
)

func (s Status) String() string {
	switch s {
	case Continue:
		return "Continue"
	case Converged:
		return "Converged"
	case ConvergedToAcceptablePoint:
		return "ConvergedToAcceptablePoint"
	case MaxIterExceeded:
		return "MaxIterExceeded"
	case CPUTimeExceeded:
		return "CPUTimeExceeded"
	case Diverging:
		return "Diverging"
	case UserStop:
		return "UserStop"
	case Failed:
		return "Failed"
	default:
		return "UnknownStatus"
	}
}

// Message returns the exit line reported for a terminal status.
func (s Status) Message() string {
	switch s {
	case Continue:
		return ""
	case Converged:
		return "EXIT: Optimal Solution Found."
	case ConvergedToAcceptablePoint:
		return "EXIT: Solved To Acceptable Level."
	case MaxIterExceeded:
		return "EXIT: Maximum Number of Iterations Exceeded."
	case CPUTimeExceeded:
		return "EXIT: Maximum CPU Time Exceeded."
	case Diverging:
		return "EXIT: Iterates diverging; problem might be unbounded."
	case UserStop:
		return "EXIT: Stopping optimization at current point as requested by user."
	case Failed:
		return "EXIT: Optimization aborted by the driver."
	default:
		return "EXIT: UNKNOWN STATUS"
	}
}

// OK reports whether the status is a (possibly qualified) success.
func (s Status) OK() bool {
	return s == Converged || s == ConvergedToAcceptablePoint
}

// Terminal reports whether the solver should stop.
func (s Status) Terminal() bool {
	return s != Continue
}
