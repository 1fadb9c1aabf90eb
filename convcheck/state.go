// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convcheck

// Iterate exposes the solver data of the current iteration.
type Iterate interface {
	// IterCount returns the current iteration index.
	IterCount() int
	// X returns the current primal iterate.
	X() []float64
	// NumEqualities returns the dimension of the equality multipliers y_c.
	NumEqualities() int
	// Direction returns the primal and slack parts of the last search direction.
	// ok is false before the first direction has been computed.
	Direction() (dx, ds []float64, ok bool)
	// Mu returns the current barrier parameter.
	Mu() float64
	AlphaPrimal() float64
	AlphaDual() float64
	// RegularizationX returns the primal regularization used in the last step.
	RegularizationX() float64
	// LineSearchCount returns the number of trial points of the last line search.
	LineSearchCount() int
	// CPUTimeStart returns the CPU time, in seconds, at which the solve started.
	CPUTimeStart() float64
	// AppendInfo appends a marker to the info column of the iteration log.
	AppendInfo(s string)
}

// Measures exposes the error quantities computed at the current iterate.
// All infeasibilities are max-norms.
type Measures interface {
	// Objective returns the scaled objective value.
	Objective() float64
	UnscaledObjective() float64
	// PrimalInfeasibility returns the scaled primal infeasibility.
	PrimalInfeasibility() float64
	// DualInfeasibility returns the scaled dual infeasibility.
	DualInfeasibility() float64
	// NLPError returns the scaled overall optimality error.
	NLPError() float64
	UnscaledDualInfeasibility() float64
	UnscaledConstraintViolation() float64
	// UnscaledComplementarity returns the complementarity measured against muTarget.
	UnscaledComplementarity(muTarget float64) float64
}

// State is the optimization state consumed by the convergence check.
type State interface {
	Iterate
	Measures
}

// AlgorithmMode tells the callback which phase produced the iterate.
type AlgorithmMode int

const (
	RegularMode AlgorithmMode = iota
	RestorationMode
)

func (m AlgorithmMode) String() string {
	if m == RestorationMode {
		return "RestorationMode"
	}
	return "RegularMode"
}

// IterInfo is the iteration snapshot handed to the intermediate callback.
type IterInfo struct {
	Mode            AlgorithmMode
	Iter            int
	Objective       float64 // unscaled objective
	ScaledObjective float64
	InfPr           float64 // primal infeasibility
	InfDu           float64 // dual infeasibility
	Mu              float64
	DNorm           float64 // 𝚖𝚊𝚡(‖Δx‖∞, ‖Δs‖∞), zero before the first step
	RegSize         float64
	AlphaDual       float64
	AlphaPrimal     float64
	LSTrials        int
}

// Callback is invoked once per iteration before any termination test.
// Returning false requests the solver to stop.
type Callback func(info *IterInfo, s State) bool

// Clock returns the CPU time of the process in seconds.
type Clock func() float64
