// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convcheck

import "math"

// errorSet holds the four quantities of a termination test,
// either measured at an iterate or as the thresholds they are compared to.
type errorSet struct {
	overall    float64 // scaled overall optimality error
	dualInf    float64
	constrViol float64
	complInf   float64
}

// within reports whether v satisfies the threshold tol.
// A NaN never satisfies a threshold unless the criterion is disabled with +Inf.
func within(v, tol float64) bool {
	if math.IsInf(tol, 1) {
		return true
	}
	return !math.IsNaN(v) && v <= tol
}

func (e errorSet) within(tol errorSet) bool {
	return within(e.overall, tol.overall) &&
		within(e.dualInf, tol.dualInf) &&
		within(e.constrViol, tol.constrViol) &&
		within(e.complInf, tol.complInf)
}

// relax drops the dual infeasibility and complementarity criteria.
// A square system has no degrees of freedom left to optimize, so only feasibility matters.
func (e errorSet) relax(square bool) errorSet {
	if square {
		e.dualInf = math.Inf(1)
		e.complInf = math.Inf(1)
	}
	return e
}

// acceptance tracks the objective value across distinct iterations
// for the relative objective change of the acceptable point test.
type acceptance struct {
	last float64 // objective at the previous distinct iteration
	curr float64 // objective at iter
	iter int
}

func (a *acceptance) reset() {
	a.last = objSentinel
	a.curr = objSentinel
	a.iter = -1
}

// record shifts the history when a new iteration index is seen.
// Repeated calls within one iteration leave it untouched.
func (a *acceptance) record(iter int, obj float64) {
	if iter != a.iter {
		a.last = a.curr
		a.curr = obj
		a.iter = iter
	}
}

// change returns |fₖ - fₖ₋₁| / 𝚖𝚊𝚡(1, |fₖ|).
func (a *acceptance) change() float64 {
	return math.Abs(a.curr-a.last) / math.Max(one, math.Abs(a.curr))
}

// acceptableTol returns the acceptable thresholds in effect for this call.
func (c *Checker) acceptableTol(square bool) errorSet {
	return errorSet{
		overall:    c.stop.AcceptableTol,
		dualInf:    c.stop.AcceptableDualInfTol,
		constrViol: c.stop.AcceptableConstrViolTol,
		complInf:   c.stop.AcceptableComplInfTol,
	}.relax(square)
}

// CurrentIsAcceptable tests whether the current iterate satisfies the acceptable
// level of accuracy. It updates the objective history but never the acceptable counter.
func (c *Checker) CurrentIsAcceptable(s State) bool {
	return c.acceptable(s, c.measure(s), isSquare(s))
}

func (c *Checker) acceptable(s State, m errorSet, square bool) bool {
	c.accept.record(s.IterCount(), s.Objective())

	tol := c.acceptableTol(square)
	change := c.accept.change()

	if log := &c.logger; log.enable(LogDetailed) {
		log.log("Acceptable Check:\n")
		c.printErrors(m, tol)
		log.log("  curr_obj_val  = %23.16e   last_obj_val     = %23.16e\n", c.accept.curr, c.accept.last)
		log.log("  obj_change    = %23.16e   obj_change_tol   = %23.16e\n", change, c.stop.AcceptableObjChangeTol)
	}

	return m.within(tol) && within(change, c.stop.AcceptableObjChangeTol)
}
