// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convcheck

import (
	"fmt"
	"math"

	"github.com/curioloop/ipconv/linalg"
)

// Problem specifies the collaborators of a convergence check.
type Problem struct {
	Stop     Termination     // Stop condition
	Mode     AlgorithmMode   // Mode reported to the callback
	Callback Callback        // Optional intermediate callback
	Norm     linalg.Provider // Optional norm provider, gonum by default
	Clock    Clock           // Optional CPU clock, ProcessCPUTime by default
}

// New creates a convergence check for the given problem.
func (p *Problem) New(logger *Logger) (checker *Checker, err error) {

	if logger == nil {
		logger = new(Logger)
		logger.Level = LogNoop
	}

	norm, clock := p.Norm, p.Clock
	if norm == nil {
		norm = linalg.Gonum{}
	}
	if clock == nil {
		clock = ProcessCPUTime
	}

	checker = &Checker{
		mode:     p.Mode,
		callback: p.Callback,
		norm:     norm,
		clock:    clock,
		logger:   logger.withDefaults(),
	}
	if err = checker.Initialize(p.Stop); err != nil {
		checker = nil
	}
	return
}

// Checker decides after every iteration whether the solver stops.
// It keeps the acceptable point counter and objective history of one solve,
// so separate checkers need to be created for concurrent solves.
type Checker struct {
	stop     Termination
	mode     AlgorithmMode
	callback Callback
	norm     linalg.Provider
	clock    Clock
	logger   Logger

	counter int
	accept  acceptance
}

// Initialize loads the stopping criteria and resets the state of the checker.
func (c *Checker) Initialize(stop Termination) error {
	if err := stop.Validate(); err != nil {
		return err
	}
	c.stop = stop
	c.counter = 0
	c.accept.reset()
	return nil
}

// Termination returns a copy of the configured stopping criteria.
func (c *Checker) Termination() Termination {
	return c.stop
}

// AcceptableCounter returns the number of consecutive acceptable iterates seen so far.
func (c *Checker) AcceptableCounter() int {
	return c.counter
}

// CheckConvergence tests the termination criteria at the current iterate.
// The intermediate callback is invoked first when callback is true.
func (c *Checker) CheckConvergence(s State, callback bool) Status {

	if callback {
		info := c.snapshot(s)
		c.printIter(&info)
		if c.callback != nil && !c.callback(&info, s) {
			return c.exit(UserStop)
		}
	}

	m := c.measure(s)
	square := isSquare(s)
	tol := c.desiredTol(square)

	if log := &c.logger; log.enable(LogDetailed) {
		log.log("Convergence Check:\n")
		c.printErrors(m, tol)
	}

	if m.within(tol) {
		return c.exit(Converged)
	}

	if c.stop.AcceptableIter > 0 && c.acceptable(s, m, square) {
		s.AppendInfo("A")
		c.counter++
		if c.counter >= c.stop.AcceptableIter {
			return c.exit(ConvergedToAcceptablePoint)
		}
	} else {
		c.counter = 0
	}

	if xMax := c.norm.Amax(s.X()); math.IsNaN(xMax) || xMax > c.stop.DivergingIteratesTol {
		return c.exit(Diverging)
	}

	if s.IterCount() >= c.stop.MaxIterations {
		return c.exit(MaxIterExceeded)
	}

	if c.stop.MaxCPUTime < cpuTimeSentinel && c.clock()-s.CPUTimeStart() > c.stop.MaxCPUTime {
		return c.exit(CPUTimeExceeded)
	}

	return Continue
}

func isSquare(s State) bool {
	return len(s.X()) == s.NumEqualities()
}

func (c *Checker) measure(s State) errorSet {
	return errorSet{
		overall:    s.NLPError(),
		dualInf:    s.UnscaledDualInfeasibility(),
		constrViol: s.UnscaledConstraintViolation(),
		complInf:   s.UnscaledComplementarity(c.stop.MuTarget),
	}
}

// desiredTol returns the desired thresholds in effect for this call.
func (c *Checker) desiredTol(square bool) errorSet {
	return errorSet{
		overall:    c.stop.Tol,
		dualInf:    c.stop.DualInfTol,
		constrViol: c.stop.ConstrViolTol,
		complInf:   c.stop.ComplInfTol,
	}.relax(square)
}

func (c *Checker) snapshot(s State) IterInfo {
	var dnrm float64
	if dx, ds, ok := s.Direction(); ok {
		dnrm = math.Max(c.norm.Amax(dx), c.norm.Amax(ds))
	}
	return IterInfo{
		Mode:            c.mode,
		Iter:            s.IterCount(),
		Objective:       s.UnscaledObjective(),
		ScaledObjective: s.Objective(),
		InfPr:           s.PrimalInfeasibility(),
		InfDu:           s.DualInfeasibility(),
		Mu:              s.Mu(),
		DNorm:           dnrm,
		RegSize:         s.RegularizationX(),
		AlphaDual:       s.AlphaDual(),
		AlphaPrimal:     s.AlphaPrimal(),
		LSTrials:        s.LineSearchCount(),
	}
}

func (c *Checker) exit(status Status) Status {
	if log := &c.logger; log.enable(LogLast) {
		log.log("\n%s\n", status.Message())
	}
	return status
}

func (c *Checker) printIter(info *IterInfo) {
	log := &c.logger
	if !log.enable(LogIter) {
		return
	}
	if info.Iter%10 == 0 {
		log.out("iter    objective    inf_pr   inf_du lg(mu)  ||d||  lg(rg) alpha_du alpha_pr  ls\n")
	}
	log.out("%4d  %14.7e %7.2e %7.2e %5.1f %7.2e %5s %7.2e %7.2e %3d\n",
		info.Iter, info.Objective, info.InfPr, info.InfDu, lg(info.Mu), info.DNorm,
		formatReg(info.RegSize), info.AlphaDual, info.AlphaPrimal, info.LSTrials)
}

func (c *Checker) printErrors(m, tol errorSet) {
	log := &c.logger
	log.log("  overall_error = %23.16e   tol              = %23.16e\n", m.overall, tol.overall)
	log.log("  dual_inf      = %23.16e   dual_inf_tol     = %23.16e\n", m.dualInf, tol.dualInf)
	log.log("  constr_viol   = %23.16e   constr_viol_tol  = %23.16e\n", m.constrViol, tol.constrViol)
	log.log("  compl_inf     = %23.16e   compl_inf_tol    = %23.16e\n", m.complInf, tol.complInf)
}

func lg(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}
	return math.Log10(v)
}

func formatReg(v float64) string {
	if v == 0 {
		return "-"
	}
	return fmt.Sprintf("%5.1f", lg(v))
}
