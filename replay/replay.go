// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package replay

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/curioloop/ipconv/convcheck"
	"github.com/curioloop/ipconv/linalg"
)

// Result is the outcome of the convergence check at one record.
type Result struct {
	Iter    int
	Status  convcheck.Status
	Counter int    // acceptable counter after the check
	Info    string // markers appended to the iteration log
}

// Statistics summarizes the solve at the last checked record.
type Statistics struct {
	Iterations        int
	CPUTime           float64 // seconds
	Objective         float64
	UnscaledObjective float64
	DualInf           float64 // unscaled
	ConstrViol        float64 // unscaled
	Compl             float64 // unscaled, measured against mu_target
	NLPError          float64 // scaled
}

// Summary is the result of replaying a trace.
type Summary struct {
	RunID   uuid.UUID
	Name    string
	Status  convcheck.Status // Continue when the trace ended before termination
	Results []Result
	Statistics
}

// StopAt returns a callback requesting termination at iteration iter.
func StopAt(iter int) convcheck.Callback {
	return func(info *convcheck.IterInfo, _ convcheck.State) bool {
		return info.Iter != iter
	}
}

// Run replays the trace through a checker created from p.
// The clock of p is replaced by the CPU times recorded in the trace.
func Run(t *Trace, p convcheck.Problem, logger *convcheck.Logger) (*Summary, error) {

	if err := t.Validate(); err != nil {
		return nil, err
	}

	norm := p.Norm
	if norm == nil {
		norm = linalg.Gonum{}
	}

	state := &recordState{trace: t, norm: norm}
	p.Norm = norm
	p.Clock = state.cpuTime

	checker, err := p.New(logger)
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		RunID:   uuid.New(),
		Name:    t.Name,
		Status:  convcheck.Continue,
		Results: make([]Result, 0, len(t.Records)),
	}

	for k := range t.Records {
		state.load(&t.Records[k])
		status := checker.CheckConvergence(state, true)
		sum.Results = append(sum.Results, Result{
			Iter:    state.IterCount(),
			Status:  status,
			Counter: checker.AcceptableCounter(),
			Info:    state.info.String(),
		})
		sum.Status = status
		if status.Terminal() {
			break
		}
	}

	muTarget := checker.Termination().MuTarget
	sum.Statistics = Statistics{
		Iterations:        state.IterCount(),
		CPUTime:           state.cpuTime(),
		Objective:         state.Objective(),
		UnscaledObjective: state.UnscaledObjective(),
		DualInf:           state.UnscaledDualInfeasibility(),
		ConstrViol:        state.UnscaledConstraintViolation(),
		Compl:             state.UnscaledComplementarity(muTarget),
		NLPError:          state.NLPError(),
	}
	return sum, nil
}

// Write prints the per-iteration results followed by the solve statistics.
func (s *Summary) Write(w io.Writer) {
	p := func(format string, a ...any) { _, _ = fmt.Fprintf(w, format, a...) }

	p("Replay %s (run %s)\n\n", s.Name, s.RunID)
	p("iter  status                      acc  info\n")
	for _, r := range s.Results {
		p("%4d  %-26s %4d  %s\n", r.Iter, r.Status, r.Counter, r.Info)
	}

	p("\nNumber of Iterations....: %d\n\n", s.Iterations)
	p("                                   (scaled)                 (unscaled)\n")
	p("Objective...............: %24.16e  %24.16e\n", s.Objective, s.UnscaledObjective)
	p("Dual infeasibility......: %24s  %24.16e\n", "-", s.DualInf)
	p("Constraint violation....: %24s  %24.16e\n", "-", s.ConstrViol)
	p("Complementarity.........: %24s  %24.16e\n", "-", s.Compl)
	p("Overall NLP error.......: %24.16e  %24s\n", s.NLPError, "-")
	p("\nTotal CPU time: %s\n", formatSeconds(s.CPUTime))

	if s.Status.Terminal() {
		p("\n%s\n", s.Status.Message())
	} else {
		p("\nTRACE EXHAUSTED BEFORE TERMINATION\n")
	}
}

func formatSeconds(seconds float64) string {
	switch {
	case seconds >= 1:
		return fmt.Sprintf("%.2f s", seconds)
	case seconds >= 1e-3:
		return fmt.Sprintf("%.2f ms", seconds*1e3)
	case seconds >= 1e-6:
		return fmt.Sprintf("%.2f µs", seconds*1e6)
	default:
		return fmt.Sprintf("%.2f ns", seconds*1e9)
	}
}
