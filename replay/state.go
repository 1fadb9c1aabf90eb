// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package replay

import (
	"strings"

	"github.com/curioloop/ipconv/linalg"
)

// recordState presents the current record of a trace as a convcheck.State.
type recordState struct {
	trace *Trace
	rec   *Record
	norm  linalg.Provider
	info  strings.Builder
}

func (s *recordState) load(r *Record) {
	s.rec = r
	s.info.Reset()
}

func (s *recordState) IterCount() int     { return s.rec.Iter }
func (s *recordState) X() []float64       { return s.rec.X }
func (s *recordState) NumEqualities() int { return s.trace.Equalities }

func (s *recordState) Direction() (dx, ds []float64, ok bool) {
	return s.rec.DX, s.rec.DS, s.rec.DX != nil && s.rec.DS != nil
}

func (s *recordState) Mu() float64              { return s.rec.Mu }
func (s *recordState) AlphaPrimal() float64     { return s.rec.AlphaPrimal }
func (s *recordState) AlphaDual() float64       { return s.rec.AlphaDual }
func (s *recordState) RegularizationX() float64 { return s.rec.Regularization }
func (s *recordState) LineSearchCount() int     { return s.rec.LSCount }

// CPUTimeStart is zero: record times are relative to the start of the solve.
func (s *recordState) CPUTimeStart() float64 { return 0 }

func (s *recordState) AppendInfo(m string) { s.info.WriteString(m) }

func (s *recordState) Objective() float64           { return s.rec.Objective }
func (s *recordState) UnscaledObjective() float64   { return s.rec.unscaledObjective() }
func (s *recordState) PrimalInfeasibility() float64 { return s.rec.InfPr }
func (s *recordState) DualInfeasibility() float64   { return s.rec.InfDu }
func (s *recordState) NLPError() float64            { return s.rec.NLPError }

func (s *recordState) UnscaledDualInfeasibility() float64   { return s.rec.dualInf() }
func (s *recordState) UnscaledConstraintViolation() float64 { return s.rec.constrViol() }

func (s *recordState) UnscaledComplementarity(muTarget float64) float64 {
	return s.rec.compl(s.norm, muTarget)
}

// cpuTime is the trace-driven clock handed to the checker.
func (s *recordState) cpuTime() float64 {
	if s.rec == nil {
		return 0
	}
	return s.rec.CPUTime
}
