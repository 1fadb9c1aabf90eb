// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convcheck

import "strings"

// fakeState is a State whose every quantity is set directly by the test.
type fakeState struct {
	iter   int
	x      []float64
	neq    int
	dx, ds []float64

	mu, alphaPr, alphaDu, regu float64
	lsCount                    int
	cpuStart                   float64

	obj, unscaledObj float64
	infPr, infDu     float64
	nlpError         float64
	dualInf          float64
	constrViol       float64
	complInf         float64

	muTarget float64 // last target passed to UnscaledComplementarity
	info     strings.Builder
}

// newFakeState returns a 3 variable, 1 equality problem far from convergence.
func newFakeState() *fakeState {
	return &fakeState{
		x:          []float64{1, -2, 3},
		neq:        1,
		mu:         0.1,
		obj:        10,
		nlpError:   1,
		dualInf:    10,
		constrViol: 1,
		complInf:   1,
	}
}

// converged sets every error measure well below the default desired tolerances.
func (f *fakeState) converged() *fakeState {
	f.nlpError, f.dualInf, f.constrViol, f.complInf = 1e-10, 1e-10, 1e-10, 1e-10
	return f
}

// acceptable sets the error measures between the desired and acceptable defaults.
func (f *fakeState) acceptable() *fakeState {
	f.nlpError, f.dualInf, f.constrViol, f.complInf = 1e-7, 1e-3, 1e-3, 1e-3
	return f
}

func (f *fakeState) at(iter int) *fakeState {
	f.iter = iter
	return f
}

func (f *fakeState) IterCount() int { return f.iter }
func (f *fakeState) X() []float64   { return f.x }
func (f *fakeState) NumEqualities() int {
	return f.neq
}
func (f *fakeState) Direction() ([]float64, []float64, bool) {
	return f.dx, f.ds, f.dx != nil && f.ds != nil
}
func (f *fakeState) Mu() float64              { return f.mu }
func (f *fakeState) AlphaPrimal() float64     { return f.alphaPr }
func (f *fakeState) AlphaDual() float64       { return f.alphaDu }
func (f *fakeState) RegularizationX() float64 { return f.regu }
func (f *fakeState) LineSearchCount() int     { return f.lsCount }
func (f *fakeState) CPUTimeStart() float64    { return f.cpuStart }
func (f *fakeState) AppendInfo(s string)      { f.info.WriteString(s) }

func (f *fakeState) Objective() float64           { return f.obj }
func (f *fakeState) UnscaledObjective() float64   { return f.unscaledObj }
func (f *fakeState) PrimalInfeasibility() float64 { return f.infPr }
func (f *fakeState) DualInfeasibility() float64   { return f.infDu }
func (f *fakeState) NLPError() float64            { return f.nlpError }
func (f *fakeState) UnscaledDualInfeasibility() float64 {
	return f.dualInf
}
func (f *fakeState) UnscaledConstraintViolation() float64 {
	return f.constrViol
}
func (f *fakeState) UnscaledComplementarity(muTarget float64) float64 {
	f.muTarget = muTarget
	return f.complInf
}
