// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package replay drives a convergence check over a recorded solver run.
package replay

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/curioloop/ipconv/linalg"
)

// Trace is the recorded history of one interior-point solve.
type Trace struct {
	Name       string   `yaml:"name"`
	Equalities int      `yaml:"equalities"` // dimension of the equality multipliers
	Records    []Record `yaml:"records"`
}

// Record holds the quantities of one iteration.
// Unscaled measures default to their scaled counterpart when omitted.
type Record struct {
	Iter           int       `yaml:"iter"`
	X              []float64 `yaml:"x"`
	DX             []float64 `yaml:"dx,omitempty"`
	DS             []float64 `yaml:"ds,omitempty"`
	Mu             float64   `yaml:"mu"`
	AlphaPrimal    float64   `yaml:"alpha_primal"`
	AlphaDual      float64   `yaml:"alpha_dual"`
	Regularization float64   `yaml:"regularization"`
	LSCount        int       `yaml:"ls_count"`
	CPUTime        float64   `yaml:"cpu_time"` // CPU seconds since the solve started

	Objective         float64  `yaml:"objective"`
	UnscaledObjective *float64 `yaml:"unscaled_objective,omitempty"`
	InfPr             float64  `yaml:"inf_pr"`
	InfDu             float64  `yaml:"inf_du"`
	NLPError          float64  `yaml:"nlp_error"`
	DualInf           *float64 `yaml:"dual_inf,omitempty"`
	ConstrViol        *float64 `yaml:"constr_viol,omitempty"`
	// Compl is the complementarity measured against zero.
	Compl float64 `yaml:"compl"`
	// ComplProducts are the slack-multiplier products sᵢzᵢ. When present the
	// complementarity is measured against any target as 𝚖𝚊𝚡ᵢ |sᵢzᵢ - μ|.
	ComplProducts []float64 `yaml:"compl_products,omitempty"`
}

func (r *Record) unscaledObjective() float64 {
	if r.UnscaledObjective != nil {
		return *r.UnscaledObjective
	}
	return r.Objective
}

func (r *Record) dualInf() float64 {
	if r.DualInf != nil {
		return *r.DualInf
	}
	return r.InfDu
}

func (r *Record) constrViol() float64 {
	if r.ConstrViol != nil {
		return *r.ConstrViol
	}
	return r.InfPr
}

func (r *Record) compl(norm linalg.Provider, target float64) float64 {
	if len(r.ComplProducts) == 0 {
		return r.Compl
	}
	shifted := make([]float64, len(r.ComplProducts))
	for i, p := range r.ComplProducts {
		shifted[i] = p - target
	}
	return norm.Amax(shifted)
}

// Validate checks that the trace can be replayed.
func (t *Trace) Validate() error {
	if len(t.Records) == 0 {
		return errors.New("trace has no records")
	}
	if t.Equalities < 0 {
		return errors.New("equality count must not less than 0")
	}
	n := len(t.Records[0].X)
	for k, r := range t.Records {
		switch {
		case len(r.X) != n:
			return fmt.Errorf("record %d: iterate dimension %d, want %d", k, len(r.X), n)
		case k > 0 && r.Iter < t.Records[k-1].Iter:
			return fmt.Errorf("record %d: iteration %d goes backwards", k, r.Iter)
		case (r.DX == nil) != (r.DS == nil):
			return fmt.Errorf("record %d: dx and ds must be given together", k)
		case math.IsNaN(r.CPUTime) || r.CPUTime < 0:
			return fmt.Errorf("record %d: invalid cpu time %g", k, r.CPUTime)
		}
	}
	return nil
}

// ParseTrace decodes a YAML trace.
func ParseTrace(data []byte) (*Trace, error) {
	t := new(Trace)
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(t); err != nil {
		return nil, fmt.Errorf("decode trace: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadTrace reads a YAML trace from path.
func LoadTrace(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	return ParseTrace(data)
}
