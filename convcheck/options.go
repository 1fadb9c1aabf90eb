// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convcheck

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidOption is wrapped by every configuration error.
var ErrInvalidOption = errors.New("invalid option")

// Termination specifies the stopping criteria checked after every iteration.
// Measures are compared inclusively: a value equal to its threshold satisfies it.
type Termination struct {
	// Desired tolerance for the scaled overall optimality error.
	Tol float64 `yaml:"tol"`
	// The iteration stop when the iteration count reaches limit.
	MaxIterations int `yaml:"max_iter"`
	// The iteration stop when the CPU seconds spent in the solve exceed limit.
	// Values ≥ 999999 disable the limit.
	MaxCPUTime float64 `yaml:"max_cpu_time"`
	// Desired threshold for the max-norm of the unscaled dual infeasibility.
	DualInfTol float64 `yaml:"dual_inf_tol"`
	// Desired threshold for the max-norm of the unscaled constraint violation.
	ConstrViolTol float64 `yaml:"constr_viol_tol"`
	// Desired threshold for the max-norm of the unscaled complementarity.
	ComplInfTol float64 `yaml:"compl_inf_tol"`
	// Acceptable tolerance for the scaled overall optimality error.
	AcceptableTol float64 `yaml:"acceptable_tol"`
	// Number of consecutive acceptable iterates before terminating, 0 disables the heuristic.
	AcceptableIter int `yaml:"acceptable_iter"`
	// Acceptable threshold for the unscaled dual infeasibility.
	AcceptableDualInfTol float64 `yaml:"acceptable_dual_inf_tol"`
	// Acceptable threshold for the unscaled constraint violation.
	AcceptableConstrViolTol float64 `yaml:"acceptable_constr_viol_tol"`
	// Acceptable threshold for the unscaled complementarity.
	AcceptableComplInfTol float64 `yaml:"acceptable_compl_inf_tol"`
	// Acceptable threshold for the relative objective change:
	//   |fₖ - fₖ₋₁| / 𝚖𝚊𝚡(1, |fₖ|) ≤ 𝚝𝚘𝚕
	AcceptableObjChangeTol float64 `yaml:"acceptable_obj_change_tol"`
	// The iteration stop when 𝚖𝚊𝚡ᵢ |xᵢ| exceeds this value.
	DivergingIteratesTol float64 `yaml:"diverging_iterates_tol"`
	// Target barrier value the complementarity is measured against.
	MuTarget float64 `yaml:"mu_target"`
}

// DefaultTermination returns the stopping criteria with every option at its default.
func DefaultTermination() Termination {
	var t Termination
	for _, o := range registry {
		o.set(&t, o.Default)
	}
	return t
}

// OptionKind distinguishes integer from real valued options.
type OptionKind int

const (
	OptionInteger OptionKind = iota
	OptionNumber
)

func (k OptionKind) String() string {
	if k == OptionInteger {
		return "integer"
	}
	return "real"
}

// Option describes one recognized termination option.
type Option struct {
	Name        string
	Kind        OptionKind
	Lower       float64 // lower bound of the option
	Strict      bool    // whether the lower bound is excluded
	Default     float64
	Description string

	get func(*Termination) float64
	set func(*Termination, float64)
}

// Bound formats the lower bound as "≥0" or ">0".
func (o Option) Bound() string {
	if o.Strict {
		return fmt.Sprintf(">%g", o.Lower)
	}
	return fmt.Sprintf("≥%g", o.Lower)
}

// Value reads the option from t.
func (o Option) Value(t *Termination) float64 {
	return o.get(t)
}

func (o Option) check(v float64) error {
	switch {
	case math.IsNaN(v):
		return fmt.Errorf("%w: %s is NaN", ErrInvalidOption, o.Name)
	case o.Strict && v <= o.Lower:
		return fmt.Errorf("%w: %s must be greater than %g, got %g", ErrInvalidOption, o.Name, o.Lower, v)
	case !o.Strict && v < o.Lower:
		return fmt.Errorf("%w: %s must not be less than %g, got %g", ErrInvalidOption, o.Name, o.Lower, v)
	}
	return nil
}

func number(name string, lower float64, strict bool, def float64, desc string, f func(*Termination) *float64) Option {
	return Option{
		Name: name, Kind: OptionNumber,
		Lower: lower, Strict: strict, Default: def, Description: desc,
		get: func(t *Termination) float64 { return *f(t) },
		set: func(t *Termination, v float64) { *f(t) = v },
	}
}

func integer(name string, def int, desc string, f func(*Termination) *int) Option {
	return Option{
		Name: name, Kind: OptionInteger,
		Default: float64(def), Description: desc,
		get: func(t *Termination) float64 { return float64(*f(t)) },
		set: func(t *Termination, v float64) { *f(t) = int(v) },
	}
}

var registry = []Option{
	number("tol", zero, true, 1e-8,
		"Desired convergence tolerance (relative) for the scaled overall optimality error.",
		func(t *Termination) *float64 { return &t.Tol }),
	integer("max_iter", 3000,
		"Maximum number of iterations.",
		func(t *Termination) *int { return &t.MaxIterations }),
	number("max_cpu_time", zero, true, 1e6,
		"Maximum number of CPU seconds.",
		func(t *Termination) *float64 { return &t.MaxCPUTime }),
	number("dual_inf_tol", zero, false, 1,
		"Desired threshold for the dual infeasibility.",
		func(t *Termination) *float64 { return &t.DualInfTol }),
	number("constr_viol_tol", zero, false, 1e-4,
		"Desired threshold for the constraint violation.",
		func(t *Termination) *float64 { return &t.ConstrViolTol }),
	number("compl_inf_tol", zero, false, 1e-4,
		"Desired threshold for the complementarity conditions.",
		func(t *Termination) *float64 { return &t.ComplInfTol }),
	number("acceptable_tol", zero, false, 1e-6,
		"\"Acceptable\" convergence tolerance (relative).",
		func(t *Termination) *float64 { return &t.AcceptableTol }),
	integer("acceptable_iter", 15,
		"Number of \"acceptable\" iterates before triggering termination.",
		func(t *Termination) *int { return &t.AcceptableIter }),
	number("acceptable_dual_inf_tol", zero, false, 1e10,
		"\"Acceptance\" threshold for the dual infeasibility.",
		func(t *Termination) *float64 { return &t.AcceptableDualInfTol }),
	number("acceptable_constr_viol_tol", zero, false, 1e-2,
		"\"Acceptance\" threshold for the constraint violation.",
		func(t *Termination) *float64 { return &t.AcceptableConstrViolTol }),
	number("acceptable_compl_inf_tol", zero, false, 1e-2,
		"\"Acceptance\" threshold for the complementarity conditions.",
		func(t *Termination) *float64 { return &t.AcceptableComplInfTol }),
	number("acceptable_obj_change_tol", zero, false, 1e20,
		"\"Acceptance\" stopping criterion based on objective function change.",
		func(t *Termination) *float64 { return &t.AcceptableObjChangeTol }),
	number("diverging_iterates_tol", zero, false, 1e20,
		"Threshold for maximal value of primal iterates.",
		func(t *Termination) *float64 { return &t.DivergingIteratesTol }),
	number("mu_target", zero, false, zero,
		"Desired value of complementarity.",
		func(t *Termination) *float64 { return &t.MuTarget }),
}

// Options returns the recognized termination options in registration order.
func Options() []Option {
	return append([]Option(nil), registry...)
}

// Validate checks every option against its lower bound.
func (t *Termination) Validate() error {
	var errs []error
	for _, o := range registry {
		if err := o.check(o.get(t)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ParseTermination decodes YAML options on top of the defaults.
// Unknown keys are rejected.
func ParseTermination(data []byte) (Termination, error) {
	t := DefaultTermination()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return Termination{}, fmt.Errorf("%w: %v", ErrInvalidOption, err)
	}
	if err := t.Validate(); err != nil {
		return Termination{}, err
	}
	return t, nil
}

// LoadTermination reads YAML options from path, see ParseTermination.
func LoadTermination(path string) (Termination, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Termination{}, fmt.Errorf("read options: %w", err)
	}
	t, err := ParseTermination(data)
	if err != nil {
		return Termination{}, fmt.Errorf("parse options %s: %w", path, err)
	}
	return t, nil
}
