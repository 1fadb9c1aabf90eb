// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convcheck

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultTermination(t *testing.T) {
	want := Termination{
		Tol:                     1e-8,
		MaxIterations:           3000,
		MaxCPUTime:              1e6,
		DualInfTol:              1,
		ConstrViolTol:           1e-4,
		ComplInfTol:             1e-4,
		AcceptableTol:           1e-6,
		AcceptableIter:          15,
		AcceptableDualInfTol:    1e10,
		AcceptableConstrViolTol: 1e-2,
		AcceptableComplInfTol:   1e-2,
		AcceptableObjChangeTol:  1e20,
		DivergingIteratesTol:    1e20,
		MuTarget:                0,
	}
	require.Equal(t, want, DefaultTermination())
	require.NoError(t, want.Validate())
}

func TestOptionsRegistry(t *testing.T) {
	opts := Options()
	require.Len(t, opts, 14)

	def := DefaultTermination()
	seen := make(map[string]bool)
	for _, o := range opts {
		require.False(t, seen[o.Name], "duplicate option %s", o.Name)
		seen[o.Name] = true
		require.Equal(t, o.Default, o.Value(&def), o.Name)
		require.NotEmpty(t, o.Description, o.Name)
	}

	// mutating the returned slice must not affect the registry
	opts[0].Name = "changed"
	require.Equal(t, "tol", Options()[0].Name)
}

func TestOptionBound(t *testing.T) {
	for _, o := range Options() {
		switch o.Name {
		case "tol", "max_cpu_time":
			require.Equal(t, ">0", o.Bound(), o.Name)
		default:
			require.Equal(t, "≥0", o.Bound(), o.Name)
		}
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		modify func(*Termination)
		ok     bool
	}{
		{"zero tolerances", func(t *Termination) { t.DualInfTol, t.ComplInfTol, t.MuTarget = 0, 0, 0 }, true},
		{"zero iterations", func(t *Termination) { t.MaxIterations, t.AcceptableIter = 0, 0 }, true},
		{"zero tol", func(t *Termination) { t.Tol = 0 }, false},
		{"zero cpu time", func(t *Termination) { t.MaxCPUTime = 0 }, false},
		{"negative iterations", func(t *Termination) { t.MaxIterations = -1 }, false},
		{"negative tolerance", func(t *Termination) { t.ConstrViolTol = -1e-4 }, false},
		{"nan tolerance", func(t *Termination) { t.AcceptableTol = math.NaN() }, false},
		{"infinite threshold", func(t *Termination) { t.DivergingIteratesTol = math.Inf(1) }, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			stop := DefaultTermination()
			c.modify(&stop)
			err := stop.Validate()
			if c.ok {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrInvalidOption)
			}
		})
	}
}

func TestValidateReportsEveryOption(t *testing.T) {
	stop := DefaultTermination()
	stop.Tol = -1
	stop.MuTarget = -1
	err := stop.Validate()
	require.ErrorContains(t, err, "tol")
	require.ErrorContains(t, err, "mu_target")
}

func TestParseTermination(t *testing.T) {
	stop, err := ParseTermination([]byte(`
max_iter: 50
acceptable_iter: 0
mu_target: 1.0e-5
max_cpu_time: 60
`))
	require.NoError(t, err)

	want := DefaultTermination()
	want.MaxIterations = 50
	want.AcceptableIter = 0
	want.MuTarget = 1e-5
	want.MaxCPUTime = 60
	require.Equal(t, want, stop)

	stop, err = ParseTermination(nil)
	require.NoError(t, err)
	require.Equal(t, DefaultTermination(), stop)
}

func TestParseTerminationErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"unknown key":  "max_iterations: 10\n",
		"bad type":     "max_iter: many\n",
		"out of bound": "constr_viol_tol: -1\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseTermination([]byte(doc))
			require.ErrorIs(t, err, ErrInvalidOption)
		})
	}
}

func TestLoadTermination(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ipconv.yaml")
	require.NoError(t, os.WriteFile(path, []byte("acceptable_tol: 1.0e-4\n"), 0o600))

	stop, err := LoadTermination(path)
	require.NoError(t, err)
	require.Equal(t, 1e-4, stop.AcceptableTol)

	_, err = LoadTermination(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}
