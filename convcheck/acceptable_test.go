// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convcheck

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestObjectiveHistory(t *testing.T) {
	stop := DefaultTermination()
	stop.AcceptableObjChangeTol = 0.5
	c := newChecker(t, Problem{Stop: stop})

	s := newFakeState().acceptable().at(0)
	require.False(t, c.CurrentIsAcceptable(s), "no history before the first iterate")

	require.True(t, c.CurrentIsAcceptable(s.at(1)))

	// a second test in the same iteration keeps the cached objective
	s.obj = 20
	require.True(t, c.CurrentIsAcceptable(s))
	require.Equal(t, 10.0, c.accept.curr)
	require.Equal(t, 10.0, c.accept.last)

	// |20 - 10| / 20 equals the tolerance
	require.True(t, c.CurrentIsAcceptable(s.at(2)))
	require.Equal(t, 0.5, c.accept.change())

	s.obj = 100
	require.False(t, c.CurrentIsAcceptable(s.at(3)))

	// the heuristic leaves the counter to the caller
	require.Zero(t, c.AcceptableCounter())
}

func TestObjectiveChangeSmallObjective(t *testing.T) {
	a := acceptance{}
	a.reset()
	a.record(0, 0.25)
	a.record(1, 0.5)
	require.Equal(t, 0.25, a.change(), "change is scaled by 𝚖𝚊𝚡(1, |f|)")

	a.record(1, 100)
	require.Equal(t, 0.5, a.curr)
}

func TestAcceptableBoundary(t *testing.T) {
	c := newChecker(t, Problem{Stop: DefaultTermination()})

	s := newFakeState().at(0)
	c.CurrentIsAcceptable(s)

	s.at(1)
	s.nlpError = 1e-6
	s.dualInf = 1e10
	s.constrViol = 1e-2
	s.complInf = 1e-2
	require.True(t, c.CurrentIsAcceptable(s))

	s.at(2).constrViol = math.Nextafter(1e-2, 1)
	require.False(t, c.CurrentIsAcceptable(s))
}

func TestRelax(t *testing.T) {
	tol := errorSet{overall: 1, dualInf: 2, constrViol: 3, complInf: 4}
	require.Equal(t, tol, tol.relax(false))

	r := tol.relax(true)
	require.Equal(t, 1.0, r.overall)
	require.Equal(t, 3.0, r.constrViol)
	require.True(t, math.IsInf(r.dualInf, 1))
	require.True(t, math.IsInf(r.complInf, 1))
	require.Equal(t, 2.0, tol.dualInf)
}

func TestWithin(t *testing.T) {
	require.True(t, within(1, 1))
	require.False(t, within(math.NaN(), 1))
	require.True(t, within(math.NaN(), math.Inf(1)))
	require.False(t, within(math.Inf(1), math.MaxFloat64))
}
