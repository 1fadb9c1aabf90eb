// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Gonum implements Provider on top of gonum floats.
type Gonum struct{}

func (Gonum) Amax(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	if floats.HasNaN(x) {
		return math.NaN()
	}
	return floats.Norm(x, math.Inf(1))
}
