// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import "math"

// Blas implements Provider with reference BLAS style loops.
// Inc is the stride between consecutive elements, values below 1 are treated as 1.
type Blas struct {
	Inc int
}

func (b Blas) Amax(x []float64) float64 {
	incx := max(b.Inc, 1)
	n := (len(x) + incx - 1) / incx
	if i := idamax(n, x, incx); i >= 0 {
		return math.Abs(x[i*incx])
	}
	return 0
}

// idamax finds the index of the first element having maximum absolute value.
// A NaN element wins over any number and is returned immediately.
func idamax(n int, dx []float64, incx int) int {
	if n < 1 || incx < 1 {
		return -1
	}
	if uint(incx*(n-1)) >= uint(len(dx)) {
		panic("bound check error")
	}
	if n == 1 {
		return 0
	}

	imax, dmax := 0, math.Abs(dx[0])
	if math.IsNaN(dmax) {
		return 0
	}
	ix := uint(incx)
	for i := 1; i < n; i++ {
		v := math.Abs(dx[ix])
		switch {
		case math.IsNaN(v):
			return i
		case v > dmax:
			imax, dmax = i, v
		}
		ix += uint(incx)
	}
	return imax
}
