// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package linalg supplies the vector norms consumed by the convergence check.
package linalg

// Provider computes norms over dense vectors.
//
// Amax returns the infinity-norm 𝚖𝚊𝚡ᵢ |xᵢ| of x, or zero for an empty vector.
// A NaN component makes the result NaN.
type Provider interface {
	Amax(x []float64) float64
}
