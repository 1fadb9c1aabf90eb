// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !unix

package convcheck

// ProcessCPUTime falls back to the wall time elapsed since the process started.
func ProcessCPUTime() float64 {
	return wallTime()
}
