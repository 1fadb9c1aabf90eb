// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package convcheck

import "golang.org/x/sys/unix"

// ProcessCPUTime returns the user CPU seconds consumed by the process.
func ProcessCPUTime() float64 {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return wallTime()
	}
	return float64(ru.Utime.Nano()) / 1e9
}
