// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convcheck

import "time"

var processStart = time.Now()

func wallTime() float64 {
	return time.Since(processStart).Seconds()
}
