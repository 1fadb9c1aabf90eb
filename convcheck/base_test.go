// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convcheck

import "testing"

func TestStatus(t *testing.T) {
	cases := []struct {
		status   Status
		name     string
		ok       bool
		terminal bool
	}{
		{Continue, "Continue", false, false},
		{Converged, "Converged", true, true},
		{ConvergedToAcceptablePoint, "ConvergedToAcceptablePoint", true, true},
		{MaxIterExceeded, "MaxIterExceeded", false, true},
		{CPUTimeExceeded, "CPUTimeExceeded", false, true},
		{Diverging, "Diverging", false, true},
		{UserStop, "UserStop", false, true},
		{Failed, "Failed", false, true},
	}

	for _, c := range cases {
		if got := c.status.String(); got != c.name {
			t.Fatalf("String: want %s, got %s", c.name, got)
		}
		if c.status.OK() != c.ok {
			t.Fatalf("%s: OK want %v", c.name, c.ok)
		}
		if c.status.Terminal() != c.terminal {
			t.Fatalf("%s: Terminal want %v", c.name, c.terminal)
		}
		if c.terminal && c.status.Message() == "" {
			t.Fatalf("%s: missing exit message", c.name)
		}
	}

	if Status(99).String() != "UnknownStatus" {
		t.Fatal("unregistered status must not alias a known one")
	}
}
