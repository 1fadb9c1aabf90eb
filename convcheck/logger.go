// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convcheck

import (
	"fmt"
	"io"
	"os"
)

// LogLevel controls the frequency and type of logger output
type LogLevel int

const (
	// LogNoop no output is generated (level < 0)
	LogNoop LogLevel = -1
	// LogLast print only the exit message of a terminal check
	LogLast LogLevel = 0
	// LogIter print also one line per iteration handed to the callback
	LogIter LogLevel = 1
	// LogDetailed print every measure next to its threshold on each check
	LogDetailed LogLevel = 2
)

// Logger handles logging output for the convergence check.
// Note the writers must be thread-safe.
type Logger struct {
	Level LogLevel
	Msg   io.Writer // Writer to output log messages.
	Out   io.Writer // Writer for per-iteration data.
}

func (l *Logger) enable(level LogLevel) bool {
	return l.Level >= level
}

func (l *Logger) log(format string, a ...any) {
	if len(a) > 0 {
		_, _ = fmt.Fprintf(l.Msg, format, a...)
	} else {
		_, _ = fmt.Fprint(l.Msg, format)
	}
}

func (l *Logger) out(format string, a ...any) {
	if len(a) > 0 {
		_, _ = fmt.Fprintf(l.Out, format, a...)
	} else {
		_, _ = fmt.Fprint(l.Out, format)
	}
}

func (l Logger) withDefaults() Logger {
	if l.Msg == nil {
		l.Msg = os.Stdout
	}
	if l.Out == nil {
		l.Out = os.Stderr
	}
	return l
}
