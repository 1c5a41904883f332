// Copyright © 2017 Microsoft <wastore@microsoft.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package common

import (
	"fmt"
	"os"
)

// ExitCode mirrors spec section 6: 0 on completion (even with per-entry
// errors), 1 if the destination root is missing at startup, 2 on usage
// errors.
type ExitCode int

const (
	EExitCode_Success         ExitCode = 0
	EExitCode_DestinationRoot ExitCode = 1
	EExitCode_UsageError      ExitCode = 2
)

// Lifecycle is the single choke point every exit path funnels through, the
// same role the teacher's lcm/glcm (common/lifecyleMgr.go) plays for azcopy:
// no package outside of this one calls os.Exit directly, so every exit is
// preceded by a consistent log line.
type Lifecycle struct {
	logger ILogger
}

func NewLifecycle(logger ILogger) *Lifecycle {
	return &Lifecycle{logger: logger}
}

// Exit logs msg (if non-empty) and terminates the process with code.
func (l *Lifecycle) Exit(msg string, code ExitCode) {
	if msg != "" {
		if code == EExitCode_Success {
			fmt.Println(msg)
		} else {
			fmt.Fprintln(os.Stderr, msg)
		}
		if l.logger != nil {
			level := LogInfo
			if code != EExitCode_Success {
				level = LogError
			}
			l.logger.Log(level, msg)
		}
	}
	os.Exit(int(code))
}
