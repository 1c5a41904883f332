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
	"io"
	"log"
	"os"
	"sync"
)

// LogLevel mirrors the small closed set of severities the run loop and its
// workers need. Kept as a plain const block rather than generated enum code:
// at this size a generator buys nothing.
type LogLevel uint8

const (
	LogNone LogLevel = iota
	LogError
	LogWarning
	LogInfo
	LogDebug
)

func (l LogLevel) String() string {
	switch l {
	case LogError:
		return "ERROR"
	case LogWarning:
		return "WARN"
	case LogInfo:
		return "INFO"
	case LogDebug:
		return "DEBUG"
	default:
		return "NONE"
	}
}

// ILogger is the logging surface handed to every worker. Workers never write
// to stdout/stderr directly except for the intentional --print-stats output.
type ILogger interface {
	ShouldLog(level LogLevel) bool
	Log(level LogLevel, msg string)
}

// runLogger is a minimal leveled logger writing structured lines to a single
// io.Writer. Adapted from the teacher's jobLogger (common/logger.go), stripped
// of job-plan file rotation and Azure-SDK-specific read-retry loggers, neither
// of which has any analog in a local-to-local sync tool.
type runLogger struct {
	mu       sync.Mutex
	minLevel LogLevel
	out      io.Writer
	logger   *log.Logger
}

// NewLogger builds a logger writing to w at minLevel. Passing a nil w defaults
// to os.Stderr, matching the teacher's practice of always having somewhere to
// write even before a job-specific log file is opened.
func NewLogger(minLevel LogLevel, w io.Writer) ILogger {
	if w == nil {
		w = os.Stderr
	}
	return &runLogger{
		minLevel: minLevel,
		out:      w,
		logger:   log.New(w, "", log.LstdFlags|log.LUTC),
	}
}

func (l *runLogger) ShouldLog(level LogLevel) bool {
	if level == LogNone {
		return false
	}
	return level <= l.minLevel
}

func (l *runLogger) Log(level LogLevel, msg string) {
	if !l.ShouldLog(level) {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.Println(level.String()+":", msg)
}

// causer is implemented by github.com/pkg/errors-wrapped errors.
type causer interface {
	Cause() error
}

// Cause walks all the preceding errors and returns the originating error, the
// same helper the teacher exposes in common/logger.go for classifying wrapped
// syscall errors (e.g. against os.IsNotExist) without losing the wrap chain
// used for logging.
func Cause(err error) error {
	for err != nil {
		cause, ok := err.(causer)
		if !ok {
			break
		}
		err = cause.Cause()
	}
	return err
}
