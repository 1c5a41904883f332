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

// Package config holds the resolved configuration for a single run, built
// from cobra/pflag-parsed command-line flags by cmd/root.go. Kept as a
// separate package (rather than package-level vars in cmd, as the teacher's
// cmd package does) so internal/syncrun never needs to import cobra.
package config

import "github.com/pkg/errors"

// Run is the fully validated configuration for one invocation.
type Run struct {
	SourceRoot  string
	TargetRoot  string
	Threads     int
	PrintStats  bool
	MetricsAddr string // empty disables the metrics endpoint
}

// Validate applies the command-line usage checks from spec section 6; a
// failure here is reported with exit code 2 (usage error), distinct from the
// destination-missing check syncrun.Run performs at exit code 1.
func (r Run) Validate() error {
	if r.SourceRoot == "" || r.TargetRoot == "" {
		return errors.New("source and destination directories are both required")
	}
	if r.Threads < 0 {
		return errors.New("--threads must not be negative")
	}
	return nil
}
