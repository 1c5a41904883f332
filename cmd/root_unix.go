//go:build linux || darwin

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

package cmd

import (
	"math"
	"syscall"
)

// raiseFileDescriptorLimit raises the soft limit for file descriptors to one
// less than the hard limit. Scanning and copying concurrently open many
// files at once, and the default Linux soft limit is too low for a
// reasonably wide --threads value.
func raiseFileDescriptorLimit() (int, error) {
	var rlimit, zero syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rlimit); err != nil {
		return 0, err
	}
	if zero == rlimit {
		return 0, nil
	}
	set := rlimit
	set.Cur = set.Max - 1
	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &set); err != nil {
		// some platforms (macOS/BSD) report a hard limit they won't actually honor.
		return int(rlimit.Cur), nil
	}
	if set.Cur > math.MaxInt32 {
		return math.MaxInt32, nil
	}
	return int(set.Cur), nil
}

func init() {
	_, _ = raiseFileDescriptorLimit()
}
