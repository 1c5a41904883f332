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

// Package syncrun wires the copier, file copy pool, and directory scan pool
// into the single orchestrated run described in spec section 4.5. It is the
// one piece that owns the lifetime of both pools, mirroring how the
// teacher's jobsAdmin used to own the lifetime of an entire job's transfer
// and part-plan engines — here reduced to exactly the two pools this tool
// needs.
package syncrun

import (
	"os"

	"github.com/pkg/errors"

	"github.com/wastore/dirsync/common"
	"github.com/wastore/dirsync/internal/copier"
	"github.com/wastore/dirsync/internal/filepool"
	"github.com/wastore/dirsync/internal/scanpool"
	"github.com/wastore/dirsync/internal/stats"
)

// Options configures a single run.
type Options struct {
	SourceRoot string
	TargetRoot string
	Threads    int
}

// NewRunRegistry constructs an empty stats registry ahead of a call to
// RunWithRegistry. Split out from Run so a caller that wants to observe
// counters live (the --print-stats printer, the --metrics server) has
// something to hand those collaborators before the run starts.
func NewRunRegistry() *stats.Registry {
	return stats.New()
}

// Run executes one full synchronization pass and returns the final stats
// snapshot. Returns an error only for the fatal conditions spec section 7
// names (missing destination root); per-entry failures are logged and
// counted, never returned here.
func Run(opts Options, logger common.ILogger) (stats.Snapshot, error) {
	reg := NewRunRegistry()
	if err := RunWithRegistry(opts, logger, reg); err != nil {
		return stats.Snapshot{}, err
	}
	return reg.Snapshot(), nil
}

// RunWithRegistry is Run, but accumulating into a caller-supplied registry
// so collaborators started before the call (printer.Start, metricsserver.Start)
// observe live progress rather than only a final snapshot.
func RunWithRegistry(opts Options, logger common.ILogger, reg *stats.Registry) error {
	if fi, err := os.Stat(opts.TargetRoot); err != nil || !fi.IsDir() {
		return errors.Errorf("destination %q does not exist", opts.TargetRoot)
	}

	threads := common.ResolveThreadCount(opts.Threads)

	c := copier.New(copier.Options{})

	copyPool := filepool.New(threads, opts.SourceRoot, opts.TargetRoot, c, reg, logger)
	scanPool := scanpool.New(threads, opts.SourceRoot, opts.TargetRoot, c, copyPool, reg, logger)

	scanPool.EnqueueChecked("")
	scanPool.WaitQuiescent()
	copyPool.WaitQuiescent()

	return nil
}
