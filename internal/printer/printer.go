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

// Package printer implements the --print-stats background reporter (spec
// section 6 and section 9's "statistics printer ... specified as an external
// collaborator reading the stats registry"). Modeled on the teacher's
// ste/xferStatsTracker.go periodic-snapshot loop, trimmed to the eight
// counters this tool exposes and formatted with dustin/go-humanize the same
// way the teacher formats transferred byte counts for human consumption.
package printer

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/wastore/dirsync/internal/stats"
)

// interval is the snapshot cadence spec section 6 names.
const interval = 10 * time.Second

// headerEvery is how many snapshot lines pass between repeated header lines.
const headerEvery = 30

const headerLine = "   scanned   skipped     queued    copied    copied_bytes   removed  removed_bytes    errors"

// Printer periodically writes a formatted stats snapshot to w.
type Printer struct {
	reg    *stats.Registry
	w      io.Writer
	done   chan struct{}
	ticker *time.Ticker
}

// Start begins printing snapshots of reg to w every 10 seconds, with a
// header line repeated every 30 snapshots, until Stop is called.
func Start(reg *stats.Registry, w io.Writer) *Printer {
	p := &Printer{
		reg:    reg,
		w:      w,
		done:   make(chan struct{}),
		ticker: time.NewTicker(interval),
	}
	go p.loop()
	return p
}

func (p *Printer) loop() {
	count := 0
	for {
		select {
		case <-p.done:
			return
		case <-p.ticker.C:
			if count%headerEvery == 0 {
				fmt.Fprintln(p.w, headerLine)
			}
			p.printOnce()
			count++
		}
	}
}

func (p *Printer) printOnce() {
	s := p.reg.Snapshot()
	fmt.Fprintf(p.w, "%10d %9d %10d %9d %15s %9d %14s %9d\n",
		s.ScannedEntries,
		s.SkippedEntries,
		s.QueuedCopyEntries,
		s.CopiedEntries,
		humanize.Bytes(s.CopiedBytes),
		s.RemovedEntries,
		humanize.Bytes(s.RemovedBytes),
		s.Errors,
	)
}

// Stop halts the background printer. Safe to call once; not safe to call
// concurrently with itself.
func (p *Printer) Stop() {
	p.ticker.Stop()
	close(p.done)
}
