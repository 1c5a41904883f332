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

// Package stats holds the process-wide registry of monotonically increasing
// run counters (section 4.1). Every worker increments through here; the
// printer and the metrics server only ever read.
package stats

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Snapshot is a value-typed read of every counter at one instant. Handing
// readers a struct copy, rather than a pointer into the live Registry, is
// what keeps the printer and metrics server from needing any lock of their
// own — the same "value snapshot, lock-free counters" split the teacher uses
// between common/atomic_operations.go counters and their statsMonitor.go
// consumer.
type Snapshot struct {
	ScannedEntries    uint64
	SkippedEntries    uint64
	QueuedCopyEntries uint64
	CopiedEntries     uint64
	CopiedBytes       uint64
	RemovedEntries    uint64
	RemovedBytes      uint64
	Errors            uint64
}

// Registry is the stats registry described in section 4.1. All operations
// are lock-free atomic adds; readers may observe counters from slightly
// different logical instants relative to each other, which the spec
// explicitly allows ("eventually observable" ordering).
type Registry struct {
	runID uuid.UUID

	scanned    atomic.Uint64
	skipped    atomic.Uint64
	queuedCopy atomic.Uint64
	copiedE    atomic.Uint64
	copiedB    atomic.Uint64
	removedE   atomic.Uint64
	removedB   atomic.Uint64
	errors     atomic.Uint64
}

// New creates an empty registry tagged with a fresh run identifier, readable
// through RunID. The logger does not add this identifier to log lines.
func New() *Registry {
	return &Registry{runID: uuid.New()}
}

func (r *Registry) RunID() uuid.UUID { return r.runID }

func (r *Registry) AddScanned(n uint64)        { r.scanned.Add(n) }
func (r *Registry) AddSkipped(n uint64)        { r.skipped.Add(n) }
func (r *Registry) AddQueuedForCopy(n uint64)  { r.queuedCopy.Add(n) }
func (r *Registry) AddErrors(n uint64)         { r.errors.Add(n) }

// AddCopied records entries and bytes materialized by the file copy pool.
func (r *Registry) AddCopied(entries, bytes uint64) {
	r.copiedE.Add(entries)
	r.copiedB.Add(bytes)
}

// AddRemoved records orphaned target entries pruned by the scan pool.
func (r *Registry) AddRemoved(entries, bytes uint64) {
	r.removedE.Add(entries)
	r.removedB.Add(bytes)
}

// Snapshot reads every counter once each. The individual reads are not
// mutually atomic with each other (by design — see the Registry doc comment),
// only each one is internally race-free.
func (r *Registry) Snapshot() Snapshot {
	return Snapshot{
		ScannedEntries:    r.scanned.Load(),
		SkippedEntries:    r.skipped.Load(),
		QueuedCopyEntries: r.queuedCopy.Load(),
		CopiedEntries:     r.copiedE.Load(),
		CopiedBytes:       r.copiedB.Load(),
		RemovedEntries:    r.removedE.Load(),
		RemovedBytes:      r.removedB.Load(),
		Errors:            r.errors.Load(),
	}
}
