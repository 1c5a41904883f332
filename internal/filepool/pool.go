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

// Package filepool implements the file copy pool of spec section 4.3: a
// fixed-size set of workers draining a bounded queue of relative paths, each
// naming a non-directory source entry to (re)create at the corresponding
// target location.
package filepool

import (
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/wastore/dirsync/common"
	"github.com/wastore/dirsync/internal/copier"
	"github.com/wastore/dirsync/internal/stats"
)

// queueCapacity is the bounded queue depth. The teacher's ste/executionEngine
// sizes its transfer channels in the low thousands for the identical
// reason spec.md gives: large enough that scanning is never blocked behind a
// slow byte-copy path for ordinary trees, without growing unbounded under a
// pathologically slow destination.
const queueCapacity = 4096

// workerPollInterval is how often an idle worker re-checks its shutdown flag
// while otherwise blocked on the queue (spec section 5, "suspension points").
const workerPollInterval = time.Second

// quiescencePollInterval is how often WaitQuiescent rechecks the enqueued
// counter. Spec section 5 explicitly calls for polling rather than a single
// blocking barrier.
const quiescencePollInterval = 50 * time.Millisecond

// Pool is the file copy pool described in spec section 4.3.
type Pool struct {
	sourceRoot string
	targetRoot string
	copier     *copier.Copier
	stats      *stats.Registry
	logger     common.ILogger

	tasks    chan string
	enqueued atomic.Int64
	shutdown atomic.Bool
}

// New constructs a pool with n workers already running. sourceRoot/targetRoot
// are the two absolute roots relative paths are joined against at the point
// of a filesystem syscall, never earlier (spec section 3).
func New(n int, sourceRoot, targetRoot string, c *copier.Copier, reg *stats.Registry, logger common.ILogger) *Pool {
	p := &Pool{
		sourceRoot: sourceRoot,
		targetRoot: targetRoot,
		copier:     c,
		stats:      reg,
		logger:     logger,
		tasks:      make(chan string, queueCapacity),
	}
	for i := 0; i < n; i++ {
		go p.workerLoop()
	}
	return p
}

// Enqueue schedules relPath, a non-directory source entry, for (re)creation
// at the corresponding target location. It blocks if the queue is full,
// which is the pool's sole form of backpressure.
func (p *Pool) Enqueue(relPath string) {
	p.enqueued.Add(1)
	p.stats.AddQueuedForCopy(1)
	p.tasks <- relPath
}

func (p *Pool) workerLoop() {
	ticker := time.NewTicker(workerPollInterval)
	defer ticker.Stop()

	for {
		select {
		case relPath, ok := <-p.tasks:
			if !ok {
				return
			}
			p.process(relPath)
		case <-ticker.C:
			if p.shutdown.Load() {
				return
			}
		}
	}
}

func (p *Pool) process(relPath string) {
	src := filepath.Join(p.sourceRoot, relPath)
	tgt := filepath.Join(p.targetRoot, relPath)

	n, err := p.copier.CopyFile(src, tgt)
	if err != nil {
		p.logger.Log(common.LogError, "copy "+relPath+": "+err.Error())
		p.stats.AddErrors(1)
	} else {
		p.stats.AddCopied(1, uint64(n))
	}

	// Children are fully processed before the counter is decremented; copy
	// tasks never produce children, but the ordering is kept symmetric with
	// the scan pool's enqueue-then-decrement rule for the same reason: it is
	// what makes polling enqueued==0 a sound quiescence signal (spec section 5).
	p.enqueued.Add(-1)
}

// WaitQuiescent blocks until the pool has no outstanding or in-flight work.
func (p *Pool) WaitQuiescent() {
	for p.enqueued.Load() != 0 {
		time.Sleep(quiescencePollInterval)
	}
}

// Shutdown signals all workers to exit once they next poll; the task channel
// is left open. Not used during normal completion (spec section 5); provided
// for orderly process teardown.
func (p *Pool) Shutdown() {
	p.shutdown.Store(true)
}
