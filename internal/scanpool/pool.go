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

// Package scanpool implements the directory scan pool of spec section 4.4: a
// fixed-size set of workers draining an unbounded queue of (relative
// directory, check-target) pairs, fanning out into further scan tasks for
// subdirectories and copy tasks (handed to the file copy pool) for everything
// else. Modeled on the teacher's common/parallel/TreeCrawler.go, which guards
// an unbounded slice of pending work with a sync.Cond instead of a channel
// for exactly the reason spec section 4.4 gives: fan-out producers must never
// block trying to hand off their own children.
package scanpool

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wastore/dirsync/common"
	"github.com/wastore/dirsync/internal/copier"
	"github.com/wastore/dirsync/internal/stats"
)

// quiescencePollInterval mirrors filepool's; spec section 5 calls for polling
// rather than a blocking barrier on both pools.
const quiescencePollInterval = 50 * time.Millisecond

// copyEnqueuer is the subset of filepool.Pool the scan pool depends on. Kept
// as an interface so scan-pool tests never need a live copy pool.
type copyEnqueuer interface {
	Enqueue(relPath string)
}

type task struct {
	relDir      string
	checkTarget bool
}

// Pool is the directory scan pool described in spec section 4.4.
type Pool struct {
	sourceRoot string
	targetRoot string
	copier     *copier.Copier
	copyPool   copyEnqueuer
	stats      *stats.Registry
	logger     common.ILogger

	mu       sync.Mutex
	cond     *sync.Cond
	pending  []task
	enqueued atomic.Int64
	shutdown bool
}

// New constructs a pool with n workers already running.
func New(n int, sourceRoot, targetRoot string, c *copier.Copier, copyPool copyEnqueuer, reg *stats.Registry, logger common.ILogger) *Pool {
	p := &Pool{
		sourceRoot: sourceRoot,
		targetRoot: targetRoot,
		copier:     c,
		copyPool:   copyPool,
		stats:      reg,
		logger:     logger,
	}
	p.cond = sync.NewCond(&p.mu)
	for i := 0; i < n; i++ {
		go p.workerLoop()
	}
	return p
}

// EnqueueChecked schedules rel_dir for a checked scan: each child is compared
// against its target counterpart before being acted on.
func (p *Pool) EnqueueChecked(relDir string) {
	p.enqueue(task{relDir: relDir, checkTarget: true})
}

// EnqueueUnchecked schedules rel_dir for an unchecked scan: children are
// materialized unconditionally, used immediately after the directory itself
// was just created on the target (so no target counterparts can exist yet).
func (p *Pool) EnqueueUnchecked(relDir string) {
	p.enqueue(task{relDir: relDir, checkTarget: false})
}

func (p *Pool) enqueue(t task) {
	p.enqueued.Add(1)
	p.mu.Lock()
	p.pending = append(p.pending, t)
	p.mu.Unlock()
	p.cond.Signal()
}

func (p *Pool) workerLoop() {
	for {
		p.mu.Lock()
		for len(p.pending) == 0 && !p.shutdown {
			p.cond.Wait()
		}
		if p.shutdown && len(p.pending) == 0 {
			p.mu.Unlock()
			return
		}
		t := p.pending[len(p.pending)-1]
		p.pending = p.pending[:len(p.pending)-1]
		p.mu.Unlock()

		p.process(t)
	}
}

// process implements the per-task algorithm of spec section 4.4, steps 1-4.
func (p *Pool) process(t task) {
	defer p.enqueued.Add(-1)

	srcDir := filepath.Join(p.sourceRoot, t.relDir)
	children, err := os.ReadDir(srcDir)
	if err != nil {
		p.logErr("listing source directory "+srcDir, err)
		return
	}

	seenNames := make(map[string]struct{}, len(children))
	for _, child := range children {
		name := child.Name()
		relChild := filepath.Join(t.relDir, name)

		srcMeta, err := common.LstatMetadata(filepath.Join(p.sourceRoot, relChild))
		if err != nil {
			p.logErr("stat source child "+relChild, err)
			return
		}
		seenNames[name] = struct{}{}
		p.stats.AddScanned(1)

		if !t.checkTarget {
			p.materialize(relChild, srcMeta)
			continue
		}
		p.handleChecked(relChild, srcMeta)
	}

	p.pruneOrphans(t.relDir, seenNames)
}

// materialize implements spec section 4.4 step 3.d: create directories
// in-band (and fan out an unchecked scan of them), hand everything else to
// the file copy pool.
func (p *Pool) materialize(relChild string, srcMeta common.EntryMetadata) {
	if srcMeta.Type == common.EEntityType_Folder {
		src := filepath.Join(p.sourceRoot, relChild)
		tgt := filepath.Join(p.targetRoot, relChild)
		if err := p.copier.CopyDirectory(src, tgt); err != nil {
			p.logErr("creating directory "+relChild, err)
			return
		}
		p.EnqueueUnchecked(relChild)
		return
	}
	p.copyPool.Enqueue(relChild)
}

// handleChecked implements spec section 4.4 step 3.f.
func (p *Pool) handleChecked(relChild string, srcMeta common.EntryMetadata) {
	tgtPath := filepath.Join(p.targetRoot, relChild)
	tgtMeta, err := common.LstatMetadata(tgtPath)

	switch {
	case os.IsNotExist(err):
		p.materialize(relChild, srcMeta)
		return
	case err != nil:
		p.logErr("stat target child "+relChild, err)
		return
	}

	if tgtMeta.Type != srcMeta.Type {
		removed, bytes, err := removeEntry(tgtPath, tgtMeta.Type == common.EEntityType_Folder)
		if err != nil {
			p.logErr("removing type-clashing target "+relChild, err)
			return
		}
		p.stats.AddRemoved(removed, bytes)
		p.materialize(relChild, srcMeta)
		return
	}

	if srcMeta.Type == common.EEntityType_Folder {
		if !srcMeta.Equal(tgtMeta) {
			src := filepath.Join(p.sourceRoot, relChild)
			if err := p.copier.CopyDirectory(src, tgtPath); err != nil {
				p.logErr("updating directory metadata "+relChild, err)
				return
			}
		}
		p.EnqueueChecked(relChild)
		return
	}

	if !srcMeta.Equal(tgtMeta) {
		p.copyPool.Enqueue(relChild)
		return
	}
	p.stats.AddSkipped(1)
}

// pruneOrphans implements spec section 4.4 step 4: anything on the target
// side not observed as a source filename this pass is deleted.
func (p *Pool) pruneOrphans(relDir string, seenNames map[string]struct{}) {
	tgtDir := filepath.Join(p.targetRoot, relDir)
	children, err := os.ReadDir(tgtDir)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		p.logErr("listing target directory "+tgtDir, err)
		return
	}

	for _, child := range children {
		name := child.Name()
		if _, ok := seenNames[name]; ok {
			continue
		}
		orphan := filepath.Join(tgtDir, name)
		removed, bytes, err := removeEntry(orphan, child.IsDir())
		if err != nil {
			p.logErr("removing orphan "+filepath.Join(relDir, name), err)
			continue
		}
		p.stats.AddRemoved(removed, bytes)
	}
}

func (p *Pool) logErr(context string, err error) {
	p.logger.Log(common.LogError, context+": "+err.Error())
	p.stats.AddErrors(1)
}

// WaitQuiescent blocks until the pool has no outstanding or in-flight work.
func (p *Pool) WaitQuiescent() {
	for p.enqueued.Load() != 0 {
		time.Sleep(quiescencePollInterval)
	}
}

// Shutdown signals all workers to exit once idle. Not used during normal
// completion (spec section 5); provided for orderly process teardown.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	p.shutdown = true
	p.mu.Unlock()
	p.cond.Broadcast()
}
