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

//go:build metrics

// Package metricsserver exposes the optional /metrics endpoint of spec
// section 6, backed by the stats registry and served in Prometheus text
// exposition format via prometheus/client_golang — the same library the
// rest of the pack's services (see SPEC_FULL.md's DOMAIN STACK) use for
// their own counters, and one the teacher itself never had a reason to pull
// in since it reports progress to a human, not a scrape target. Spec
// section 6 marks --metrics "(optional build)"; this file ships only with
// -tags metrics, mirroring internal/copier's acl/xattr split exactly. See
// server_disabled.go for the stub compiled in its absence.
package metricsserver

import (
	"context"
	"net"
	"net/http"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wastore/dirsync/internal/stats"
)

// metric names from spec section 6, verbatim.
const (
	nameScanned  = "sync_scanned_entries"
	nameSkipped  = "sync_skipped_entries"
	nameQueued   = "sync_queued_copy_entries"
	nameCopied   = "sync_copied_entries"
	nameCopiedB  = "sync_copied_bytes"
	nameRemoved  = "sync_removed_entries"
	nameRemovedB = "sync_removed_bytes"
	nameErrors   = "sync_errors"
)

// Server wraps an *http.Server exposing /metrics on a fixed address.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
}

// Start registers a fresh prometheus.Registry wired to reg's counters and
// begins serving it on addr (host:port, or ":PORT"). Returns once the
// listener is bound; serving continues in the background until Shutdown.
func Start(addr string, reg *stats.Registry) (*Server, error) {
	promReg := prometheus.NewRegistry()
	registerCounterFuncs(promReg, reg)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}))

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "binding metrics listener on %q", addr)
	}

	s := &Server{
		httpServer: &http.Server{Handler: mux},
		listener:   ln,
	}
	go func() {
		_ = s.httpServer.Serve(ln)
	}()
	return s, nil
}

func registerCounterFuncs(promReg *prometheus.Registry, reg *stats.Registry) {
	counter := func(name, help string, read func(stats.Snapshot) uint64) prometheus.CounterFunc {
		return prometheus.NewCounterFunc(prometheus.CounterOpts{Name: name, Help: help}, func() float64 {
			return float64(read(reg.Snapshot()))
		})
	}

	promReg.MustRegister(
		counter(nameScanned, "Entries scanned on the source side.", func(s stats.Snapshot) uint64 { return s.ScannedEntries }),
		counter(nameSkipped, "Entries whose metadata already matched and were left untouched.", func(s stats.Snapshot) uint64 { return s.SkippedEntries }),
		counter(nameQueued, "Entries handed to the file copy pool.", func(s stats.Snapshot) uint64 { return s.QueuedCopyEntries }),
		counter(nameCopied, "Entries successfully copied to the target.", func(s stats.Snapshot) uint64 { return s.CopiedEntries }),
		counter(nameCopiedB, "Bytes successfully copied to the target.", func(s stats.Snapshot) uint64 { return s.CopiedBytes }),
		counter(nameRemoved, "Target-side entries removed as orphans or type clashes.", func(s stats.Snapshot) uint64 { return s.RemovedEntries }),
		counter(nameRemovedB, "Bytes removed with orphaned regular files.", func(s stats.Snapshot) uint64 { return s.RemovedBytes }),
		counter(nameErrors, "Per-entry failures encountered during the run.", func(s stats.Snapshot) uint64 { return s.Errors }),
	)
}

// Addr reports the bound listener address, useful when addr was passed as
// ":0" in tests.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Shutdown stops accepting new connections and closes the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
