//go:build !metrics

package metricsserver

import (
	"context"

	"github.com/pkg/errors"

	"github.com/wastore/dirsync/internal/stats"
)

// Server is an unusable stand-in for builds without the metrics tag.
type Server struct{}

// Start always fails in builds without the metrics tag, so a user who
// passes --metrics on such a build gets a clear, actionable error rather
// than a silently-missing endpoint.
func Start(addr string, reg *stats.Registry) (*Server, error) {
	return nil, errors.New("metrics endpoint not compiled into this build; rebuild with -tags metrics")
}

func (s *Server) Addr() string {
	return ""
}

func (s *Server) Shutdown(ctx context.Context) error {
	return nil
}
