//go:build metrics

package metricsserver

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wastore/dirsync/internal/stats"
)

func TestServerExposesCounters(t *testing.T) {
	reg := stats.New()
	reg.AddScanned(5)
	reg.AddCopied(2, 1024)

	s, err := Start("127.0.0.1:0", reg)
	require.NoError(t, err)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	}()

	resp, err := http.Get("http://" + s.Addr() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	require.True(t, strings.Contains(text, "sync_scanned_entries 5"))
	require.True(t, strings.Contains(text, "sync_copied_entries 2"))
	require.True(t, strings.Contains(text, "sync_copied_bytes 1024"))
}
