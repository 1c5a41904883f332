package stats

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryStartsAtZero(t *testing.T) {
	r := New()
	snap := r.Snapshot()
	require.Equal(t, Snapshot{}, snap)
	require.NotEqual(t, "00000000-0000-0000-0000-000000000000", r.RunID().String())
}

func TestRegistryAddsAreAdditive(t *testing.T) {
	r := New()
	r.AddScanned(3)
	r.AddSkipped(1)
	r.AddQueuedForCopy(2)
	r.AddCopied(2, 2048)
	r.AddRemoved(1, 512)
	r.AddErrors(1)

	snap := r.Snapshot()
	require.Equal(t, uint64(3), snap.ScannedEntries)
	require.Equal(t, uint64(1), snap.SkippedEntries)
	require.Equal(t, uint64(2), snap.QueuedCopyEntries)
	require.Equal(t, uint64(2), snap.CopiedEntries)
	require.Equal(t, uint64(2048), snap.CopiedBytes)
	require.Equal(t, uint64(1), snap.RemovedEntries)
	require.Equal(t, uint64(512), snap.RemovedBytes)
	require.Equal(t, uint64(1), snap.Errors)
}

// TestRegistryConcurrentAddsAreRaceFree exercises the counters the way the
// real worker pools do: many goroutines incrementing concurrently with no
// external locking. Run with -race to verify.
func TestRegistryConcurrentAddsAreRaceFree(t *testing.T) {
	r := New()
	const workers = 64
	const perWorker = 1000

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				r.AddScanned(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, uint64(workers*perWorker), r.Snapshot().ScannedEntries)
}

// TestSnapshotMonotonicity is a cheap stand-in for the spec's "counter
// monotonicity" testable property (section 8): every counter observed later
// must be >= what it was observed to be earlier.
func TestSnapshotMonotonicity(t *testing.T) {
	r := New()
	first := r.Snapshot()
	r.AddScanned(5)
	r.AddCopied(1, 10)
	second := r.Snapshot()

	require.GreaterOrEqual(t, second.ScannedEntries, first.ScannedEntries)
	require.GreaterOrEqual(t, second.CopiedEntries, first.CopiedEntries)
	require.GreaterOrEqual(t, second.CopiedBytes, first.CopiedBytes)
}
