package seed

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessVisitsEveryItem(t *testing.T) {
	items := make([]int, 100)
	for i := range items {
		items[i] = i + 1
	}

	var sum atomic.Int64
	err := process(context.Background(), 4, fromSlice(items), func(_ context.Context, n int) {
		sum.Add(int64(n))
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5050), sum.Load())
}

func TestProcessStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := make([]int, 1000)
	var seen atomic.Int64
	err := process(ctx, 0, fromSlice(items), func(context.Context, int) {
		seen.Add(1)
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, seen.Load(), int64(1000))
}

func TestSeedResultAdd(t *testing.T) {
	var r SeedResult
	r.Add(SeedResult{FightersUpserted: 2, RowsUpserted: 4, Errors: []string{"a"}})
	r.Add(SeedResult{FightsUpserted: 1, Rejected: 1})
	r.AddErrorf("fight %d: %s", 7, "bad")

	assert.Equal(t, 2, r.FightersUpserted)
	assert.Equal(t, 1, r.FightsUpserted)
	assert.Equal(t, []string{"a", "fight 7: bad"}, r.Errors)
	assert.Equal(t, "fighters=2 events=0 fights=1 rows=4 rejected=1 errors=2", r.Summary())
}
