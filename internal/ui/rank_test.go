package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testMetrics struct {
	up, down uint64
}

func (m *testMetrics) TotalBytesUploaded() uint64   { return m.up }
func (m *testMetrics) TotalBytesDownloaded() uint64 { return m.down }

func rankKeys(pairs [][2]uint64) []int {
	entries := make([]rankedEntry[int], len(pairs))
	for i, p := range pairs {
		entries[i] = rankedEntry[int]{key: i, metrics: &testMetrics{up: p[0], down: p[1]}}
	}
	sortByBandwidth(entries)
	keys := make([]int, len(entries))
	for i, e := range entries {
		keys[i] = e.key
	}
	return keys
}

func TestSortByBandwidthDominantDescending(t *testing.T) {
	// dominants 500, 900, 500: the 900 leads, equal dominants keep their
	// incoming order
	keys := rankKeys([][2]uint64{{100, 50}, {10, 900}, {500, 500}})
	assert.Equal(t, []int{1, 2, 0}, keys)
}

func TestSortByBandwidthAdjacentProperty(t *testing.T) {
	pairs := [][2]uint64{{0, 0}, {7, 3}, {2, 2}, {900, 1}, {1, 900}, {5, 5}, {0, 12}}
	entries := make([]rankedEntry[int], len(pairs))
	for i, p := range pairs {
		entries[i] = rankedEntry[int]{key: i, metrics: &testMetrics{up: p[0], down: p[1]}}
	}
	sortByBandwidth(entries)
	require.Len(t, entries, len(pairs))
	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, dominant(entries[i-1].metrics), dominant(entries[i].metrics))
	}
}

func TestDominant(t *testing.T) {
	assert.Equal(t, uint64(9), dominant(&testMetrics{up: 9, down: 3}))
	assert.Equal(t, uint64(9), dominant(&testMetrics{up: 3, down: 9}))
	assert.Equal(t, uint64(4), dominant(&testMetrics{up: 4, down: 4}))
}
