package ui

import "sort"

// Bandwidth is the pair of monotonic byte counters every ranked entity
// exposes. The probe's connection, process and address records all satisfy
// it.
type Bandwidth interface {
	TotalBytesUploaded() uint64
	TotalBytesDownloaded() uint64
}

// rankedEntry pairs a table key with its metrics for ranking.
type rankedEntry[K any] struct {
	key     K
	metrics Bandwidth
}

// dominant is whichever traffic direction is busier, the single signal rows
// are ranked by.
func dominant(b Bandwidth) uint64 {
	if d := b.TotalBytesDownloaded(); d > b.TotalBytesUploaded() {
		return d
	}
	return b.TotalBytesUploaded()
}

// sortByBandwidth orders entries by dominant direction, descending. There is
// no secondary key; exact ties keep their incoming order.
func sortByBandwidth[K any](entries []rankedEntry[K]) {
	sort.SliceStable(entries, func(i, j int) bool {
		return dominant(entries[i].metrics) > dominant(entries[j].metrics)
	})
}
