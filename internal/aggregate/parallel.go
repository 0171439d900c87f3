package aggregate

import (
	"sync"

	"github.com/couchcryptid/storm-impact-summary/internal/domain"
)

// Summarize classifies, prices, and aggregates a fully materialized record
// slice, fanning the per-record work out over the given number of workers.
// Each worker owns a shard accumulator (partition-then-merge), so no locking
// happens on the hot path and the result is independent of record order.
// workers <= 1 runs sequentially.
func Summarize(records []domain.RawCSVRecord, workers int) *Accumulator {
	if workers > len(records) {
		workers = len(records)
	}
	if workers <= 1 {
		acc := NewAccumulator()
		for _, rec := range records {
			impact, _ := domain.BuildImpact(rec, nil)
			acc.Add(impact)
		}
		return acc
	}

	shards := make([]*Accumulator, workers)
	var wg sync.WaitGroup
	for w := range workers {
		shards[w] = NewAccumulator()
		wg.Add(1)
		go func(shard *Accumulator, offset int) {
			defer wg.Done()
			for i := offset; i < len(records); i += workers {
				impact, _ := domain.BuildImpact(records[i], nil)
				shard.Add(impact)
			}
		}(shards[w], w)
	}
	wg.Wait()

	merged := NewAccumulator()
	for _, shard := range shards {
		merged.Merge(shard)
	}
	return merged
}
