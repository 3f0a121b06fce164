package pattern

import (
	"math"
	"sort"
)

// dedupKey quantizes a hit's time to millisecond-equivalent beat
// granularity for duplicate detection. Stored times are not quantized;
// only the grouping key is.
type dedupKey struct {
	voice Voice
	ms    int64
}

// Assemble sorts hits ascending by time and removes near-simultaneous
// duplicates of the same voice, keeping the loudest of each group.
// Applying it twice yields the same result as once.
func Assemble(hits []Hit) []Hit {
	sorted := make([]Hit, len(hits))
	copy(sorted, hits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })

	best := make(map[dedupKey]Hit, len(sorted))
	order := make([]dedupKey, 0, len(sorted))
	for _, h := range sorted {
		key := dedupKey{voice: h.Voice, ms: int64(math.Round(h.Time * 1000))}
		prev, seen := best[key]
		if !seen {
			best[key] = h
			order = append(order, key)
			continue
		}
		if h.Velocity > prev.Velocity {
			best[key] = h
		}
	}

	out := make([]Hit, 0, len(order))
	for _, key := range order {
		out = append(out, best[key])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}
