package batch

import (
	"github.com/bits-and-blooms/bloom/v3"

	"github.com/vk/slp2graph/internal/config"
)

// dedupeFalsePositive is the rate at which a new replay is taken for a
// duplicate while the filter holds no more than its capacity.
const dedupeFalsePositive = 0.001

// seenSet remembers the digests of converted replays in a bloom filter.
// Its memory stays fixed however many replays pass through.
type seenSet struct {
	filter *bloom.BloomFilter
}

// newSeenSet sizes the filter for capacity digests. Values below 1 use
// config.DefaultDedupeCapacity.
func newSeenSet(capacity int) *seenSet {
	if capacity < 1 {
		capacity = config.DefaultDedupeCapacity
	}
	return &seenSet{filter: bloom.NewWithEstimates(uint(capacity), dedupeFalsePositive)}
}

func (s *seenSet) seen(digest [32]byte) bool {
	return s.filter.Test(digest[:])
}

func (s *seenSet) add(digest [32]byte) {
	s.filter.Add(digest[:])
}
