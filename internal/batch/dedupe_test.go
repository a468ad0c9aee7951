package batch

import (
	"crypto/sha256"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vk/slp2graph/internal/config"
)

func digestOf(i int) [32]byte {
	return sha256.Sum256([]byte(strconv.Itoa(i)))
}

func TestSeenSet(t *testing.T) {
	s := newSeenSet(1000)
	assert.False(t, s.seen(digestOf(0)))
	for i := range 1000 {
		s.add(digestOf(i))
	}
	for i := range 1000 {
		assert.True(t, s.seen(digestOf(i)), "digest %d forgotten", i)
	}

	falsePositives := 0
	for i := 1000; i < 11000; i++ {
		if s.seen(digestOf(i)) {
			falsePositives++
		}
	}
	// 0.1% of 10000 is 10.
	assert.Less(t, falsePositives, 50)
}

func TestSeenSet_ZeroCapacityUsesDefault(t *testing.T) {
	assert.Equal(t, newSeenSet(config.DefaultDedupeCapacity).filter.Cap(), newSeenSet(0).filter.Cap())
}
