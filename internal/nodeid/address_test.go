// internal/nodeid/address_test.go
package nodeid

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDs(t *testing.T) {
	testCases := []struct {
		name     string
		got      string
		expected string
	}{
		{name: "game", got: GameID(0), expected: "game-0"},
		{name: "game large", got: GameID(1234), expected: "game-1234"},
		{name: "player", got: PlayerID(3, 1), expected: "player-3-1"},
		{name: "port", got: PortID(3, 1, 42), expected: "port-3-1-42"},
		{name: "frame", got: FrameID(7, 0), expected: "frame-7-0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.got)
		})
	}
}

func TestAddress_RoundTrip(t *testing.T) {
	testIDs := []string{
		"game-0",
		"player-12-3",
		"port-5-0-9001",
		"frame-2-17",
	}

	for _, id := range testIDs {
		t.Run(id, func(t *testing.T) {
			addr, err := Parse(id)
			require.NoError(t, err)
			assert.Equal(t, id, addr.String())

			again, err := Parse(addr.String())
			require.NoError(t, err)
			assert.True(t, addr.Equal(again))
		})
	}
}

func TestIDs_Injective(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	seen := make(map[string][3]int)

	for range 20000 {
		triple := [3]int{rng.IntN(50), rng.IntN(4), rng.IntN(200)}
		id := PortID(triple[0], triple[1], triple[2])
		if prev, ok := seen[id]; ok {
			require.Equal(t, prev, triple, "two distinct triples produced %q", id)
		}
		seen[id] = triple

		addr, err := Parse(id)
		require.NoError(t, err)
		assert.Equal(t, PortAddress(triple[0], triple[1], triple[2]), addr)
	}
}

func TestIDs_KindsDoNotCollide(t *testing.T) {
	// player and frame both embed two indices.
	assert.NotEqual(t, PlayerID(1, 2), FrameID(1, 2))

	p, err := Parse(PlayerID(1, 2))
	require.NoError(t, err)
	f, err := Parse(FrameID(1, 2))
	require.NoError(t, err)
	assert.False(t, p.Equal(f))
}
