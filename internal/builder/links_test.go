package builder

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/slp2graph/internal/datamap"
	"github.com/vk/slp2graph/internal/slippi/slptest"
)

func portRecords(t *testing.T, frames int) []*datamap.Record {
	t.Helper()
	recs, err := PortNodes(slptest.Simple(1, frames).Game().Frames, 0, 0)
	require.NoError(t, err)
	return recs
}

func TestPortEdges_Legacy(t *testing.T) {
	precedes, follows := PortEdges(portRecords(t, 4), EdgesLegacy)

	wantPrecedes := []Edge{
		{Type: "precedes", Start: "port-0-0-0", End: "port-0-0-1"},
		{Type: "precedes", Start: "port-0-0-1", End: "port-0-0-2"},
	}
	wantFollows := []Edge{
		{Type: "follows", Start: "port-0-0-3", End: "port-0-0-2"},
		{Type: "follows", Start: "port-0-0-2", End: "port-0-0-1"},
	}
	if diff := cmp.Diff(wantPrecedes, precedes); diff != "" {
		t.Errorf("precedes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantFollows, follows); diff != "" {
		t.Errorf("follows mismatch (-want +got):\n%s", diff)
	}
}

func TestPortEdges_Complete(t *testing.T) {
	precedes, follows := PortEdges(portRecords(t, 4), EdgesComplete)

	require.Len(t, precedes, 3)
	require.Len(t, follows, 3)
	assert.Equal(t, Edge{Type: "precedes", Start: "port-0-0-2", End: "port-0-0-3"}, precedes[2])
	assert.Equal(t, Edge{Type: "follows", Start: "port-0-0-1", End: "port-0-0-0"}, follows[2])
}

func TestPortEdges_Counts(t *testing.T) {
	tests := []struct {
		frames   int
		legacy   int
		complete int
	}{
		{0, 0, 0},
		{1, 0, 0},
		{2, 0, 1},
		{3, 1, 2},
		{10, 8, 9},
	}
	for _, tc := range tests {
		recs := portRecords(t, tc.frames)
		p, f := PortEdges(recs, EdgesLegacy)
		assert.Len(t, p, tc.legacy, "legacy precedes, %d frames", tc.frames)
		assert.Len(t, f, tc.legacy, "legacy follows, %d frames", tc.frames)
		p, f = PortEdges(recs, EdgesComplete)
		assert.Len(t, p, tc.complete, "complete precedes, %d frames", tc.frames)
		assert.Len(t, f, tc.complete, "complete follows, %d frames", tc.frames)
	}
}

func TestPortEdges_FollowsMirrorsPrecedes(t *testing.T) {
	for _, policy := range []EdgePolicy{EdgesLegacy, EdgesComplete} {
		recs := portRecords(t, 6)
		precedes, follows := PortEdges(recs, policy)

		forward := map[[2]string]bool{}
		for _, e := range precedes {
			forward[[2]string{e.Start, e.End}] = true
		}
		// Reversing the sequence shifts the skipped pair to the other end
		// under the legacy policy, so only interior pairs must mirror.
		mirrored := 0
		for _, e := range follows {
			if forward[[2]string{e.End, e.Start}] {
				mirrored++
			}
		}
		if policy == EdgesComplete {
			assert.Equal(t, len(precedes), mirrored)
		} else {
			assert.Equal(t, len(precedes)-1, mirrored)
		}
	}
}

func TestParseEdgePolicy(t *testing.T) {
	p, err := ParseEdgePolicy("")
	require.NoError(t, err)
	assert.Equal(t, EdgesLegacy, p)

	p, err = ParseEdgePolicy("complete")
	require.NoError(t, err)
	assert.Equal(t, EdgesComplete, p)

	_, err = ParseEdgePolicy("all")
	assert.ErrorContains(t, err, `unknown edge policy "all"`)
}

func TestEdge_Record(t *testing.T) {
	rec := Edge{Type: "precedes", Start: "a", End: "b"}.Record()
	assert.Equal(t, []string{":TYPE", ":START_ID", ":END_ID"}, rec.Header().Names())
	assert.Equal(t, []string{"precedes", "a", "b"}, row(rec))
}

func TestExtendedEdges(t *testing.T) {
	game := slptest.Simple(1, 2).Game()
	ports, err := PortNodes(game.Frames, 3, 0)
	require.NoError(t, err)
	frames, err := FrameNodes(game.Frames, 3)
	require.NoError(t, err)

	assert.Equal(t, Edge{Type: "played_in", Start: "player-3-0", End: "game-3"}, PlayedIn(3, 0))
	assert.Equal(t, []Edge{
		{Type: "processed", Start: "game-3", End: "frame-3-0"},
		{Type: "processed", Start: "game-3", End: "frame-3-1"},
	}, Processed(frames, 3))
	assert.Equal(t, []Edge{
		{Type: "contained", Start: "frame-3-0", End: "port-3-0-0"},
		{Type: "contained", Start: "frame-3-1", End: "port-3-0-1"},
	}, Contained(ports, 3))
}
