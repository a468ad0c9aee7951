package builder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/slp2graph/internal/slippi/slptest"
)

func TestBuild_TwoPlayersThreeFrames(t *testing.T) {
	game := slptest.Simple(2, 3).Game()

	g, err := Build(context.Background(), game, 0, Options{})
	require.NoError(t, err)

	require.NotNil(t, g.Game)
	require.Len(t, g.Players, 2)
	ports := 0
	for _, p := range g.Players {
		ports += len(p.Ports)
		assert.Len(t, p.Precedes, 1)
		assert.Len(t, p.Follows, 1)
	}
	assert.Equal(t, 6, ports)
	assert.False(t, g.Extended())
	assert.Empty(t, g.PlayedIn)
}

func TestBuild_TwoPlayersThreeFramesComplete(t *testing.T) {
	game := slptest.Simple(2, 3).Game()

	g, err := Build(context.Background(), game, 0, Options{EdgePolicy: EdgesComplete})
	require.NoError(t, err)
	for _, p := range g.Players {
		assert.Len(t, p.Precedes, 2)
		assert.Len(t, p.Follows, 2)
	}
}

func TestBuild_EmptySlot(t *testing.T) {
	r := slptest.Simple(2, 3)
	r.Players[1] = nil
	for i := range r.Frames {
		r.Frames[i].Ports[1] = nil
	}

	g, err := Build(context.Background(), r.Game(), 0, Options{})
	require.NoError(t, err)
	require.Len(t, g.Players, 1)
	assert.Equal(t, 0, g.Players[0].Port)
	assert.Equal(t, "player-0-0", g.Players[0].Node.Get("playerId").AsString())
}

func TestBuild_ExtractionErrorAbortsGame(t *testing.T) {
	r := slptest.Simple(2, 3)
	r.Players[1].UCF = nil

	g, err := Build(context.Background(), r.Game(), 5, Options{})
	assert.Nil(t, g)
	assert.ErrorContains(t, err, "extracting Player.ucf_dash_back (game 5, port 1)")
}

func TestBuild_Extended(t *testing.T) {
	game := slptest.Simple(2, 3).Game()

	g, err := Build(context.Background(), game, 1, Options{Schema: SchemaExtended})
	require.NoError(t, err)
	assert.True(t, g.Extended())
	assert.Len(t, g.Frames, 3)
	assert.Len(t, g.Processed, 3)
	assert.Len(t, g.Contained, 6)
	assert.Equal(t, []Edge{PlayedIn(1, 0), PlayedIn(1, 1)}, g.PlayedIn)
}

func TestParseSchema(t *testing.T) {
	s, err := ParseSchema("extended")
	require.NoError(t, err)
	assert.Equal(t, SchemaExtended, s)

	s, err = ParseSchema("")
	require.NoError(t, err)
	assert.Equal(t, SchemaBasic, s)

	_, err = ParseSchema("full")
	assert.Error(t, err)
}
