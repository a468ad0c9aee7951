package verify

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/slp2graph/internal/builder"
	"github.com/vk/slp2graph/internal/nodeid"
	"github.com/vk/slp2graph/internal/slippi/slptest"
	"github.com/vk/slp2graph/internal/storage"
)

func writeTree(t *testing.T, extended bool) *storage.Store {
	t.Helper()
	opts := builder.Options{}
	if extended {
		opts.Schema = builder.SchemaExtended
	}
	s, err := storage.Open(t.TempDir(), extended)
	require.NoError(t, err)
	for g := range 2 {
		graph, err := builder.Build(context.Background(), slptest.Simple(2, 3).Game(), g, opts)
		require.NoError(t, err)
		require.NoError(t, s.WriteGame(graph))
	}
	require.NoError(t, s.Close())
	return s
}

func appendLine(t *testing.T, path, line string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.WriteString(line + "\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func TestDir_Valid(t *testing.T) {
	s := writeTree(t, true)

	sum, err := Dir(context.Background(), s.Layout().Root)
	require.NoError(t, err)
	assert.True(t, sum.OK(), "%v", sum.Violations)
	assert.Equal(t, map[nodeid.Kind]int{
		nodeid.KindGame:   2,
		nodeid.KindPlayer: 4,
		nodeid.KindPort:   12,
		nodeid.KindFrame:  6,
	}, sum.Nodes)
	assert.Equal(t, map[string]int{
		"precedes":  4,
		"follows":   4,
		"played_in": 4,
		"processed": 6,
		"contained": 12,
	}, sum.Edges)
}

func TestDir_Violations(t *testing.T) {
	s := writeTree(t, false)
	l := s.Layout()
	appendLine(t, l.Games(), "false,31,false,false,3,game-1,Game")
	appendLine(t, l.PortRels(0, 0), "precedes,port-0-0-2,port-0-0-9")
	appendLine(t, l.Players(), ",4,0,2,0,1,2,0,player-01-0,Player")

	sum, err := Dir(context.Background(), l.Root)
	require.NoError(t, err)
	assert.False(t, sum.OK())
	require.Equal(t, 3, sum.Total)

	var msgs []string
	for _, v := range sum.Violations {
		msgs = append(msgs, v.String())
	}
	assert.Contains(t, msgs, `nodes/games/games.csv:4: duplicate id "game-1", first seen in nodes/games/games.csv`)
	assert.Contains(t, msgs, `rels/0_0.csv:4: precedes edge references unknown node "port-0-0-9"`)
	assert.Contains(t, msgs, `nodes/players/players.csv:6: identifier "player-01-0": index "01" has a leading zero`)
}

func TestDir_MissingTree(t *testing.T) {
	_, err := Dir(context.Background(), t.TempDir())
	assert.ErrorContains(t, err, "failed to list node files")
}
