package builder

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/slp2graph/internal/datamap"
	"github.com/vk/slp2graph/internal/nodeid"
	"github.com/vk/slp2graph/internal/schema"
)

// Edge is one relationship row. Edges have no id of their own.
type Edge struct {
	Type  string
	Start string
	End   string
}

// Record returns e as a row of the relationship header.
func (e Edge) Record() *datamap.Record {
	return datamap.NewRecord(schema.Edges,
		cty.StringVal(e.Type),
		cty.StringVal(e.Start),
		cty.StringVal(e.End),
	)
}

// EdgePolicy selects which adjacent snapshot pairs are linked.
type EdgePolicy string

const (
	// EdgesLegacy skips the last adjacent pair of every sequence. Existing
	// imports were produced this way.
	EdgesLegacy EdgePolicy = "legacy"
	// EdgesComplete links every adjacent pair.
	EdgesComplete EdgePolicy = "complete"
)

// ParseEdgePolicy validates a policy name. The empty string is legacy.
func ParseEdgePolicy(s string) (EdgePolicy, error) {
	switch EdgePolicy(s) {
	case "", EdgesLegacy:
		return EdgesLegacy, nil
	case EdgesComplete:
		return EdgesComplete, nil
	}
	return "", fmt.Errorf("unknown edge policy %q (want %q or %q)", s, EdgesLegacy, EdgesComplete)
}

// pairs is the number of adjacent pairs linked in a sequence of n.
func (p EdgePolicy) pairs(n int) int {
	switch {
	case n < 2:
		return 0
	case p == EdgesComplete:
		return n - 1
	default:
		return n - 2
	}
}

// PortEdges links the snapshots of one player. precedes runs forward over
// ports, follows runs the same construction over the reversed sequence.
// ports must be in ascending frame order, as PortNodes returns them.
func PortEdges(ports []*datamap.Record, policy EdgePolicy) (precedes, follows []Edge) {
	ids := make([]string, len(ports))
	for i, rec := range ports {
		ids[i] = rec.Get(schema.PortIDField).AsString()
	}
	n := policy.pairs(len(ids))
	precedes = make([]Edge, 0, n)
	follows = make([]Edge, 0, n)
	for i := 0; i < n; i++ {
		precedes = append(precedes, Edge{Type: schema.Precedes, Start: ids[i], End: ids[i+1]})
	}
	last := len(ids) - 1
	for i := 0; i < n; i++ {
		follows = append(follows, Edge{Type: schema.Follows, Start: ids[last-i], End: ids[last-i-1]})
	}
	return precedes, follows
}

// PlayedIn links a player to its game.
func PlayedIn(g, p int) Edge {
	return Edge{Type: schema.PlayedIn, Start: nodeid.PlayerID(g, p), End: nodeid.GameID(g)}
}

// Processed links a game to each of its frames.
func Processed(frames []*datamap.Record, g int) []Edge {
	out := make([]Edge, 0, len(frames))
	game := nodeid.GameID(g)
	for _, rec := range frames {
		out = append(out, Edge{Type: schema.Processed, Start: game, End: rec.Get(schema.FrameIDField).AsString()})
	}
	return out
}

// Contained links each port snapshot to the frame it was taken in.
func Contained(ports []*datamap.Record, g int) []Edge {
	out := make([]Edge, 0, len(ports))
	for _, rec := range ports {
		out = append(out, Edge{
			Type:  schema.Contained,
			Start: nodeid.FrameID(g, frameIndex(rec)),
			End:   rec.Get(schema.PortIDField).AsString(),
		})
	}
	return out
}

func frameIndex(rec *datamap.Record) int {
	i, _ := rec.Get(schema.FrameField).AsBigFloat().Int64()
	return int(i)
}
