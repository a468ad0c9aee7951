package builder

import (
	"context"
	"fmt"

	"github.com/vk/slp2graph/internal/ctxlog"
	"github.com/vk/slp2graph/internal/datamap"
	"github.com/vk/slp2graph/internal/slippi"
)

// Schema selects which node and relationship kinds are produced.
type Schema string

const (
	// SchemaBasic produces Game, Player and Port nodes linked by
	// precedes and follows.
	SchemaBasic Schema = "basic"
	// SchemaExtended adds Frame nodes and the played_in, processed and
	// contained relationships.
	SchemaExtended Schema = "extended"
)

// ParseSchema validates a schema name. The empty string is basic.
func ParseSchema(s string) (Schema, error) {
	switch Schema(s) {
	case "", SchemaBasic:
		return SchemaBasic, nil
	case SchemaExtended:
		return SchemaExtended, nil
	}
	return "", fmt.Errorf("unknown schema %q (want %q or %q)", s, SchemaBasic, SchemaExtended)
}

// Options controls what Build produces.
type Options struct {
	Schema     Schema
	EdgePolicy EdgePolicy
}

// PlayerGraph holds the records of one occupied port.
type PlayerGraph struct {
	Port     int
	Node     *datamap.Record
	Ports    []*datamap.Record
	Precedes []Edge
	Follows  []Edge
}

// Graph is everything written for one game.
type Graph struct {
	Index   int
	Game    *datamap.Record
	Players []PlayerGraph

	// Extended schema only.
	Frames    []*datamap.Record
	PlayedIn  []Edge
	Processed []Edge
	Contained []Edge
}

// Extended reports whether g carries the extended schema records.
func (g *Graph) Extended() bool { return g.Frames != nil }

// Build maps a decoded game to its records under game index g. An error
// from any extractor aborts the whole game.
func Build(ctx context.Context, game *slippi.Game, g int, opts Options) (*Graph, error) {
	logger := ctxlog.FromContext(ctx).With("game_index", g)

	gameNode, err := GameNode(game, g)
	if err != nil {
		return nil, err
	}
	out := &Graph{Index: g, Game: gameNode}
	extended := opts.Schema == SchemaExtended

	for p, player := range game.Start.Players {
		node, ok, err := PlayerNode(player, g, p)
		if err != nil {
			return nil, err
		}
		if !ok {
			logger.Debug("Skipping empty slot.", "port", p)
			continue
		}
		ports, err := PortNodes(game.Frames, g, p)
		if err != nil {
			return nil, err
		}
		precedes, follows := PortEdges(ports, opts.EdgePolicy)
		out.Players = append(out.Players, PlayerGraph{
			Port:     p,
			Node:     node,
			Ports:    ports,
			Precedes: precedes,
			Follows:  follows,
		})
		logger.Debug("Built player.", "port", p, "port_nodes", len(ports), "edges", len(precedes)+len(follows))

		if extended {
			out.PlayedIn = append(out.PlayedIn, PlayedIn(g, p))
			out.Contained = append(out.Contained, Contained(ports, g)...)
		}
	}

	if extended {
		frames, err := FrameNodes(game.Frames, g)
		if err != nil {
			return nil, err
		}
		out.Frames = frames
		out.Processed = Processed(frames, g)
	}
	return out, nil
}
