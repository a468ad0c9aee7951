package builder

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/slp2graph/internal/datamap"
	"github.com/vk/slp2graph/internal/nodeid"
	"github.com/vk/slp2graph/internal/schema"
	"github.com/vk/slp2graph/internal/slippi"
)

// GameNode builds the Game record of a replay with the given game index.
func GameNode(game *slippi.Game, g int) (*datamap.Record, error) {
	rec, err := schema.Games.Apply(game, datamap.At(g))
	if err != nil {
		return nil, err
	}
	rec.Set(schema.GameIDField, cty.StringVal(nodeid.GameID(g)))
	return rec, nil
}

// PlayerNode builds the Player record of port p. ok is false for an empty
// slot, in which case no record is returned.
func PlayerNode(player *slippi.Player, g, p int) (rec *datamap.Record, ok bool, err error) {
	if player == nil {
		return nil, false, nil
	}
	rec, err = schema.Players.Apply(player, datamap.At(g).WithPort(p))
	if err != nil {
		return nil, false, err
	}
	rec.Set(schema.PortNumField, datamap.Int(p))
	rec.Set(schema.PlayerIDField, cty.StringVal(nodeid.PlayerID(g, p)))
	return rec, true, nil
}

// PortNodes builds one Port record for every frame in which port p has a
// leader snapshot. Records are in ascending frame order and frames without
// a snapshot are skipped, not padded.
func PortNodes(frames []slippi.Frame, g, p int) ([]*datamap.Record, error) {
	var out []*datamap.Record
	for i := range frames {
		f := &frames[i]
		data := f.Ports[p]
		if data == nil || data.Leader == nil {
			continue
		}
		rec, err := schema.Ports.Apply(data.Leader, datamap.At(g).WithPort(p).WithFrame(f.Index))
		if err != nil {
			return nil, err
		}
		rec.Set(schema.FrameField, datamap.Int(f.Index))
		rec.Set(schema.PortIDField, cty.StringVal(nodeid.PortID(g, p, f.Index)))
		out = append(out, rec)
	}
	return out, nil
}

// FrameNodes builds one Frame record per frame of the game.
func FrameNodes(frames []slippi.Frame, g int) ([]*datamap.Record, error) {
	out := make([]*datamap.Record, 0, len(frames))
	for i := range frames {
		f := &frames[i]
		rec, err := schema.Frames.Apply(f, datamap.At(g).WithFrame(f.Index))
		if err != nil {
			return nil, err
		}
		rec.Set(schema.FrameIDField, cty.StringVal(nodeid.FrameID(g, f.Index)))
		out = append(out, rec)
	}
	return out, nil
}
