// Package schema declares the node and relationship tables written for the
// graph import: the field list of every file and how each field is read
// from a decoded replay.
package schema

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/slp2graph/internal/datamap"
	"github.com/vk/slp2graph/internal/slippi"
)

// Node labels.
const (
	LabelGame   = "Game"
	LabelPlayer = "Player"
	LabelPort   = "Port"
	LabelFrame  = "Frame"
)

// Relationship types.
const (
	Precedes  = "precedes"
	Follows   = "follows"
	PlayedIn  = "played_in"
	Processed = "processed"
	Contained = "contained"
)

// Fields filled in by the node builder after mapping.
const (
	GameIDField    = "gameId"
	PlayerIDField  = "playerId"
	PortNumField   = "portNum"
	PortIDField    = "portId"
	FrameField     = "frame"
	FrameIDField   = "frameId"
	LabelField     = ":LABEL"
	TypeField      = ":TYPE"
	StartIDField   = ":START_ID"
	EndIDField     = ":END_ID"
	noLastHitBy    = 4
	noAttackLanded = 0
)

// Games maps a replay to its Game node.
var Games = datamap.NewTable("Game",
	datamap.F("pal", func(g *slippi.Game) (cty.Value, error) { return datamap.OptBool(g.Start.IsPAL), nil }),
	datamap.F("stage", func(g *slippi.Game) (cty.Value, error) { return datamap.Uint(g.Start.Stage), nil }),
	datamap.F("teams", func(g *slippi.Game) (cty.Value, error) { return cty.BoolVal(g.Start.IsTeams), nil }),
	datamap.F("frozenPS", func(g *slippi.Game) (cty.Value, error) { return datamap.OptBool(g.Start.IsFrozenPS), nil }),
	datamap.F("numFrames", func(g *slippi.Game) (cty.Value, error) { return datamap.Int(len(g.Frames)), nil }),
	datamap.F(GameIDField, datamap.Placeholder[*slippi.Game]()),
	datamap.F(LabelField, datamap.Const[*slippi.Game](cty.StringVal(LabelGame))),
)

// Players maps an occupied port's starting configuration to its Player node.
var Players = datamap.NewTable("Player",
	datamap.F("team", func(p *slippi.Player) (cty.Value, error) { return datamap.OptUint(p.Team), nil }),
	datamap.F("stocks", func(p *slippi.Player) (cty.Value, error) { return datamap.Uint(p.Stocks), nil }),
	datamap.F("costume", func(p *slippi.Player) (cty.Value, error) { return datamap.Uint(p.Costume), nil }),
	datamap.F("character", func(p *slippi.Player) (cty.Value, error) { return datamap.Uint(p.Character), nil }),
	datamap.F("consciousness", func(p *slippi.Player) (cty.Value, error) { return datamap.Uint(p.Type), nil }),
	datamap.F("ucf_dash_back", func(p *slippi.Player) (cty.Value, error) {
		if p.UCF == nil {
			return cty.NilVal, datamap.Absent("ucf")
		}
		return datamap.Uint(p.UCF.DashBack), nil
	}),
	datamap.F("ucf_shield_drop", func(p *slippi.Player) (cty.Value, error) {
		if p.UCF == nil {
			return cty.NilVal, datamap.Absent("ucf")
		}
		return datamap.Uint(p.UCF.ShieldDrop), nil
	}),
	datamap.F(PortNumField, datamap.Placeholder[*slippi.Player]()),
	datamap.F(PlayerIDField, datamap.Placeholder[*slippi.Player]()),
	datamap.F(LabelField, datamap.Const[*slippi.Player](cty.StringVal(LabelPlayer))),
)

// Ports maps a port's leader snapshot at one frame to its Port node.
var Ports = datamap.NewTable("Port",
	datamap.F("posX", post(func(s *slippi.PostFrame) cty.Value { return datamap.Float32(s.Position.X) })),
	datamap.F("posY", post(func(s *slippi.PostFrame) cty.Value { return datamap.Float32(s.Position.Y) })),
	datamap.F("jumps", post(func(s *slippi.PostFrame) cty.Value { return datamap.OptUint(s.Jumps) })),
	datamap.F("state", post(func(s *slippi.PostFrame) cty.Value { return datamap.Uint(s.State) })),
	datamap.F("stocks", post(func(s *slippi.PostFrame) cty.Value { return datamap.Uint(s.Stocks) })),
	datamap.F("shield", post(func(s *slippi.PostFrame) cty.Value { return datamap.Float32(s.Shield) })),
	datamap.F("damage", post(func(s *slippi.PostFrame) cty.Value { return datamap.Float32(s.Damage) })),
	datamap.F("ground", post(func(s *slippi.PostFrame) cty.Value { return datamap.OptUint(s.Ground) })),
	datamap.F("hitStun", post(func(s *slippi.PostFrame) cty.Value { return datamap.OptFloat32(s.HitStun) })),
	datamap.F("lCancel", post(func(s *slippi.PostFrame) cty.Value { return datamap.OptUint(s.LCancel) })),
	datamap.F("airborne", post(func(s *slippi.PostFrame) cty.Value { return datamap.OptBool(s.Airborne) })),
	datamap.F("stateAge", post(func(s *slippi.PostFrame) cty.Value { return datamap.OptFloat32(s.StateAge) })),
	datamap.F("direction", post(func(s *slippi.PostFrame) cty.Value { return datamap.Float32(s.Direction) })),
	datamap.F("lastHitBy", post(func(s *slippi.PostFrame) cty.Value {
		if s.LastHitBy >= noLastHitBy {
			return cty.NullVal(cty.Number)
		}
		return datamap.Uint(s.LastHitBy)
	})),
	datamap.F("comboCount", post(func(s *slippi.PostFrame) cty.Value { return datamap.Uint(s.ComboCount) })),
	datamap.F("lastAttackLanded", post(func(s *slippi.PostFrame) cty.Value {
		if s.LastAttackLanded == noAttackLanded {
			return cty.NullVal(cty.Number)
		}
		return datamap.Uint(s.LastAttackLanded)
	})),
	datamap.F(PortIDField, datamap.Placeholder[*slippi.PostFrame]()),
	datamap.F(FrameField, datamap.Placeholder[*slippi.PostFrame]()),
	datamap.F(LabelField, datamap.Const[*slippi.PostFrame](cty.StringVal(LabelPort))),
)

// Frames maps a frame to its Frame node in the extended schema.
var Frames = datamap.NewTable("Frame",
	datamap.F(FrameField, func(f *slippi.Frame) (cty.Value, error) { return datamap.Int(f.Index), nil }),
	datamap.F(FrameIDField, datamap.Placeholder[*slippi.Frame]()),
	datamap.F(LabelField, datamap.Const[*slippi.Frame](cty.StringVal(LabelFrame))),
)

// Edges is the field list of every relationship file.
var Edges = datamap.NewHeader(TypeField, StartIDField, EndIDField)

// post adapts an infallible snapshot accessor to an extractor.
func post(get func(*slippi.PostFrame) cty.Value) datamap.Extractor[*slippi.PostFrame] {
	return func(s *slippi.PostFrame) (cty.Value, error) {
		return get(s), nil
	}
}
