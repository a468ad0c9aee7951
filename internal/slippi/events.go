package slippi

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Event command bytes.
const (
	cmdEventPayloads = 0x35
	cmdGameStart     = 0x36
	cmdPreFrame      = 0x37
	cmdPostFrame     = 0x38
	cmdGameEnd       = 0x39
)

// Minimum payload lengths, counted from the command byte.
const (
	minGameStartLen = 0x6F + 0x24*(NumPorts-1)
	minPostFrameLen = 0x22
	minGameEndLen   = 0x02
)

// payload is one event including its command byte, so field offsets match
// the ones in the Slippi format documentation.
type payload []byte

func (p payload) has(off, size int) bool { return off+size <= len(p) }

func (p payload) u8(off int) uint8 { return p[off] }
func (p payload) i8(off int) int8 { return int8(p[off]) }
func (p payload) flag(off int) bool { return p[off] != 0 }
func (p payload) u16(off int) uint16 { return binary.BigEndian.Uint16(p[off:]) }
func (p payload) u32(off int) uint32 { return binary.BigEndian.Uint32(p[off:]) }
func (p payload) i32(off int) int32 { return int32(binary.BigEndian.Uint32(p[off:])) }
func (p payload) f32(off int) float32 {
	return math.Float32frombits(binary.BigEndian.Uint32(p[off:]))
}

func optBool(p payload, off int) *bool {
	if !p.has(off, 1) {
		return nil
	}
	v := p.flag(off)
	return &v
}

func optU8(p payload, off int) *uint8 {
	if !p.has(off, 1) {
		return nil
	}
	v := p.u8(off)
	return &v
}

func optU16(p payload, off int) *uint16 {
	if !p.has(off, 2) {
		return nil
	}
	v := p.u16(off)
	return &v
}

func optF32(p payload, off int) *float32 {
	if !p.has(off, 4) {
		return nil
	}
	v := p.f32(off)
	return &v
}

func parseGameStart(p payload) (Start, error) {
	if len(p) < minGameStartLen {
		return Start{}, &FormatError{Msg: "game start event too short"}
	}
	s := Start{
		Version: Version{Major: p.u8(0x1), Minor: p.u8(0x2), Build: p.u8(0x3)},
		IsTeams: p.flag(0xD),
		Stage:   p.u16(0x13),
	}
	if p.has(0x13D, 4) {
		s.RandomSeed = p.u32(0x13D)
	}
	for port := range NumPorts {
		base := 0x24 * port
		typ := PlayerType(p.u8(0x66 + base))
		if typ == PlayerEmpty {
			continue
		}
		pl := &Player{
			Character: p.u8(0x65 + base),
			Type:      typ,
			Stocks:    p.u8(0x67 + base),
			Costume:   p.u8(0x68 + base),
		}
		if s.IsTeams {
			team := p.u8(0x6E + base)
			pl.Team = &team
		}
		ucf := 0x141 + 0x8*port
		if p.has(ucf, 8) {
			pl.UCF = &UCF{
				DashBack:   UCFToggle(p.u32(ucf)),
				ShieldDrop: UCFToggle(p.u32(ucf + 4)),
			}
		}
		s.Players[port] = pl
	}
	s.IsPAL = optBool(p, 0x1A1)
	s.IsFrozenPS = optBool(p, 0x1A2)
	return s, nil
}

// postFrameEvent is a decoded Post-Frame Update together with its address.
type postFrameEvent struct {
	frame    int32
	port     int
	follower bool
	post     *PostFrame
}

func parsePostFrame(p payload) (postFrameEvent, error) {
	if len(p) < minPostFrameLen {
		return postFrameEvent{}, &FormatError{Msg: "post-frame event too short"}
	}
	ev := postFrameEvent{
		frame:    p.i32(0x1),
		port:     int(p.u8(0x5)),
		follower: p.flag(0x6),
	}
	if ev.port >= NumPorts {
		return postFrameEvent{}, &FormatError{Msg: "post-frame event for invalid port"}
	}
	post := &PostFrame{
		Character:        p.u8(0x7),
		State:            p.u16(0x8),
		Position:         Position{X: p.f32(0xA), Y: p.f32(0xE)},
		Direction:        p.f32(0x12),
		Damage:           p.f32(0x16),
		Shield:           p.f32(0x1A),
		LastAttackLanded: p.u8(0x1E),
		ComboCount:       p.u8(0x1F),
		LastHitBy:        p.u8(0x20),
		Stocks:           p.u8(0x21),
		StateAge:         optF32(p, 0x22),
		HitStun:          optF32(p, 0x2B),
		Airborne:         optBool(p, 0x2F),
		Ground:           optU16(p, 0x30),
		Jumps:            optU8(p, 0x32),
	}
	if p.has(0x33, 1) {
		lc := LCancel(p.u8(0x33))
		post.LCancel = &lc
	}
	ev.post = post
	return ev, nil
}

func parseGameEnd(p payload) (*End, error) {
	if len(p) < minGameEndLen {
		return nil, &FormatError{Msg: "game end event too short"}
	}
	end := &End{Method: p.u8(0x1)}
	if p.has(0x2, 1) {
		if v := p.i8(0x2); v >= 0 {
			end.LRASInitiator = &v
		}
	}
	return end, nil
}

// parseEvents decodes the raw event stream of a replay.
func parseEvents(raw []byte) (*Game, error) {
	if len(raw) < 2 || raw[0] != cmdEventPayloads {
		return nil, &FormatError{Msg: "event stream does not start with event payloads"}
	}

	sizes := map[byte]int{cmdEventPayloads: int(raw[1])}
	if 1+sizes[cmdEventPayloads] > len(raw) {
		return nil, &FormatError{Offset: 1, Msg: "event payloads event truncated"}
	}
	for off := 2; off+3 <= 1+sizes[cmdEventPayloads]; off += 3 {
		sizes[raw[off]] = int(binary.BigEndian.Uint16(raw[off+1:]))
	}

	game := &Game{}
	var started bool
	pos := 1 + sizes[cmdEventPayloads]
	for pos < len(raw) {
		cmd := raw[pos]
		size, ok := sizes[cmd]
		if !ok {
			return nil, &FormatError{Offset: pos, Msg: "unknown event command"}
		}
		end := pos + 1 + size
		if end > len(raw) {
			return nil, &FormatError{Offset: pos, Msg: "event truncated"}
		}
		p := payload(raw[pos:end])

		switch cmd {
		case cmdGameStart:
			start, err := parseGameStart(p)
			if err != nil {
				return nil, withOffset(err, pos)
			}
			game.Start = start
			started = true
		case cmdPostFrame:
			if !started {
				return nil, &FormatError{Offset: pos, Msg: "post-frame event before game start"}
			}
			ev, err := parsePostFrame(p)
			if err != nil {
				return nil, withOffset(err, pos)
			}
			if err := game.addPostFrame(ev); err != nil {
				return nil, withOffset(err, pos)
			}
		case cmdGameEnd:
			end, err := parseGameEnd(p)
			if err != nil {
				return nil, withOffset(err, pos)
			}
			game.End = end
		}
		pos = end
	}

	if !started {
		return nil, &FormatError{Offset: pos, Msg: "replay has no game start event"}
	}
	return game, nil
}

// addPostFrame stores a post-frame snapshot. Frames arrive contiguously; a
// later snapshot for the same frame and port replaces the earlier one,
// which is how rollback frames resolve.
func (g *Game) addPostFrame(ev postFrameEvent) error {
	idx := int(ev.frame) - FirstFrame
	if idx < 0 {
		return &FormatError{Msg: "frame number before the first frame"}
	}
	switch {
	case idx == len(g.Frames):
		g.Frames = append(g.Frames, Frame{Index: idx})
	case idx > len(g.Frames):
		return &FormatError{Msg: fmt.Sprintf("frame %d skips past frame %d", ev.frame, len(g.Frames)+FirstFrame)}
	}
	f := &g.Frames[idx]
	if f.Ports[ev.port] == nil {
		f.Ports[ev.port] = &PortData{}
	}
	if ev.follower {
		f.Ports[ev.port].Follower = ev.post
	} else {
		f.Ports[ev.port].Leader = ev.post
	}
	return nil
}

func withOffset(err error, off int) error {
	if fe, ok := err.(*FormatError); ok {
		return &FormatError{Offset: off + fe.Offset, Msg: fe.Msg}
	}
	return err
}
