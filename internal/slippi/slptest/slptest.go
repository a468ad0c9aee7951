// Package slptest writes synthetic Slippi replays for tests.
package slptest

import (
	"bytes"
	"encoding/binary"
	"math"
	"sort"
	"strconv"

	"github.com/vk/slp2graph/internal/slippi"
)

// Event lengths including the command byte.
const (
	gameStartLen      = 0x1A3
	shortGameStartLen = 0x141
	preFrameLen       = 0x41
	postFrameLen      = 0x34
	legacyPostLen     = 0x26
	gameEndLen        = 0x03
)

// Replay describes a replay to encode.
type Replay struct {
	Version  slippi.Version
	IsTeams  bool
	Stage    uint16
	Players  [slippi.NumPorts]*slippi.Player
	PAL      bool
	FrozenPS bool
	// ShortStart writes a Game Start event that predates the UCF, PAL and
	// frozen Pokémon Stadium fields.
	ShortStart bool
	// LegacyPost writes Post-Frame events that predate the 2.0.0 fields.
	LegacyPost bool
	Frames     []Frame
	EndMethod  uint8
	Metadata   *slippi.Metadata
}

// Frame is the data written for one frame. Index counts from
// slippi.FirstFrame.
type Frame struct {
	Index     int
	Ports     [slippi.NumPorts]*slippi.PostFrame
	Followers [slippi.NumPorts]*slippi.PostFrame
}

// Simple returns a replay with players on ports 0..players-1, each present
// in every one of the given number of frames.
func Simple(players, frames int) *Replay {
	r := &Replay{Version: slippi.Version{Major: 3, Minor: 12}, Stage: 31}
	for p := range players {
		r.Players[p] = NewPlayer(p)
	}
	for f := range frames {
		fr := Frame{Index: f}
		for p := range players {
			fr.Ports[p] = NewPost(p, f)
		}
		r.Frames = append(r.Frames, fr)
	}
	return r
}

// NewPlayer returns a human player whose settings derive from port.
func NewPlayer(port int) *slippi.Player {
	return &slippi.Player{
		Character: uint8(2 + port),
		Type:      slippi.PlayerHuman,
		Stocks:    4,
		Costume:   uint8(port),
		UCF:       &slippi.UCF{DashBack: slippi.UCFOn, ShieldDrop: slippi.UCFDween},
	}
}

// NewPost returns a snapshot whose values derive from port and frame, with
// every optional field set.
func NewPost(port, frame int) *slippi.PostFrame {
	age := float32(frame) + 1
	stun := float32(0)
	air := frame%2 == 1
	ground := uint16(port + 1)
	jumps := uint8(2)
	lc := slippi.LCancelNone
	return &slippi.PostFrame{
		Character:  uint8(port),
		State:      uint16(14 + frame%3),
		Position:   slippi.Position{X: float32(frame) * 0.5, Y: -float32(port)},
		Direction:  1,
		Damage:     float32(frame),
		Shield:     60,
		ComboCount: uint8(frame % 4),
		LastHitBy:  6,
		Stocks:     4,
		StateAge:   &age,
		HitStun:    &stun,
		Airborne:   &air,
		Ground:     &ground,
		Jumps:      &jumps,
		LCancel:    &lc,
	}
}

// Bytes encodes the replay as a complete .slp file.
func (r *Replay) Bytes() []byte {
	raw := r.events()

	var b bytes.Buffer
	b.WriteByte('{')
	key(&b, "raw")
	b.WriteString("[$U#l")
	binary.Write(&b, binary.BigEndian, int32(len(raw)))
	b.Write(raw)
	if r.Metadata != nil {
		key(&b, "metadata")
		metadata(&b, r.Metadata)
	}
	b.WriteByte('}')
	return b.Bytes()
}

func (r *Replay) events() []byte {
	startLen := gameStartLen
	if r.ShortStart {
		startLen = shortGameStartLen
	}
	postLen := postFrameLen
	if r.LegacyPost {
		postLen = legacyPostLen
	}

	var b bytes.Buffer
	b.Write([]byte{0x35, 1 + 3*4})
	for _, e := range []struct {
		cmd byte
		len int
	}{{0x36, startLen}, {0x37, preFrameLen}, {0x38, postLen}, {0x39, gameEndLen}} {
		b.WriteByte(e.cmd)
		binary.Write(&b, binary.BigEndian, uint16(e.len-1))
	}

	b.Write(r.gameStart(startLen))
	for _, f := range r.Frames {
		number := int32(f.Index + slippi.FirstFrame)
		for port := range slippi.NumPorts {
			if f.Ports[port] == nil {
				continue
			}
			pre := make([]byte, preFrameLen)
			pre[0] = 0x37
			binary.BigEndian.PutUint32(pre[1:], uint32(number))
			pre[5] = byte(port)
			b.Write(pre)
			b.Write(postFrame(postLen, number, port, false, f.Ports[port]))
			if f.Followers[port] != nil {
				b.Write(postFrame(postLen, number, port, true, f.Followers[port]))
			}
		}
	}
	b.Write([]byte{0x39, r.EndMethod, 0xFF})
	return b.Bytes()
}

func (r *Replay) gameStart(length int) []byte {
	p := make([]byte, length)
	p[0] = 0x36
	p[1], p[2], p[3] = r.Version.Major, r.Version.Minor, r.Version.Build
	if r.IsTeams {
		p[0xD] = 1
	}
	binary.BigEndian.PutUint16(p[0x13:], r.Stage)
	for port, pl := range r.Players {
		base := 0x24 * port
		if pl == nil {
			p[0x66+base] = byte(slippi.PlayerEmpty)
			continue
		}
		p[0x65+base] = pl.Character
		p[0x66+base] = byte(pl.Type)
		p[0x67+base] = pl.Stocks
		p[0x68+base] = pl.Costume
		if pl.Team != nil {
			p[0x6E+base] = *pl.Team
		}
		if ucf := 0x141 + 0x8*port; pl.UCF != nil && ucf+8 <= length {
			binary.BigEndian.PutUint32(p[ucf:], uint32(pl.UCF.DashBack))
			binary.BigEndian.PutUint32(p[ucf+4:], uint32(pl.UCF.ShieldDrop))
		}
	}
	if length > 0x1A2 {
		p[0x1A1] = boolByte(r.PAL)
		p[0x1A2] = boolByte(r.FrozenPS)
	}
	return p
}

func postFrame(length int, number int32, port int, follower bool, s *slippi.PostFrame) []byte {
	p := make([]byte, length)
	p[0] = 0x38
	binary.BigEndian.PutUint32(p[0x1:], uint32(number))
	p[0x5] = byte(port)
	p[0x6] = boolByte(follower)
	p[0x7] = s.Character
	binary.BigEndian.PutUint16(p[0x8:], s.State)
	putF32(p[0xA:], s.Position.X)
	putF32(p[0xE:], s.Position.Y)
	putF32(p[0x12:], s.Direction)
	putF32(p[0x16:], s.Damage)
	putF32(p[0x1A:], s.Shield)
	p[0x1E] = s.LastAttackLanded
	p[0x1F] = s.ComboCount
	p[0x20] = s.LastHitBy
	p[0x21] = s.Stocks
	if s.StateAge != nil {
		putF32(p[0x22:], *s.StateAge)
	}
	if length < postFrameLen {
		return p
	}
	if s.HitStun != nil {
		putF32(p[0x2B:], *s.HitStun)
	}
	if s.Airborne != nil {
		p[0x2F] = boolByte(*s.Airborne)
	}
	if s.Ground != nil {
		binary.BigEndian.PutUint16(p[0x30:], *s.Ground)
	}
	if s.Jumps != nil {
		p[0x32] = *s.Jumps
	}
	if s.LCancel != nil {
		p[0x33] = byte(*s.LCancel)
	}
	return p
}

func metadata(b *bytes.Buffer, md *slippi.Metadata) {
	b.WriteByte('{')
	if md.StartAt != "" {
		key(b, "startAt")
		str(b, md.StartAt)
	}
	if md.PlayedOn != "" {
		key(b, "playedOn")
		str(b, md.PlayedOn)
	}
	if md.ConsoleNick != "" {
		key(b, "consoleNick")
		str(b, md.ConsoleNick)
	}
	if md.LastFrame != nil {
		key(b, "lastFrame")
		b.WriteByte('l')
		binary.Write(b, binary.BigEndian, int32(*md.LastFrame))
	}
	if len(md.Netplay) > 0 {
		ports := make([]int, 0, len(md.Netplay))
		for port := range md.Netplay {
			ports = append(ports, port)
		}
		sort.Ints(ports)

		key(b, "players")
		b.WriteByte('{')
		for _, port := range ports {
			key(b, strconv.Itoa(port))
			b.WriteByte('{')
			key(b, "names")
			b.WriteByte('{')
			key(b, "netplay")
			str(b, md.Netplay[port])
			b.WriteString("}}")
		}
		b.WriteByte('}')
	}
	b.WriteByte('}')
}

func key(b *bytes.Buffer, k string) {
	b.WriteByte('U')
	b.WriteByte(byte(len(k)))
	b.WriteString(k)
}

func str(b *bytes.Buffer, s string) {
	b.WriteByte('S')
	key(b, s)
}

func putF32(b []byte, v float32) {
	binary.BigEndian.PutUint32(b, math.Float32bits(v))
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}

// Game returns the value Decode yields for r.Bytes(), less metadata and
// end event. Frames must be listed in order starting at index 0.
func (r *Replay) Game() *slippi.Game {
	g := &slippi.Game{Start: slippi.Start{
		Version: r.Version,
		IsTeams: r.IsTeams,
		Stage:   r.Stage,
		Players: r.Players,
	}}
	if !r.ShortStart {
		pal, frozen := r.PAL, r.FrozenPS
		g.Start.IsPAL = &pal
		g.Start.IsFrozenPS = &frozen
	}
	for _, f := range r.Frames {
		fr := slippi.Frame{Index: f.Index}
		for p, s := range f.Ports {
			if s != nil {
				fr.Ports[p] = &slippi.PortData{Leader: s, Follower: f.Followers[p]}
			}
		}
		g.Frames = append(g.Frames, fr)
	}
	return g
}
