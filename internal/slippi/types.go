package slippi

import "fmt"

// FirstFrame is the frame number of the first frame of every game. Frame
// indices used by this package count from it, so index 0 is frame -123.
const FirstFrame = -123

// NumPorts is the number of controller ports a game can have.
const NumPorts = 4

// Version is the Slippi version that recorded a replay.
type Version struct {
	Major, Minor, Build uint8
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Build)
}

// AtLeast reports whether v is the same as or newer than major.minor.build.
func (v Version) AtLeast(major, minor, build uint8) bool {
	if v.Major != major {
		return v.Major > major
	}
	if v.Minor != minor {
		return v.Minor > minor
	}
	return v.Build >= build
}

// PlayerType is the kind of controller occupying a port.
type PlayerType uint8

const (
	PlayerHuman PlayerType = 0
	PlayerCPU   PlayerType = 1
	PlayerDemo  PlayerType = 2
	PlayerEmpty PlayerType = 3
)

// UCFToggle is the state of one Universal Controller Fix option.
type UCFToggle uint32

const (
	UCFOff   UCFToggle = 0
	UCFOn    UCFToggle = 1
	UCFDween UCFToggle = 2
)

// LCancel is the outcome of the most recent L-cancel attempt.
type LCancel uint8

const (
	LCancelNone    LCancel = 0
	LCancelSuccess LCancel = 1
	LCancelFailure LCancel = 2
)

// Game is one decoded replay.
type Game struct {
	Start    Start
	Frames   []Frame
	End      *End
	Metadata *Metadata
}

// Start holds the match settings recorded when the game began.
type Start struct {
	Version    Version
	IsTeams    bool
	Stage      uint16
	RandomSeed uint32
	// Players is indexed by port. Unoccupied ports are nil.
	Players [NumPorts]*Player
	// IsPAL is nil for replays older than 1.5.0.
	IsPAL *bool
	// IsFrozenPS is nil for replays older than 2.0.0.
	IsFrozenPS *bool
}

// Player is the starting configuration of one occupied port.
type Player struct {
	Character uint8
	Type      PlayerType
	Stocks    uint8
	Costume   uint8
	// Team is nil outside of team games.
	Team *uint8
	// UCF is nil when the Game Start event is too short to carry it.
	UCF *UCF
}

// UCF holds a player's Universal Controller Fix settings.
type UCF struct {
	DashBack   UCFToggle
	ShieldDrop UCFToggle
}

// Frame is the state of every port at one frame.
type Frame struct {
	// Index counts from FirstFrame.
	Index int
	// Ports is indexed by port. A port is nil when it has no data for
	// this frame.
	Ports [NumPorts]*PortData
}

// PortData is the state of one port at one frame. Ice Climbers are the
// only characters with a follower.
type PortData struct {
	Leader   *PostFrame
	Follower *PostFrame
}

// Position is a point in stage coordinates.
type Position struct {
	X, Y float32
}

// PostFrame is the character state at the end of a frame.
type PostFrame struct {
	Character        uint8
	State            uint16
	Position         Position
	Direction        float32
	Damage           float32
	Shield           float32
	LastAttackLanded uint8
	ComboCount       uint8
	LastHitBy        uint8
	Stocks           uint8

	// Added in 0.2.0.
	StateAge *float32

	// Added in 2.0.0.
	HitStun  *float32
	Airborne *bool
	Ground   *uint16
	Jumps    *uint8
	LCancel  *LCancel
}

// End describes how the game finished.
type End struct {
	Method uint8
	// LRASInitiator is the port that quit out, nil for older replays or
	// when nobody did.
	LRASInitiator *int8
}

// Metadata is the replay's "metadata" object. All fields are optional.
type Metadata struct {
	StartAt     string
	PlayedOn    string
	ConsoleNick string
	LastFrame   *int
	// Netplay maps port to the netplay display name, when present.
	Netplay map[int]string
}
