// internal/nodeid/address.go
package nodeid

import (
	"strconv"
	"strings"
)

const sep = "-"

// GameID returns "game-<game>".
func GameID(game int) string { return GameAddress(game).String() }

// PlayerID returns "player-<game>-<port>".
func PlayerID(game, port int) string { return PlayerAddress(game, port).String() }

// PortID returns "port-<game>-<port>-<frame>".
func PortID(game, port, frame int) string { return PortAddress(game, port, frame).String() }

// FrameID returns "frame-<game>-<frame>".
func FrameID(game, frame int) string { return FrameAddress(game, frame).String() }

// String serializes the Address into its canonical identifier.
func (a Address) String() string {
	var sb strings.Builder
	sb.WriteString(string(a.Kind))
	for _, idx := range a.indices() {
		sb.WriteString(sep)
		sb.WriteString(strconv.Itoa(idx))
	}
	return sb.String()
}

// Equal reports whether two addresses identify the same node.
func (a Address) Equal(other Address) bool {
	return a == other
}

// indices returns the indices the kind embeds, in identifier order.
func (a Address) indices() []int {
	switch a.Kind {
	case KindGame:
		return []int{a.Game}
	case KindPlayer:
		return []int{a.Game, a.Port}
	case KindPort:
		return []int{a.Game, a.Port, a.Frame}
	case KindFrame:
		return []int{a.Game, a.Frame}
	}
	return nil
}
