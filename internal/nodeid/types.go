// internal/nodeid/types.go
package nodeid

// Kind names the node type an identifier belongs to.
type Kind string

const (
	KindGame   Kind = "game"
	KindPlayer Kind = "player"
	KindPort   Kind = "port"
	KindFrame  Kind = "frame"
)

// arity is the number of indices each kind embeds.
var arity = map[Kind]int{
	KindGame:   1,
	KindPlayer: 2,
	KindPort:   3,
	KindFrame:  2,
}

// Address is the structured form of an identifier. Indices a kind does not
// carry are -1.
type Address struct {
	Kind  Kind
	Game  int
	Port  int
	Frame int
}

// GameAddress returns the address of a game node.
func GameAddress(game int) Address {
	return Address{Kind: KindGame, Game: game, Port: -1, Frame: -1}
}

// PlayerAddress returns the address of a player node.
func PlayerAddress(game, port int) Address {
	return Address{Kind: KindPlayer, Game: game, Port: port, Frame: -1}
}

// PortAddress returns the address of a per-frame port node.
func PortAddress(game, port, frame int) Address {
	return Address{Kind: KindPort, Game: game, Port: port, Frame: frame}
}

// FrameAddress returns the address of a frame node.
func FrameAddress(game, frame int) Address {
	return Address{Kind: KindFrame, Game: game, Port: -1, Frame: frame}
}
