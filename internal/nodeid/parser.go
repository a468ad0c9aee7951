// internal/nodeid/parser.go
package nodeid

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse recovers the Address from its canonical identifier.
func Parse(rawID string) (Address, error) {
	if rawID == "" {
		return Address{}, fmt.Errorf("identifier cannot be empty")
	}

	parts := strings.Split(rawID, sep)
	kind := Kind(parts[0])
	want, ok := arity[kind]
	if !ok {
		return Address{}, fmt.Errorf("unknown identifier kind %q in %q", parts[0], rawID)
	}
	if len(parts)-1 != want {
		return Address{}, fmt.Errorf("identifier %q: %s expects %d indices, got %d", rawID, kind, want, len(parts)-1)
	}

	idx := make([]int, want)
	for i, p := range parts[1:] {
		if p == "" || strings.TrimLeft(p, "0123456789") != "" {
			return Address{}, fmt.Errorf("identifier %q: invalid index %q", rawID, p)
		}
		if len(p) > 1 && p[0] == '0' {
			return Address{}, fmt.Errorf("identifier %q: index %q has a leading zero", rawID, p)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return Address{}, fmt.Errorf("identifier %q: %w", rawID, err)
		}
		idx[i] = n
	}

	switch kind {
	case KindGame:
		return GameAddress(idx[0]), nil
	case KindPlayer:
		return PlayerAddress(idx[0], idx[1]), nil
	case KindPort:
		return PortAddress(idx[0], idx[1], idx[2]), nil
	default:
		return FrameAddress(idx[0], idx[1]), nil
	}
}
