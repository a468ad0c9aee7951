// internal/nodeid/parser_test.go
package nodeid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name         string
		rawID        string
		expectErr    bool
		expectedAddr Address
	}{
		{
			name:         "game",
			rawID:        "game-4",
			expectedAddr: Address{Kind: KindGame, Game: 4, Port: -1, Frame: -1},
		},
		{
			name:         "player",
			rawID:        "player-4-2",
			expectedAddr: Address{Kind: KindPlayer, Game: 4, Port: 2, Frame: -1},
		},
		{
			name:         "port",
			rawID:        "port-4-2-100",
			expectedAddr: Address{Kind: KindPort, Game: 4, Port: 2, Frame: 100},
		},
		{
			name:         "frame",
			rawID:        "frame-4-100",
			expectedAddr: Address{Kind: KindFrame, Game: 4, Port: -1, Frame: 100},
		},
		{name: "error - empty string", rawID: "", expectErr: true},
		{name: "error - unknown kind", rawID: "stage-1", expectErr: true},
		{name: "error - too few indices", rawID: "port-1-2", expectErr: true},
		{name: "error - too many indices", rawID: "game-1-2", expectErr: true},
		{name: "error - empty index", rawID: "player-1-", expectErr: true},
		{name: "error - negative index", rawID: "game--1", expectErr: true},
		{name: "error - non-numeric index", rawID: "game-x", expectErr: true},
		{name: "error - leading zero", rawID: "game-01", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			addr, err := Parse(tc.rawID)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedAddr, addr)
		})
	}
}
