package slippi

import (
	"fmt"
	"os"
	"strconv"
)

// DecodeFile reads and decodes the replay at path.
func DecodeFile(path string) (*Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read replay: %w", err)
	}
	return Decode(data)
}

// Decode decodes a complete replay file held in memory. The returned Game
// references data, which must not be modified afterwards.
func Decode(data []byte) (*Game, error) {
	r := &ubjsonReader{buf: data}
	m, err := r.marker()
	if err != nil {
		return nil, err
	}
	if m != '{' {
		return nil, &FormatError{Msg: "replay is not a UBJSON object"}
	}
	root, err := r.object()
	if err != nil {
		return nil, err
	}

	raw, ok := root["raw"].([]byte)
	if !ok {
		return nil, &FormatError{Msg: `replay has no "raw" byte array`}
	}
	game, err := parseEvents(raw)
	if err != nil {
		return nil, err
	}
	if meta, ok := root["metadata"].(map[string]any); ok {
		game.Metadata = parseMetadata(meta)
	}
	return game, nil
}

func parseMetadata(m map[string]any) *Metadata {
	md := &Metadata{}
	md.StartAt, _ = m["startAt"].(string)
	md.PlayedOn, _ = m["playedOn"].(string)
	md.ConsoleNick, _ = m["consoleNick"].(string)
	if lf, ok := m["lastFrame"].(int64); ok {
		v := int(lf)
		md.LastFrame = &v
	}
	players, _ := m["players"].(map[string]any)
	for key, raw := range players {
		port, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		p, _ := raw.(map[string]any)
		names, _ := p["names"].(map[string]any)
		if name, ok := names["netplay"].(string); ok && name != "" {
			if md.Netplay == nil {
				md.Netplay = make(map[int]string)
			}
			md.Netplay[port] = name
		}
	}
	return md
}
