package storage

import (
	"fmt"
	"path/filepath"
)

// Layout names the files of an import directory.
type Layout struct {
	Root string
}

func (l Layout) Games() string   { return filepath.Join(l.Root, "nodes", "games", "games.csv") }
func (l Layout) Players() string { return filepath.Join(l.Root, "nodes", "players", "players.csv") }

// Ports is the Port node file of one player.
func (l Layout) Ports(g, p int) string {
	return filepath.Join(l.Root, "nodes", "ports", pair(g, p))
}

// PortRels holds the precedes and follows edges of one player.
func (l Layout) PortRels(g, p int) string {
	return filepath.Join(l.Root, "rels", pair(g, p))
}

func (l Layout) Frames(g int) string {
	return filepath.Join(l.Root, "nodes", "frames", fmt.Sprintf("%d.csv", g))
}

func (l Layout) PlayedIn() string {
	return filepath.Join(l.Root, "rels", "played_in", "played_in.csv")
}

func (l Layout) Processed(g int) string {
	return filepath.Join(l.Root, "rels", "processed", fmt.Sprintf("%d.csv", g))
}

func (l Layout) Contained(g int) string {
	return filepath.Join(l.Root, "rels", "contained", fmt.Sprintf("%d.csv", g))
}

// Dirs lists every directory the layout writes into.
func (l Layout) Dirs(extended bool) []string {
	dirs := []string{
		filepath.Dir(l.Games()),
		filepath.Dir(l.Players()),
		filepath.Dir(l.Ports(0, 0)),
		filepath.Dir(l.PortRels(0, 0)),
	}
	if extended {
		dirs = append(dirs,
			filepath.Dir(l.Frames(0)),
			filepath.Dir(l.PlayedIn()),
			filepath.Dir(l.Processed(0)),
			filepath.Dir(l.Contained(0)),
		)
	}
	return dirs
}

func pair(g, p int) string { return fmt.Sprintf("%d_%d.csv", g, p) }
