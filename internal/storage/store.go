package storage

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/vk/slp2graph/internal/builder"
	"github.com/vk/slp2graph/internal/datamap"
	"github.com/vk/slp2graph/internal/schema"
)

// Store writes games to an import directory. It is safe for concurrent use,
// though games are written one at a time.
type Store struct {
	mu       sync.Mutex
	layout   Layout
	extended bool

	games    *tableWriter
	players  *tableWriter
	playedIn *tableWriter
}

// Open prepares root for writing, creating the directory tree and opening
// the shared files. Existing shared files are appended to.
func Open(root string, extended bool) (*Store, error) {
	l := Layout{Root: root}
	for _, dir := range l.Dirs(extended) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	s := &Store{layout: l, extended: extended}
	var err error
	if s.games, err = openAppend(l.Games(), schema.Games.Header()); err != nil {
		return nil, err
	}
	if s.players, err = openAppend(l.Players(), schema.Players.Header()); err != nil {
		s.Close()
		return nil, err
	}
	if extended {
		if s.playedIn, err = openAppend(l.PlayedIn(), schema.Edges); err != nil {
			s.Close()
			return nil, err
		}
	}
	return s, nil
}

// Layout returns the file names the store writes.
func (s *Store) Layout() Layout { return s.layout }

// WriteGame writes every record of g. Per-game files are written first and
// the shared files are flushed last, so a game shows up in games.csv only
// once everything it references is on disk.
func (s *Store) WriteGame(g *builder.Graph) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.layout
	for _, pg := range g.Players {
		if err := writeFile(l.Ports(g.Index, pg.Port), schema.Ports.Header(), pg.Ports); err != nil {
			return err
		}
		rels := append(edgeRecords(pg.Precedes), edgeRecords(pg.Follows)...)
		if err := writeFile(l.PortRels(g.Index, pg.Port), schema.Edges, rels); err != nil {
			return err
		}
	}
	if s.extended && g.Extended() {
		if err := writeFile(l.Frames(g.Index), schema.Frames.Header(), g.Frames); err != nil {
			return err
		}
		if err := writeFile(l.Processed(g.Index), schema.Edges, edgeRecords(g.Processed)); err != nil {
			return err
		}
		if err := writeFile(l.Contained(g.Index), schema.Edges, edgeRecords(g.Contained)); err != nil {
			return err
		}
		for _, e := range g.PlayedIn {
			if err := s.playedIn.write(e.Record()); err != nil {
				return err
			}
		}
		if err := s.playedIn.flush(); err != nil {
			return err
		}
	}

	for _, pg := range g.Players {
		if err := s.players.write(pg.Node); err != nil {
			return err
		}
	}
	if err := s.players.flush(); err != nil {
		return err
	}
	if err := s.games.write(g.Game); err != nil {
		return err
	}
	return s.games.flush()
}

// Close flushes and closes the shared files.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, w := range []*tableWriter{s.games, s.players, s.playedIn} {
		if w != nil {
			errs = append(errs, w.close())
		}
	}
	s.games, s.players, s.playedIn = nil, nil, nil
	return errors.Join(errs...)
}

func edgeRecords(edges []builder.Edge) []*datamap.Record {
	out := make([]*datamap.Record, len(edges))
	for i, e := range edges {
		out[i] = e.Record()
	}
	return out
}
