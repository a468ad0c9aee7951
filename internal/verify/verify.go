// Package verify checks an import directory for the properties a bulk
// import relies on: every node id is well formed and unique, and every
// relationship endpoint names an existing node.
package verify

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/vk/slp2graph/internal/ctxlog"
	"github.com/vk/slp2graph/internal/fsutil"
	"github.com/vk/slp2graph/internal/nodeid"
	"github.com/vk/slp2graph/internal/schema"
)

// maxViolations bounds the violations kept in a Summary. Counting goes on.
const maxViolations = 100

var idColumns = []string{schema.GameIDField, schema.PlayerIDField, schema.PortIDField, schema.FrameIDField}

// Violation is one problem found in a file.
type Violation struct {
	File string
	Line int
	Msg  string
}

func (v Violation) String() string { return fmt.Sprintf("%s:%d: %s", v.File, v.Line, v.Msg) }

// Summary is the outcome of a check.
type Summary struct {
	Nodes      map[nodeid.Kind]int
	Edges      map[string]int
	Violations []Violation
	// Total counts every violation, including those not kept.
	Total int
}

// OK reports whether no violations were found.
func (s *Summary) OK() bool { return s.Total == 0 }

func (s *Summary) add(file string, line int, format string, args ...any) {
	s.Total++
	if len(s.Violations) < maxViolations {
		s.Violations = append(s.Violations, Violation{File: file, Line: line, Msg: fmt.Sprintf(format, args...)})
	}
}

// Dir checks the import directory at root. An error means the tree could
// not be read; problems with its content are reported in the Summary.
func Dir(ctx context.Context, root string) (*Summary, error) {
	logger := ctxlog.FromContext(ctx)
	s := &Summary{Nodes: map[nodeid.Kind]int{}, Edges: map[string]int{}}

	nodeFiles, err := fsutil.FindFilesByExtension(filepath.Join(root, "nodes"), ".csv")
	if err != nil {
		return nil, fmt.Errorf("failed to list node files: %w", err)
	}
	relFiles, err := fsutil.FindFilesByExtension(filepath.Join(root, "rels"), ".csv")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to list relationship files: %w", err)
	}
	logger.Debug("Verifying import directory.", "node_files", len(nodeFiles), "rel_files", len(relFiles))

	ids := make(map[string]string)
	for _, f := range nodeFiles {
		if err := readNodes(f, root, ids, s); err != nil {
			return nil, err
		}
	}
	for _, f := range relFiles {
		if err := readRels(f, root, ids, s); err != nil {
			return nil, err
		}
	}
	logger.Info("Verification complete.", "nodes", len(ids), "violations", s.Total)
	return s, nil
}

func readNodes(path, root string, ids map[string]string, s *Summary) error {
	rel, _ := filepath.Rel(root, path)
	return eachRow(path, func(header []string) (func(line int, row []string), bool) {
		col := -1
		for i, name := range header {
			if slices.Contains(idColumns, name) {
				col = i
				break
			}
		}
		if col < 0 {
			s.add(rel, 1, "no id column in header")
			return nil, false
		}
		return func(line int, row []string) {
			id := row[col]
			addr, err := nodeid.Parse(id)
			if err != nil {
				s.add(rel, line, "%v", err)
				return
			}
			if first, dup := ids[id]; dup {
				s.add(rel, line, "duplicate id %q, first seen in %s", id, first)
				return
			}
			ids[id] = rel
			s.Nodes[addr.Kind]++
		}, true
	})
}

func readRels(path, root string, ids map[string]string, s *Summary) error {
	rel, _ := filepath.Rel(root, path)
	return eachRow(path, func(header []string) (func(line int, row []string), bool) {
		want := schema.Edges.Names()
		if !slices.Equal(header, want) {
			s.add(rel, 1, "header %v, want %v", header, want)
			return nil, false
		}
		return func(line int, row []string) {
			s.Edges[row[0]]++
			for _, id := range row[1:] {
				if _, ok := ids[id]; !ok {
					s.add(rel, line, "%s edge references unknown node %q", row[0], id)
				}
			}
		}, true
	})
}

// eachRow reads a CSV file, handing the header to start. If start accepts
// it, the returned function is called for every following row.
func eachRow(path string, start func(header []string) (func(line int, row []string), bool)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	row, ok := start(header)
	if !ok {
		return nil
	}
	for line := 2; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		row(line, rec)
	}
}
