package storage

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/slp2graph/internal/datamap"
)

// tableWriter appends records to one delimited file. The header row is
// written only when the file starts out empty.
type tableWriter struct {
	path   string
	header *datamap.Header
	file   *os.File
	buf    *bufio.Writer
	csv    *csv.Writer
}

func openAppend(path string, header *datamap.Header) (*tableWriter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	w := newTableWriter(path, header, f)
	if info.Size() == 0 {
		if err := w.csv.Write(header.Names()); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write header to %s: %w", path, err)
		}
		if err := w.flush(); err != nil {
			f.Close()
			return nil, err
		}
	}
	return w, nil
}

func newTableWriter(path string, header *datamap.Header, f *os.File) *tableWriter {
	buf := bufio.NewWriter(f)
	return &tableWriter{path: path, header: header, file: f, buf: buf, csv: csv.NewWriter(buf)}
}

func (w *tableWriter) write(rec *datamap.Record) error {
	if rec.Header() != w.header {
		return fmt.Errorf("record for %s has a foreign header", w.path)
	}
	vals := rec.Values()
	row := make([]string, len(vals))
	for i, v := range vals {
		row[i] = datamap.Text(v)
	}
	if err := w.csv.Write(row); err != nil {
		return fmt.Errorf("failed to write %s: %w", w.path, err)
	}
	return nil
}

func (w *tableWriter) flush() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", w.path, err)
	}
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", w.path, err)
	}
	return nil
}

func (w *tableWriter) close() error {
	if err := w.flush(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}

// writeFile writes header and records to path in full. Content goes to a
// temporary file in the same directory first, so path either holds the
// complete table or is left untouched.
func writeFile(path string, header *datamap.Header, recs []*datamap.Record) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	w := newTableWriter(path, header, f)
	if err := w.csv.Write(header.Names()); err != nil {
		f.Close()
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	for _, rec := range recs {
		if err := w.write(rec); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}
