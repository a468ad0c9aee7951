package batch

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"sync"

	"github.com/vk/slp2graph/internal/archive"
	"github.com/vk/slp2graph/internal/ctxlog"
	"github.com/vk/slp2graph/internal/slippi"
)

// decoded is the outcome of reading and decoding one replay.
type decoded struct {
	game   *slippi.Game
	digest [32]byte
	err    error
}

// decodeStream decodes entries ahead of the consumer, at most workers at a
// time. Results come out of next in entry order; a result is held only
// until the consumer takes it.
type decodeStream struct {
	slots  chan chan decoded
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func (d *Driver) decodeEntries(ctx context.Context, entries []archive.Entry) *decodeStream {
	ctx, cancel := context.WithCancel(ctx)
	workers := max(d.opts.Workers, 1)
	s := &decodeStream{
		// The slot the consumer waits on is outside the buffer, so
		// workers-1 queued slots keep exactly workers decodes in flight.
		slots:  make(chan chan decoded, workers-1),
		cancel: cancel,
	}
	ctxlog.FromContext(ctx).Debug("Decoding replays.", "workers", workers, "count", len(entries))

	go func() {
		defer close(s.slots)
		for _, e := range entries {
			if ctx.Err() != nil {
				return
			}
			slot := make(chan decoded, 1)
			select {
			case s.slots <- slot:
			case <-ctx.Done():
				return
			}
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				slot <- d.decodeOne(e.Path)
			}()
		}
	}()
	return s
}

// next returns the result of the next entry. ok is false once the stream
// is exhausted or cancelled.
func (s *decodeStream) next() (res decoded, ok bool) {
	slot, ok := <-s.slots
	if !ok {
		return decoded{}, false
	}
	return <-slot, true
}

// close stops decoding and waits for in-flight decodes, which may still be
// reading from the scratch directory.
func (s *decodeStream) close() {
	s.cancel()
	for range s.slots {
	}
	s.wg.Wait()
}

func (d *Driver) decodeOne(path string) (res decoded) {
	defer func() {
		if r := recover(); r != nil {
			res = decoded{err: fmt.Errorf("decoder panic: %v", r)}
		}
	}()
	data, err := os.ReadFile(path)
	if err != nil {
		return decoded{err: err}
	}
	res.digest = sha256.Sum256(data)
	res.game, res.err = d.decode(data)
	return res
}
