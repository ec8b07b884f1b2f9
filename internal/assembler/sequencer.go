package assembler

import (
	"fmt"
	"log/slog"
	"sync"

	"filmstrip/internal/faults"
	"filmstrip/internal/logging"
)

// sequencer walks the pending store from a monotonic cursor and commits
// every contiguous completed frame to the sink, in index order. The first
// failure it encounters is latched for the pipeline's remaining lifetime and
// permanently stops commits.
type sequencer struct {
	mu        sync.Mutex
	store     *pendingStore
	sink      Sink
	gate      writerGate
	logger    *slog.Logger
	cursor    uint64
	timestamp float64
	latched   error
}

// drain commits every contiguous completed frame currently available.
// Returns the latched error, which once set is returned by every subsequent
// call without touching the sink.
func (s *sequencer) drain() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.latched != nil {
		return s.latched
	}
	for {
		run := s.store.takeContiguous(s.cursor)
		if len(run) == 0 {
			return nil
		}
		for _, out := range run {
			if out.err != nil {
				s.latch(out.err)
				return s.latched
			}
			if err := s.gate.awaitReady(s.sink); err != nil {
				s.latch(err)
				return s.latched
			}
			if !s.sink.Append(out.frame.Buffer, s.timestamp) {
				s.latch(faults.Wrap(
					faults.ErrFrame,
					"commit",
					"append frame",
					fmt.Sprintf("sink rejected frame %d", s.cursor),
					nil,
				))
				return s.latched
			}
			s.logger.Debug("frame committed",
				logging.Uint64("frame", s.cursor),
				logging.Float64("pts", s.timestamp),
				logging.Float64("duration", out.frame.Duration),
			)
			s.timestamp += out.frame.Duration
			s.cursor++
		}
	}
}

func (s *sequencer) latch(err error) {
	if s.latched == nil {
		s.latched = err
		s.logger.Error("pipeline poisoned", logging.Uint64("frame", s.cursor), logging.Error(err))
	}
}

// committed returns the number of frames committed to the sink so far.
func (s *sequencer) committed() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// position returns the cumulative timestamp of committed frames in seconds.
func (s *sequencer) position() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timestamp
}

// err returns the latched error, if any.
func (s *sequencer) err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latched
}
