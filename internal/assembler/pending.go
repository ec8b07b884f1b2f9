package assembler

import "sync"

// outcome is the result of preparing one frame: either a frame or an error,
// produced exactly once per index.
type outcome struct {
	frame PreparedFrame
	err   error
}

// pendingStore is a sparse map from frame index to preparation outcome.
// Many preparer goroutines insert; one sequencer removes contiguous runs.
// Entries below the consumed position never reappear.
type pendingStore struct {
	mu     sync.Mutex
	cond   *sync.Cond
	slots  map[uint64]outcome
	posted uint64
	taken  uint64
}

func newPendingStore() *pendingStore {
	s := &pendingStore{slots: make(map[uint64]outcome)}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// post records the outcome for index. Each index is posted exactly once.
func (s *pendingStore) post(index uint64, out outcome) {
	s.mu.Lock()
	s.slots[index] = out
	s.posted++
	s.mu.Unlock()
	s.cond.Broadcast()
}

// takeContiguous atomically removes and returns every entry from `from`
// upward with no gap. A failure entry is included and ends the run.
func (s *pendingStore) takeContiguous(from uint64) []outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	var run []outcome
	next := from
	for {
		out, ok := s.slots[next]
		if !ok {
			break
		}
		delete(s.slots, next)
		run = append(run, out)
		next++
		if out.err != nil {
			break
		}
	}
	if next > s.taken {
		s.taken = next
		s.cond.Broadcast()
	}
	return run
}

// resident returns the number of buffered, not-yet-consumed entries.
func (s *pendingStore) resident() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots)
}

// awaitFrame blocks until the entry for index is present, or until index has
// already been consumed by a contiguous take.
func (s *pendingStore) awaitFrame(index uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		if index < s.taken {
			return
		}
		if _, ok := s.slots[index]; ok {
			return
		}
		s.cond.Wait()
	}
}

// awaitPosted blocks until at least n outcomes have been posted in total.
func (s *pendingStore) awaitPosted(n uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.posted < n {
		s.cond.Wait()
	}
}
