package assembler

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"filmstrip/internal/faults"
	"filmstrip/internal/logging"
)

// Options tunes pipeline concurrency and buffering.
type Options struct {
	// Workers bounds concurrent frame preparation. Zero means one worker
	// per CPU.
	Workers int
	// PendingHighWater and PendingLowWater bound frames buffered ahead of
	// the committed position. AddFrame blocks once the high water mark is
	// reached and drains committable frames down to the low water mark.
	// Zero selects the defaults (20/10).
	PendingHighWater int
	PendingLowWater  int
	// SinkReadyRetries and SinkReadyBackoff bound the readiness wait
	// before each commit. Zero selects the defaults (5 retries, 100ms).
	SinkReadyRetries int
	SinkReadyBackoff time.Duration
	Logger           *slog.Logger
}

const (
	defaultHighWater   = 20
	defaultLowWater    = 10
	defaultGateRetries = 5
	defaultGateBackoff = 100 * time.Millisecond
)

// Pipeline is the public surface of the frame assembler. Methods are meant
// to be called from a single producer goroutine; frame preparation itself
// runs on an internal worker pool.
type Pipeline struct {
	sink      Sink
	codec     Codec
	logger    *slog.Logger
	highWater uint64
	lowWater  uint64

	store *pendingStore
	seq   *sequencer
	sem   chan struct{}
	wg    sync.WaitGroup

	mu       sync.Mutex
	next     uint64
	finished bool
}

// New builds a pipeline around the given sink and codec. The sink must
// already be initialized; sink construction failures are fatal and no
// pipeline exists for them.
func New(sink Sink, codec Codec, opts Options) (*Pipeline, error) {
	if sink == nil {
		return nil, errors.New("assembler: sink is required")
	}
	if codec == nil {
		return nil, errors.New("assembler: codec is required")
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	high := opts.PendingHighWater
	if high == 0 {
		high = defaultHighWater
	}
	low := opts.PendingLowWater
	if low == 0 {
		low = defaultLowWater
	}
	if low <= 0 || high <= low {
		return nil, fmt.Errorf("assembler: watermarks must satisfy 0 < low < high, got %d/%d", low, high)
	}
	retries := opts.SinkReadyRetries
	if retries == 0 {
		retries = defaultGateRetries
	}
	if retries < 0 {
		return nil, fmt.Errorf("assembler: sink ready retries must be positive, got %d", retries)
	}
	backoff := opts.SinkReadyBackoff
	if backoff == 0 {
		backoff = defaultGateBackoff
	}

	logger := logging.NewComponentLogger(opts.Logger, "assembler")
	store := newPendingStore()
	return &Pipeline{
		sink:      sink,
		codec:     codec,
		logger:    logger,
		highWater: uint64(high),
		lowWater:  uint64(low),
		store:     store,
		seq: &sequencer{
			store:  store,
			sink:   sink,
			gate:   writerGate{retries: retries, backoff: backoff},
			logger: logger,
		},
		sem: make(chan struct{}, workers),
	}, nil
}

// AddFrame assigns the next frame index to img and dispatches its
// preparation. The call blocks while the worker pool is saturated, and when
// the number of frames buffered ahead of the committed position reaches the
// high water mark it synchronously drains committable frames down to the low
// water mark. Per-frame faults (bad duration, conversion failure) surface
// later, from Drain or Finish, once the sequencer reaches the frame.
func (p *Pipeline) AddFrame(img image.Image, duration float64) error {
	p.mu.Lock()
	if p.finished {
		p.mu.Unlock()
		return errors.New("assembler: pipeline already finished")
	}
	index := p.next
	p.next++
	p.mu.Unlock()

	p.sem <- struct{}{}
	p.wg.Add(1)
	go p.prepare(index, img, duration)

	if p.outstanding() < p.highWater {
		return nil
	}
	for p.outstanding() > p.lowWater {
		if p.seq.err() != nil {
			// Poisoned: nothing more will ever drain. Let the caller
			// reach Drain or Finish and learn the error there.
			break
		}
		p.store.awaitFrame(p.seq.committed())
		if err := p.seq.drain(); err != nil {
			break
		}
	}
	return nil
}

// Drain waits for every frame dispatched so far to finish preparing, then
// commits all contiguous completed frames. Calling it again with nothing new
// pending performs no sink interaction and reports the same result.
func (p *Pipeline) Drain() error {
	p.mu.Lock()
	target := p.next
	p.mu.Unlock()

	p.store.awaitPosted(target)
	return p.seq.drain()
}

// Finish waits for all dispatched preparation to complete, performs a final
// drain, closes the sink input, and waits for the sink's asynchronous
// finalize step. If any frame failed, the latched error is returned and the
// sink is left untouched past the last committed frame. No frames may be
// submitted after Finish returns.
func (p *Pipeline) Finish() error {
	p.mu.Lock()
	if p.finished {
		p.mu.Unlock()
		return p.seq.err()
	}
	p.finished = true
	p.mu.Unlock()

	p.wg.Wait()
	if err := p.seq.drain(); err != nil {
		return err
	}

	p.sink.CloseInput()
	done := make(chan error, 1)
	p.sink.Finalize(func(err error) { done <- err })
	if err := <-done; err != nil {
		return faults.Wrap(faults.ErrTransient, "finish", "finalize sink", "encoder did not finalize cleanly", err)
	}

	p.logger.Info("stream finished",
		logging.Uint64("frames", p.seq.committed()),
		logging.Float64("duration", p.seq.position()),
	)
	return nil
}

// Committed returns the number of frames committed to the sink so far.
func (p *Pipeline) Committed() uint64 {
	return p.seq.committed()
}

// Position returns the cumulative timestamp of committed frames in seconds.
func (p *Pipeline) Position() float64 {
	return p.seq.position()
}

// Submitted returns the number of frames accepted by AddFrame so far.
func (p *Pipeline) Submitted() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.next
}

// prepare runs on the worker pool: it validates the duration, converts the
// image, and posts exactly one outcome for index.
func (p *Pipeline) prepare(index uint64, img image.Image, duration float64) {
	defer p.wg.Done()
	defer func() { <-p.sem }()

	if duration <= 0 {
		p.store.post(index, outcome{err: faults.Wrap(
			faults.ErrFrame,
			"prepare",
			"validate duration",
			fmt.Sprintf("frame %d duration %g must be positive", index, duration),
			nil,
		)})
		return
	}

	buf, err := p.codec.Convert(img)
	if err != nil {
		p.store.post(index, outcome{err: faults.Wrap(
			faults.ErrFrame,
			"prepare",
			"convert image",
			fmt.Sprintf("frame %d", index),
			err,
		)})
		return
	}
	p.store.post(index, outcome{frame: PreparedFrame{Buffer: buf, Duration: duration}})
}

// outstanding counts frames submitted but not yet committed, whether still
// preparing or buffered in the pending store.
func (p *Pipeline) outstanding() uint64 {
	p.mu.Lock()
	next := p.next
	p.mu.Unlock()
	return next - p.seq.committed()
}
