package ffmpegsink

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"filmstrip/internal/faults"
	"filmstrip/internal/logging"
)

// Options configures the encoder process.
type Options struct {
	// Binary is the ffmpeg executable name. Empty means "ffmpeg".
	Binary string
	// FPS is the tick rate frames are fed at. Durations are rounded to
	// whole ticks.
	FPS int
	// VideoCodec is the output codec. Empty means libx264.
	VideoCodec string
	// Overwrite replaces an existing destination instead of failing.
	Overwrite bool
	Logger    *slog.Logger
}

// Sink feeds prepared frames to an ffmpeg process. Not safe for concurrent
// use; the assembler serializes all calls.
type Sink struct {
	logger    *slog.Logger
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stderr    *bytes.Buffer
	dest      string
	fps       int
	frameSize int

	mu          sync.Mutex
	prev        []byte
	prevPTS     float64
	havePrev    bool
	inputClosed bool
	broken      bool

	finalizeOnce sync.Once
}

// New starts an encoder process writing to destination. An existing
// destination is refused unless opts.Overwrite is set, in which case it is
// removed first; failures here are fatal and produce no sink.
func New(destination string, width, height int, opts Options) (*Sink, error) {
	if width <= 0 || height <= 0 {
		return nil, faults.Wrap(faults.ErrSinkInit, "sink", "validate geometry",
			fmt.Sprintf("frame geometry must be positive, got %dx%d", width, height), nil)
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = 30
	}
	binary := strings.TrimSpace(opts.Binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	videoCodec := strings.TrimSpace(opts.VideoCodec)
	if videoCodec == "" {
		videoCodec = "libx264"
	}

	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, faults.Wrap(faults.ErrSinkInit, "sink", "validate destination", "destination path is empty", nil)
	}
	if _, err := os.Stat(destination); err == nil {
		if !opts.Overwrite {
			return nil, faults.Wrap(faults.ErrSinkInit, "sink", "check destination",
				fmt.Sprintf("%s already exists; enable overwrite to replace it", destination), nil)
		}
		if err := os.Remove(destination); err != nil {
			return nil, faults.Wrap(faults.ErrSinkInit, "sink", "remove existing destination", destination, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, faults.Wrap(faults.ErrSinkInit, "sink", "stat destination", destination, err)
	}
	if dir := filepath.Dir(destination); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, faults.Wrap(faults.ErrSinkInit, "sink", "create destination directory", dir, err)
		}
	}

	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", width, height),
		"-framerate", fmt.Sprintf("%d", fps),
		"-i", "-",
		"-c:v", videoCodec,
		"-pix_fmt", "yuv420p",
		"-y",
		destination,
	}

	cmd := exec.Command(binary, args...)
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, faults.Wrap(faults.ErrSinkInit, "sink", "open encoder stdin", binary, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, faults.Wrap(faults.ErrSinkInit, "sink", "start encoder",
			fmt.Sprintf("%s not runnable", binary), err)
	}

	logger := logging.NewComponentLogger(opts.Logger, "ffmpegsink")
	logger.Debug("encoder started",
		logging.String("binary", binary),
		logging.String("destination", destination),
		logging.Int("fps", fps),
	)

	return &Sink{
		logger:    logger,
		cmd:       cmd,
		stdin:     stdin,
		stderr:    stderr,
		dest:      destination,
		fps:       fps,
		frameSize: width * height * 4,
	}, nil
}

// Ready reports whether the encoder can accept another frame.
func (s *Sink) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.broken && !s.inputClosed
}

// Append accepts one frame at the given presentation timestamp. The
// previous frame is flushed to the encoder repeated for every tick between
// its timestamp and this one. Returns false when the frame is rejected.
func (s *Sink) Append(buf []byte, pts float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.broken || s.inputClosed {
		return false
	}
	if len(buf) != s.frameSize {
		s.logger.Error("frame size mismatch",
			logging.Int("got", len(buf)),
			logging.Int("want", s.frameSize),
		)
		return false
	}

	if s.havePrev {
		if err := s.flushPrev(pts); err != nil {
			s.broken = true
			s.logger.Error("encoder write failed", logging.Error(err))
			return false
		}
	}
	s.prev = buf
	s.prevPTS = pts
	s.havePrev = true
	return true
}

// CloseInput flushes the final frame and closes the encoder's stdin.
func (s *Sink) CloseInput() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inputClosed {
		return
	}
	if s.havePrev && !s.broken {
		// The stream carries no next timestamp for the last frame, so it
		// gets a single tick.
		if _, err := s.stdin.Write(s.prev); err != nil {
			s.broken = true
			s.logger.Error("encoder write failed", logging.Error(err))
		}
		s.havePrev = false
	}
	s.inputClosed = true
	if err := s.stdin.Close(); err != nil {
		s.logger.Warn("close encoder stdin", logging.Error(err))
	}
}

// Finalize waits for the encoder process to exit and reports the outcome to
// onDone exactly once.
func (s *Sink) Finalize(onDone func(error)) {
	s.finalizeOnce.Do(func() {
		go func() {
			err := s.cmd.Wait()
			if err != nil {
				detail := strings.TrimSpace(s.stderr.String())
				if detail != "" {
					err = fmt.Errorf("%w: %s", err, detail)
				}
				s.logger.Error("encoder exited with failure", logging.Error(err))
			} else {
				s.logger.Debug("encoder finished", logging.String("destination", s.dest))
			}
			onDone(err)
		}()
	})
}

// Destination returns the output path the sink writes to.
func (s *Sink) Destination() string {
	return s.dest
}

// flushPrev writes the buffered frame once per tick from its presentation
// time up to nextPTS. Caller holds s.mu.
func (s *Sink) flushPrev(nextPTS float64) error {
	ticks := tickCount(s.prevPTS, nextPTS, s.fps)
	for i := 0; i < ticks; i++ {
		if _, err := s.stdin.Write(s.prev); err != nil {
			return err
		}
	}
	s.havePrev = false
	return nil
}

// tickCount converts the span between two presentation timestamps into
// whole encoder ticks, always at least one.
func tickCount(from, to float64, fps int) int {
	ticks := int(math.Round((to - from) * float64(fps)))
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}
