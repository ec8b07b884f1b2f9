package assembler

import "image"

// PreparedFrame is an encoder-ready buffer plus its display duration in
// seconds. Duration is always positive for frames that reach the sink.
type PreparedFrame struct {
	Buffer   []byte
	Duration float64
}

// Sink receives prepared frames at strictly increasing timestamps. It is not
// safe for concurrent use; the pipeline serializes all calls into it.
type Sink interface {
	// Ready reports whether the sink can accept a frame right now.
	Ready() bool
	// Append hands the sink one frame at the given presentation timestamp
	// (seconds). A false return means the frame was rejected.
	Append(buf []byte, pts float64) bool
	// CloseInput marks the input stream as finished. No Append calls may
	// follow.
	CloseInput()
	// Finalize completes the output asynchronously and invokes onDone
	// exactly once.
	Finalize(onDone func(error))
}

// Codec converts one source image into an encoder-ready buffer. It must be
// safe for concurrent use and pure with respect to pipeline state.
type Codec interface {
	Convert(img image.Image) ([]byte, error)
}
