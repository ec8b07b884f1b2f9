package assembler

import (
	"fmt"
	"time"

	"filmstrip/internal/faults"
)

// writerGate bounds how long a single commit may wait for the sink to report
// ready, converting an indefinitely stalled encoder into a reportable
// timeout.
type writerGate struct {
	retries int
	backoff time.Duration
}

// awaitReady polls sink readiness up to retries times with a fixed backoff
// between polls. Exhausting the retries yields a write timeout error.
func (g writerGate) awaitReady(sink Sink) error {
	for attempt := 1; ; attempt++ {
		if sink.Ready() {
			return nil
		}
		if attempt >= g.retries {
			return faults.Wrap(
				faults.ErrWriteTimeout,
				"commit",
				"await sink readiness",
				fmt.Sprintf("sink not ready after %d attempts", g.retries),
				nil,
			)
		}
		time.Sleep(g.backoff)
	}
}
