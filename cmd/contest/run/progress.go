package run

import (
	"fmt"
	"io"
	"sync"
	"time"
)

const progressIntervalMs = 500

type progressReporter struct {
	enabled  bool
	interval time.Duration
	w        io.Writer

	mu       sync.Mutex
	done     int
	total    int
	failures int

	stopOnce sync.Once
	stopC    chan struct{}
}

func newProgressReporter(enabled bool, w io.Writer, total int) *progressReporter {
	return &progressReporter{
		enabled:  enabled,
		interval: progressIntervalMs * time.Millisecond,
		w:        w,
		total:    total,
		stopC:    make(chan struct{}),
	}
}

// update is wired into the runner's OnCaseDone hook.
func (p *progressReporter) update(done, total, failures int) {
	if p == nil || !p.enabled {
		return
	}
	p.mu.Lock()
	p.done = done
	p.total = total
	p.failures = failures
	p.mu.Unlock()
}

func (p *progressReporter) start() {
	if p == nil || !p.enabled {
		return
	}
	p.emit()
	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.emit()
			case <-p.stopC:
				return
			}
		}
	}()
}

// stop halts the ticker and emits a final snapshot. Safe to call twice.
func (p *progressReporter) stop() {
	if p == nil || !p.enabled {
		return
	}
	p.stopOnce.Do(func() {
		close(p.stopC)
		p.emit()
	})
}

func (p *progressReporter) emit() {
	if p == nil || !p.enabled || p.w == nil {
		return
	}
	p.mu.Lock()
	done := p.done
	total := p.total
	failures := p.failures
	p.mu.Unlock()
	_, _ = fmt.Fprintf(p.w, "progress cases=%d/%d failures=%d\n", done, total, failures)
}
