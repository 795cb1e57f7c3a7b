package health

import (
	"context"
	"sync"
	"time"

	"ai-engine/internal/shared/telemetry"
)

// Result is the outcome of the most recent dependency check.
type Result struct {
	Status    string
	Err       string
	CheckedAt time.Time
}

// Prober periodically runs a Checker and caches the last Result.
type Prober struct {
	checker  Checker
	interval time.Duration
	now      func() time.Time

	mu   sync.RWMutex
	last Result

	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewProber builds a prober that has not checked anything yet.
func NewProber(checker Checker, interval time.Duration, now func() time.Time) *Prober {
	if now == nil {
		now = time.Now
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Prober{
		checker:  checker,
		interval: interval,
		now:      now,
		last:     Result{Status: StatusUnknown},
	}
}

// Last returns the cached result.
func (p *Prober) Last() Result {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last
}

func newResult(err error, checkedAt time.Time) Result {
	res := Result{Status: StatusUp, CheckedAt: checkedAt}
	if err != nil {
		res.Status = StatusDown
		res.Err = err.Error()
	}
	return res
}

// record stores res unless a check that started later has already been stored.
func (p *Prober) record(res Result) {
	p.mu.Lock()
	if res.CheckedAt.Before(p.last.CheckedAt) {
		p.mu.Unlock()
		return
	}
	prev := p.last.Status
	p.last = res
	p.mu.Unlock()

	if prev != res.Status {
		telemetry.Info("health.database.transition", map[string]any{
			"from":  prev,
			"to":    res.Status,
			"error": res.Err,
		})
	}
}

// CheckNow runs the checker once and records the outcome. A check cut short
// by ctx is reported to the caller but leaves the cache untouched.
func (p *Prober) CheckNow(ctx context.Context) Result {
	started := p.now()
	res := newResult(p.checker.Check(ctx), started)
	if ctx.Err() != nil {
		return res
	}
	p.record(res)
	return res
}

// Start launches the background loop. The first check runs immediately.
func (p *Prober) Start(ctx context.Context) {
	p.runMu.Lock()
	defer p.runMu.Unlock()
	if p.cancel != nil {
		return
	}
	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.loop(loopCtx, p.done)
}

// Stop ends the background loop and waits for it to exit.
func (p *Prober) Stop() {
	p.runMu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.runMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (p *Prober) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		started := p.now()
		err := p.checker.Check(ctx)
		if ctx.Err() != nil {
			// Stopped mid-check; keep the last real result.
			return
		}
		p.record(newResult(err, started))
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
