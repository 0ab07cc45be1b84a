package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ericfisherdev/codereviewer/internal/domain/model"
	"github.com/ericfisherdev/codereviewer/internal/domain/port/driven"
)

// DefaultStatusPollInterval is the fixed delay between status check cycles.
const DefaultStatusPollInterval = 10 * time.Second

// CycleResult summarises one status check cycle.
type CycleResult struct {
	Checked int  // badges whose status was requested
	Updated int  // badges rewritten with a new status
	Failed  int  // requests that errored; those badges stay pending
	Pending bool // at least one badge still needs polling
	Skipped bool // the cycle did not run because another was in flight
}

// StatusPollerOption configures a StatusPoller.
type StatusPollerOption func(*StatusPoller)

// WithPollInterval overrides DefaultStatusPollInterval.
func WithPollInterval(d time.Duration) StatusPollerOption {
	return func(p *StatusPoller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithPollLogger sets the logger used for internal diagnostics.
func WithPollLogger(logger *slog.Logger) StatusPollerOption {
	return func(p *StatusPoller) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithCycleHook registers fn to be called after every cycle run by Start.
// fn runs on the polling goroutine and may call Stop.
func WithCycleHook(fn func(CycleResult)) StatusPollerOption {
	return func(p *StatusPoller) {
		p.onCycle = fn
	}
}

// StatusPoller keeps the status badges of a document fresh. It checks every
// in-flight badge once on Start and then on a fixed interval, and stops by
// itself once no badge is in flight. Fetch failures are never surfaced: the
// badge keeps its text and is retried on the next cycle.
type StatusPoller struct {
	doc      driven.BadgeDocument
	fetcher  driven.StatusFetcher
	interval time.Duration
	logger   *slog.Logger
	onCycle  func(CycleResult)

	inFlight atomic.Bool
	started  atomic.Bool
	inHook   atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewStatusPoller creates a StatusPoller. It does not touch the document or
// the network until Start or Check is called.
func NewStatusPoller(doc driven.BadgeDocument, fetcher driven.StatusFetcher, opts ...StatusPollerOption) *StatusPoller {
	p := &StatusPoller{
		doc:      doc,
		fetcher:  fetcher,
		interval: DefaultStatusPollInterval,
		logger:   slog.Default(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start scans the document and, if it holds any badge, runs an immediate
// cycle followed by one per interval in a background goroutine. It returns
// false without starting a timer or issuing a request when the document has
// no badges. Calling Start more than once has no further effect.
func (p *StatusPoller) Start(ctx context.Context) bool {
	if !p.started.CompareAndSwap(false, true) {
		return p.Active()
	}

	if len(p.doc.Badges()) == 0 {
		p.logger.Debug("no review status badges found, status polling not started")
		close(p.done)
		return false
	}

	ctx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	p.cancel = cancel
	p.mu.Unlock()

	go p.run(ctx)
	return true
}

// Stop cancels polling and waits for the background goroutine to exit.
// It is safe to call on a poller that never started or already finished.
// While a cycle hook is running Stop only cancels, since the goroutine it
// would wait for is the one running the hook.
func (p *StatusPoller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	if p.inHook.Load() {
		return
	}
	<-p.done
}

// Done is closed once polling has terminated, whether because no badge is in
// flight, Stop was called, or the parent context was canceled.
func (p *StatusPoller) Done() <-chan struct{} {
	return p.done
}

// Active reports whether the poller has started and not yet terminated.
func (p *StatusPoller) Active() bool {
	if !p.started.Load() {
		return false
	}
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

func (p *StatusPoller) run(ctx context.Context) {
	defer close(p.done)

	if !p.cycle(ctx) {
		p.logger.Debug("no reviews in flight, status polling stopped")
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("status polling canceled")
			return
		case <-ticker.C:
			if !p.cycle(ctx) {
				p.logger.Debug("no reviews in flight, status polling stopped")
				return
			}
		}
	}
}

// cycle runs one check and reports whether polling should continue.
func (p *StatusPoller) cycle(ctx context.Context) bool {
	result := p.Check(ctx)
	if p.onCycle != nil {
		p.inHook.Store(true)
		p.onCycle(result)
		p.inHook.Store(false)
	}
	if ctx.Err() != nil {
		return false
	}
	return result.Pending
}

// Check runs a single cycle over the badges currently in the document.
// Badges are checked one at a time. If another cycle is still in flight the
// call returns immediately with Skipped and Pending set.
func (p *StatusPoller) Check(ctx context.Context) CycleResult {
	if !p.inFlight.CompareAndSwap(false, true) {
		p.logger.Debug("status check skipped, previous cycle still running")
		return CycleResult{Skipped: true, Pending: true}
	}
	defer p.inFlight.Store(false)

	start := time.Now()
	var result CycleResult

	for _, badge := range p.doc.Badges() {
		current := strings.ToLower(strings.TrimSpace(badge.Text()))
		if !model.NeedsPolling(current) {
			continue
		}

		if ctx.Err() != nil {
			result.Pending = true
			break
		}

		result.Checked++
		reviewID := badge.ReviewID()

		snapshot, err := p.fetcher.FetchStatus(ctx, reviewID)
		if err == nil && snapshot.Status == "" {
			err = errEmptyStatus
		}
		if err != nil {
			result.Failed++
			result.Pending = true
			p.logger.Debug("status check failed", "review_id", reviewID, "error", err)
			continue
		}

		if snapshot.Status != current {
			applyStatus(badge, snapshot.Status)
			result.Updated++
		}

		// Judge the formatted status, which is what the badge now displays.
		if model.NeedsPolling(model.FormatStatus(snapshot.Status)) {
			result.Pending = true
		}
	}

	p.logger.Debug("status check cycle complete",
		"checked", result.Checked,
		"updated", result.Updated,
		"failed", result.Failed,
		"pending", result.Pending,
		"duration", time.Since(start).Round(time.Millisecond),
	)

	return result
}

// applyStatus rewrites text, label and class together from one status value.
func applyStatus(badge driven.StatusBadge, status string) {
	text := model.FormatStatus(status)
	badge.SetText(text)
	badge.SetAttribute("aria-label", model.StatusAriaLabel(status))
	badge.SetClass(model.StatusTagClass(status))
}

var errEmptyStatus = errors.New("status response has no status")
