package viewer

import (
	"context"
	"errors"
	"time"

	"document-viewer/internal/domain"
)

// LoadConfig bounds automatic recovery of the primary renderer.
type LoadConfig struct {
	MaxRetries int
	RetryDelay time.Duration
}

// LoadController owns the load/retry/fallback state machine of a single
// document session. It is not safe for concurrent use: the owning
// session serializes every call, including timer and render callbacks.
type LoadController struct {
	cfg       LoadConfig
	renderer  domain.Renderer
	fallback  domain.FallbackResolver
	scheduler Scheduler
	logger    domain.Logger

	dispatch        Dispatcher
	serialize       func(func())
	onChange        func(prev, next domain.LoadState)
	onRenderRequest func(attempt int)

	ref          domain.DocumentRef
	state        domain.LoadState
	attempt      int
	epoch        uint64
	pending      Timer
	awaiting     bool
	fallbackURL  string
	cancelRender context.CancelFunc
}

// NewLoadController creates a controller. A nil renderer means the host
// renders on its own and reports outcomes through ReportSuccess and
// ReportFailure.
func NewLoadController(
	cfg LoadConfig,
	renderer domain.Renderer,
	fallback domain.FallbackResolver,
	scheduler Scheduler,
	logger domain.Logger,
) *LoadController {
	if scheduler == nil {
		scheduler = SystemScheduler()
	}
	return &LoadController{
		cfg:       cfg,
		renderer:  renderer,
		fallback:  fallback,
		scheduler: scheduler,
		logger:    logger,
		dispatch:  goDispatch,
		state:     domain.Idle(),
	}
}

// State returns the current load state.
func (c *LoadController) State() domain.LoadState {
	return c.state
}

// FallbackURL is the embed URL while the fallback viewer is active.
func (c *LoadController) FallbackURL() string {
	return c.fallbackURL
}

// AwaitingRender reports whether a primary render attempt is outstanding.
func (c *LoadController) AwaitingRender() bool {
	return c.awaiting
}

// Load starts loading ref from scratch with an empty failure history.
func (c *LoadController) Load(ref domain.DocumentRef) {
	c.stop()
	c.epoch++
	c.ref = ref
	c.attempt = 0
	c.fallbackURL = ""
	c.transition(domain.Loading())
	c.startAttempt()
}

// ReportSuccess marks the primary render as displayable. It returns false
// when no load is in progress.
func (c *LoadController) ReportSuccess() bool {
	switch c.state.Phase {
	case domain.LoadLoading, domain.LoadRetrying:
	default:
		return false
	}
	c.stop()
	c.transition(domain.Loaded())
	return true
}

// ReportFailure records a failed primary render. Below MaxRetries it
// schedules a retry after RetryDelay; at MaxRetries it escalates to the
// fallback viewer. Failures with no render outstanding are ignored.
func (c *LoadController) ReportFailure(cause error) bool {
	if !c.awaiting {
		c.logger.Debug("Ignoring render failure with no attempt outstanding",
			"document_id", c.ref.ID, "state", c.state.String())
		return false
	}
	c.awaiting = false

	loadErr := &domain.LoadError{Attempt: c.attempt, Cause: cause}
	if c.attempt < c.cfg.MaxRetries {
		c.attempt++
		c.logger.Warn("Primary render failed, retrying",
			"document_id", c.ref.ID, "attempt", c.attempt, "error", loadErr)
		c.transition(domain.Retrying(c.attempt))
		c.scheduleRetry()
		return true
	}

	c.logger.Warn("Primary render failed, switching to fallback viewer",
		"document_id", c.ref.ID, "attempts", c.attempt, "error", loadErr)
	c.escalate()
	return true
}

// ReportFallbackFailure marks the fallback viewer as unable to initialize.
// Failed is terminal; only RetryPrimary leaves it.
func (c *LoadController) ReportFallbackFailure(cause error) bool {
	if c.state.Phase != domain.LoadFallbackActive {
		return false
	}
	err := &domain.FallbackError{SourceURI: c.ref.SourceURI, Cause: cause}
	c.logger.Error("Fallback viewer failed", err, "document_id", c.ref.ID)
	c.fallbackURL = ""
	c.transition(domain.Failed(err.Error()))
	return true
}

// RetryPrimary is the user-initiated way back from the fallback viewer.
func (c *LoadController) RetryPrimary() bool {
	switch c.state.Phase {
	case domain.LoadFallbackActive, domain.LoadFailed:
		c.Load(c.ref)
		return true
	}
	return false
}

// InputChanged invalidates the failure history while retrying: the
// pending retry is dropped and loading restarts with attempt 0.
func (c *LoadController) InputChanged() bool {
	if c.state.Phase != domain.LoadRetrying {
		return false
	}
	c.logger.Debug("Input changed during retry, restarting load", "document_id", c.ref.ID)
	c.Load(c.ref)
	return true
}

// Cancel stops any pending retry and invalidates in-flight callbacks.
func (c *LoadController) Cancel() {
	c.stop()
	c.epoch++
}

// Reset cancels pending work and returns to Idle.
func (c *LoadController) Reset() {
	c.Cancel()
	c.attempt = 0
	c.fallbackURL = ""
	c.transition(domain.Idle())
}

func (c *LoadController) startAttempt() {
	c.awaiting = true
	if c.renderer == nil {
		if c.onRenderRequest != nil {
			c.onRenderRequest(c.attempt)
		}
		return
	}

	epoch, ref, renderer := c.epoch, c.ref, c.renderer
	ctx, cancel := context.WithCancel(context.Background())
	c.cancelRender = cancel
	c.dispatch(func() {
		err := renderer.Render(ctx, ref)
		c.run(func() { c.renderDone(epoch, err) })
	})
}

func (c *LoadController) renderDone(epoch uint64, err error) {
	if epoch != c.epoch {
		c.logger.Debug("Dropping stale render result", "document_id", c.ref.ID)
		return
	}
	if err == nil {
		c.ReportSuccess()
		return
	}
	if errors.Is(err, context.Canceled) {
		return
	}
	c.ReportFailure(err)
}

func (c *LoadController) scheduleRetry() {
	epoch := c.epoch
	c.pending = c.scheduler.AfterFunc(c.cfg.RetryDelay, func() {
		c.run(func() { c.fireRetry(epoch) })
	})
}

func (c *LoadController) fireRetry(epoch uint64) {
	if epoch != c.epoch || c.state.Phase != domain.LoadRetrying {
		c.logger.Debug("Dropping stale retry", "document_id", c.ref.ID)
		return
	}
	c.pending = nil
	c.startAttempt()
}

func (c *LoadController) escalate() {
	c.stop()
	if c.fallback == nil {
		c.transition(domain.Failed(domain.ErrFallbackUnavailable.Error()))
		return
	}
	url, err := c.fallback.Resolve(c.ref)
	if err != nil {
		c.logger.Error("Fallback viewer cannot open document", err, "document_id", c.ref.ID)
		c.transition(domain.Failed(err.Error()))
		return
	}
	c.fallbackURL = url
	c.transition(domain.FallbackActive())
}

func (c *LoadController) stop() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	if c.cancelRender != nil {
		c.cancelRender()
		c.cancelRender = nil
	}
	c.awaiting = false
}

func (c *LoadController) run(f func()) {
	if c.serialize != nil {
		c.serialize(f)
		return
	}
	f()
}

func (c *LoadController) transition(next domain.LoadState) {
	prev := c.state
	c.state = next
	if prev == next {
		return
	}
	c.logger.Info("Load state changed", "document_id", c.ref.ID, "from", prev.String(), "to", next.String())
	if c.onChange != nil {
		c.onChange(prev, next)
	}
}
