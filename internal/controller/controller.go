// Package controller binds a random article resolution to a screen
// lifecycle: loading affordance, detail handoff, error surface with retry.
package controller

import (
	"context"
	"fmt"
	"sync"

	"github.com/wikiroam/randomarticle/internal/logger"
	"github.com/wikiroam/randomarticle/internal/models"
	"github.com/wikiroam/randomarticle/internal/resolver"
)

// State is the controller lifecycle state.
type State int

const (
	// StateIdle is the initial state before the screen becomes visible
	StateIdle State = iota

	// StateLoading means one resolution is in flight
	StateLoading

	// StateDisplaying means the key was handed to the navigation shell;
	// terminal for this instance
	StateDisplaying

	// StateFailed means resolution failed; Retry re-enters Loading
	StateFailed

	// StateDismissed means the screen went away; any in-flight completion
	// is discarded and no further transition occurs
	StateDismissed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateDisplaying:
		return "displaying"
	case StateFailed:
		return "failed"
	case StateDismissed:
		return "dismissed"
	default:
		return "unknown"
	}
}

// NavigationShell presents the detail screen for a resolved article and
// tears the current screen down.
type NavigationShell interface {
	Present(key models.ArticleKey)
	Dismiss()
}

// ArticleResolver is the resolution entry point consumed by the controller.
type ArticleResolver interface {
	Resolve(ctx context.Context, site models.SiteContext) resolver.Result
}

// Controller drives Idle → Loading → (Displaying | Failed) for one screen
// instance. At most one resolution is in flight; a completion arriving
// after dismissal or supersession is dropped.
type Controller struct {
	site     models.SiteContext
	resolver ArticleResolver
	shell    NavigationShell
	logger   logger.Logger

	mu         sync.Mutex
	state      State
	lastResult resolver.Result
	cancel     context.CancelFunc
	generation int
	done       chan struct{}
}

// NewController creates a controller in Idle. Every collaborator is
// required; a zero site or nil dependency fails with
// resolver.ErrInvalidConfiguration.
func NewController(site models.SiteContext, res ArticleResolver, shell NavigationShell, log logger.Logger) (*Controller, error) {
	switch {
	case site.IsZero():
		return nil, fmt.Errorf("%w: zero site context", resolver.ErrInvalidConfiguration)
	case res == nil:
		return nil, fmt.Errorf("%w: resolver is nil", resolver.ErrInvalidConfiguration)
	case shell == nil:
		return nil, fmt.Errorf("%w: navigation shell is nil", resolver.ErrInvalidConfiguration)
	case log == nil:
		return nil, fmt.Errorf("%w: logger is nil", resolver.ErrInvalidConfiguration)
	}

	return &Controller{
		site:     site,
		resolver: res,
		shell:    shell,
		logger:   log,
		state:    StateIdle,
	}, nil
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastResult returns the most recent completion, meaningful in Failed.
func (c *Controller) LastResult() resolver.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastResult
}

// Message returns the user-facing text for the current failure, empty
// outside Failed.
func (c *Controller) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateFailed {
		return ""
	}
	return c.lastResult.Kind.Message()
}

// Activate is called when the screen becomes visible. It transitions
// Idle → Loading and starts the single in-flight resolution. Activating
// while already Loading is a no-op; any other state is rejected.
func (c *Controller) Activate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateIdle:
		c.startLoadingLocked(ctx)
	case StateLoading:
		// At most one in-flight resolution per controller instance.
		c.logger.Debug("Activation ignored, resolution already in flight",
			logger.String("site", c.site.Host()),
		)
	default:
		c.logger.Debug("Activation ignored",
			logger.String("state", c.state.String()),
		)
	}
}

// Retry re-enters Loading after a failure.
func (c *Controller) Retry(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateFailed {
		return
	}
	c.startLoadingLocked(ctx)
}

// Dismiss cancels any in-flight resolution and tells the shell to tear the
// screen down. The eventual completion, if any, is discarded.
func (c *Controller) Dismiss() {
	c.mu.Lock()
	if c.state == StateDismissed {
		c.mu.Unlock()
		return
	}
	c.state = StateDismissed
	c.generation++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()

	c.shell.Dismiss()
	c.logger.Debug("Screen dismissed", logger.String("site", c.site.Host()))
}

// Done returns a channel closed when the current activation's resolution
// has completed or been discarded. Nil before the first activation.
func (c *Controller) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

func (c *Controller) startLoadingLocked(ctx context.Context) {
	c.state = StateLoading
	c.generation++
	generation := c.generation

	resolveCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	done := make(chan struct{})
	c.done = done

	c.logger.Debug("Loading random article", logger.String("site", c.site.Host()))

	go func() {
		defer close(done)
		result := c.resolver.Resolve(resolveCtx, c.site)
		cancel()
		c.deliver(generation, result)
	}()
}

// deliver applies a completion unless the activation it belongs to has been
// superseded or dismissed. Exactly one completion is applied per activation.
func (c *Controller) deliver(generation int, result resolver.Result) {
	c.mu.Lock()

	if c.generation != generation || c.state != StateLoading {
		c.mu.Unlock()
		c.logger.Debug("Discarding stale resolution result",
			logger.String("site", c.site.Host()),
		)
		return
	}

	c.lastResult = result
	if result.Ready() {
		c.state = StateDisplaying
		c.cancel = nil
		c.mu.Unlock()

		// Present outside the lock; the shell may call back into Dismiss.
		c.shell.Present(result.Key)
		c.logger.Info("Presenting article detail",
			logger.String("site", result.Key.Site.Host()),
			logger.String("title", result.Key.Title),
		)
		return
	}

	c.state = StateFailed
	c.cancel = nil
	c.mu.Unlock()

	c.logger.Warn("Resolution failed, offering retry",
		logger.String("site", c.site.Host()),
		logger.String("kind", result.Kind.String()),
		logger.Error(result.Err),
	)
}
