package submit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/five82/linkcheck/internal/linkcheck"
	"github.com/five82/linkcheck/internal/logging"
	"github.com/five82/linkcheck/internal/state"
)

// ErrBusy is returned when a check is already in flight.
var ErrBusy = errors.New("check already in progress")

// Phase is the controller's position in the submit cycle.
type Phase int

const (
	Idle Phase = iota
	Validating
	Submitting
)

func (p Phase) String() string {
	switch p {
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	default:
		return "idle"
	}
}

// Controller turns form input into one check at a time. Results land in the
// store; a failed check leaves the previous results untouched.
type Controller struct {
	client  linkcheck.Checker
	store   *state.Store
	logger  logging.Logger
	timeout time.Duration

	mu    sync.Mutex
	phase Phase
}

// New wires a controller. timeout bounds each check; zero disables it.
func New(client linkcheck.Checker, store *state.Store, logger logging.Logger, timeout time.Duration) *Controller {
	if store == nil {
		store = &state.Store{}
	}
	return &Controller{
		client:  client,
		store:   store,
		logger:  logging.OrNop(logger).With(logging.Component("submit")),
		timeout: timeout,
	}
}

// Phase reports the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Busy reports whether a check is in flight.
func (c *Controller) Busy() bool {
	return c.Phase() == Submitting
}

// Store returns the result store.
func (c *Controller) Store() *state.Store {
	return c.store
}

// Prepare validates values and, on success, claims the controller for one
// check. The caller must follow a successful Prepare with Execute.
func (c *Controller) Prepare(values FormValues) (linkcheck.CheckRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == Submitting {
		return linkcheck.CheckRequest{}, ErrBusy
	}
	c.phase = Validating

	req, err := Validate(values)
	if err != nil {
		c.phase = Idle
		c.logger.Debug("submission rejected", logging.String("url", values.URL), logging.Err(err))
		return linkcheck.CheckRequest{}, err
	}

	c.phase = Submitting
	return req, nil
}

// Execute runs one prepared check. On success the result set is replaced
// wholesale; on failure it is kept and the error recorded. There is no retry.
func (c *Controller) Execute(ctx context.Context, req linkcheck.CheckRequest) ([]linkcheck.LinkResult, error) {
	defer c.setPhase(Idle)

	if c.client == nil {
		err := errors.New("no backend client configured")
		c.store.Update(req, nil, err)
		return nil, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	c.logger.Info("check started", logging.String("url", req.URL), logging.Int("depth", req.Depth))
	start := time.Now()

	results, err := c.client.CheckLinks(ctx, req)
	if err != nil {
		err = fmt.Errorf("check links: %w", err)
		c.store.Update(req, nil, err)
		c.logger.Error("check failed",
			logging.String("url", req.URL),
			logging.Int("depth", req.Depth),
			logging.Duration("elapsed", time.Since(start)),
			logging.Err(err),
		)
		return nil, err
	}

	c.store.Update(req, results, nil)
	c.logger.Info("check finished",
		logging.String("url", req.URL),
		logging.Int("links", len(results)),
		logging.Duration("elapsed", time.Since(start)),
	)
	return results, nil
}

// Submit is Prepare followed by Execute.
func (c *Controller) Submit(ctx context.Context, values FormValues) ([]linkcheck.LinkResult, error) {
	req, err := c.Prepare(values)
	if err != nil {
		return nil, err
	}
	return c.Execute(ctx, req)
}

func (c *Controller) setPhase(p Phase) {
	c.mu.Lock()
	c.phase = p
	c.mu.Unlock()
}
