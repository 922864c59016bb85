package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/svccat/internal/catalog"
	"github.com/rshade/svccat/internal/debounce"
	"github.com/rshade/svccat/internal/fetch"
	"github.com/rshade/svccat/internal/logging"
	"github.com/rshade/svccat/internal/pagination"
)

// Controller lifecycle errors.
var (
	ErrAlreadyStarted = errors.New("controller already started")
	ErrClosed         = errors.New("controller closed")
)

// Option configures a Controller.
type Option func(*Controller)

// WithDebounceDelay sets the quiet period for search changes.
func WithDebounceDelay(d time.Duration) Option {
	return func(c *Controller) { c.delay = d }
}

// WithScheduler sets the scheduler used for the search debounce.
func WithScheduler(s debounce.Scheduler) Option {
	return func(c *Controller) { c.scheduler = s }
}

// WithLogger sets the controller logger. By default the logger stored in the
// context passed to Start is used.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
		c.hasLogger = true
	}
}

// Controller fetches, sorts and paginates catalog records in response to input changes.
//
// Subscribers are called in publication order and must not block or call Refresh,
// Retry, Start or Close synchronously; State is safe to call from a subscriber.
type Controller struct {
	fetcher   fetch.Fetcher
	inputs    Inputs
	delay     time.Duration
	scheduler debounce.Scheduler
	debouncer *debounce.Debouncer
	logger    zerolog.Logger
	hasLogger bool

	mu       sync.Mutex
	state    State
	issued   uint64
	applied  uint64
	inflight int
	subs     []subscriber
	nextSub  int
	started  bool
	closed   bool
	ctx      context.Context
	cancel   context.CancelFunc
	unsubs   []func()

	// searchQueued is set by a search change and cleared when its debounced cycle starts.
	searchQueued bool

	// running counts background cycles; idle is closed when it drops to zero.
	running int
	idle    chan struct{}

	// pubMu keeps publications in the same order as the state changes they carry.
	pubMu sync.Mutex
}

type subscriber struct {
	id int
	fn func(State)
}

// New creates a controller over fetcher and inputs. It does nothing until Start.
func New(fetcher fetch.Fetcher, inputs Inputs, opts ...Option) *Controller {
	c := &Controller{
		fetcher: fetcher,
		inputs:  inputs,
		delay:   debounce.DefaultDelay,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.debouncer = debounce.New(c.delay, c.scheduler)
	c.state.Services = pagination.Paginate[catalog.ServiceRecord](nil, inputs.Params())
	return c
}

// Inputs returns the cells the controller observes.
func (c *Controller) Inputs() Inputs {
	return c.inputs
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn to receive every published State. The returned function
// removes the subscription.
func (c *Controller) Subscribe(fn func(State)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextSub++
	id := c.nextSub
	c.subs = append(c.subs, subscriber{id: id, fn: fn})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

// Start subscribes to the input cells and begins the initial refresh in the
// background. Cycles started by the controller use a context derived from ctx.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.started {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.started = true
	c.ctx, c.cancel = context.WithCancel(ctx)
	if !c.hasLogger {
		c.logger = logging.ComponentLogger(*logging.FromContext(ctx), "controller")
	}
	c.mu.Unlock()

	c.unsubs = append(c.unsubs,
		c.inputs.Search.Subscribe(func(next, _ string) { c.onSearchChange(next) }),
		c.inputs.Page.Subscribe(func(next, _ int) { c.onPageChange(next) }),
	)

	c.logger.Debug().
		Str("search", c.inputs.Search.Get()).
		Int("page", c.inputs.Page.Get()).
		Int("page_size", c.inputs.PageSize.Get()).
		Dur("debounce", c.delay).
		Msg("controller started")

	c.spawn()
	return nil
}

// Close stops reacting to input changes, cancels a pending search and waits for
// in-flight cycles to finish. Their contexts are cancelled.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.searchQueued = false
	cancel := c.cancel
	c.mu.Unlock()

	for _, unsubscribe := range c.unsubs {
		unsubscribe()
	}
	c.debouncer.Cancel()
	if cancel != nil {
		cancel()
	}
	c.Wait()
	return nil
}

// Wait blocks until no cycle started by the controller is running. Cycles started
// while waiting are waited for too. It is safe to call concurrently with input
// changes.
func (c *Controller) Wait() {
	for {
		c.mu.Lock()
		if c.running == 0 {
			c.mu.Unlock()
			return
		}
		idle := c.idle
		c.mu.Unlock()
		<-idle
	}
}

// Retry re-runs a refresh with the current inputs.
func (c *Controller) Retry(ctx context.Context) error {
	return c.Refresh(ctx)
}

// onSearchChange marks the state loading and restarts the debounce timer.
func (c *Controller) onSearchChange(search string) {
	c.mu.Lock()
	c.searchQueued = true
	c.state.Loading = true
	c.state.SearchPending = true
	c.publishAndUnlock()

	c.logger.Debug().Str("search", search).Msg("search changed, refresh debounced")

	c.debouncer.Trigger(func() {
		if !c.track() {
			return
		}
		defer c.untrack()
		_ = c.refresh(c.ctx, true)
	})
}

// onPageChange refreshes without delay.
func (c *Controller) onPageChange(page int) {
	c.logger.Debug().Int("page", page).Msg("page changed")
	c.spawn()
}

// spawn runs a refresh in the background.
func (c *Controller) spawn() {
	if !c.track() {
		return
	}
	go func() {
		defer c.untrack()
		_ = c.refresh(c.ctx, false)
	}()
}

// track registers a background cycle unless the controller is closed.
func (c *Controller) track() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	if c.running == 0 {
		c.idle = make(chan struct{})
	}
	c.running++
	return true
}

// untrack marks a background cycle finished.
func (c *Controller) untrack() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running--
	if c.running == 0 {
		close(c.idle)
	}
}

// Refresh runs one fetch cycle with the current inputs and returns its error.
//
// A cycle whose result arrives after a newer cycle has already been applied is
// dropped and returns nil.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.refresh(ctx, false)
}

// refresh runs one cycle. fromSearch marks the cycle started by the debounce timer,
// which consumes the queued search.
func (c *Controller) refresh(ctx context.Context, fromSearch bool) error {
	// Inputs are read under the same lock that assigns the sequence number, so a
	// later sequence never carries older inputs.
	c.mu.Lock()
	query := c.inputs.Query()
	params := c.inputs.Params()
	if fromSearch {
		c.searchQueued = false
	}
	c.issued++
	seq := c.issued
	c.inflight++
	c.state.Loading = true
	c.state.SearchPending = c.searchQueued
	logger := c.logger.With().Uint64("seq", seq).Logger()
	c.publishAndUnlock()

	logger.Debug().
		Str("search", query.Search).
		Int("page", params.Page).
		Int("page_size", params.PageSize).
		Msg("refresh started")

	if err := params.Validate(); err != nil {
		return c.finish(logger, seq, query, params, nil, fmt.Errorf("refreshing services: %w", err))
	}

	start := time.Now()
	records, err := c.fetcher.Fetch(ctx, query)
	if err != nil {
		err = fmt.Errorf("refreshing services: %w", err)
	}
	logger = logger.With().Dur("elapsed", time.Since(start)).Logger()
	return c.finish(logger, seq, query, params, records, err)
}

func (c *Controller) finish(
	logger zerolog.Logger,
	seq uint64,
	query fetch.Query,
	params pagination.Params,
	records []catalog.ServiceRecord,
	err error,
) error {
	var set PaginationSet
	if err == nil {
		set = pagination.Paginate(catalog.SortByName(records), params)
	}

	c.mu.Lock()
	c.inflight--

	if seq < c.applied {
		applied := c.applied
		c.state.Loading = c.loadingLocked()
		c.state.SearchPending = c.searchQueued
		c.publishAndUnlock()
		logger.Debug().Uint64("applied", applied).Msg("stale refresh result dropped")
		return nil
	}
	c.applied = seq

	if err != nil {
		c.state.Error = newErrorSignal(err)
	} else {
		c.state.Services = set
		c.state.Error = ErrorSignal{}
		c.state.Query = query
	}
	c.state.Sequence = seq
	c.state.Loading = c.loadingLocked()
	c.state.SearchPending = c.searchQueued
	c.publishAndUnlock()

	if err != nil {
		logger.Warn().Err(err).Msg("refresh failed")
		return err
	}
	logger.Debug().
		Int("total_items", set.TotalItems).
		Int("first_item_index", set.FirstItemIndex).
		Int("last_item_index", set.LastItemIndex).
		Bool("is_next", set.IsNext).
		Bool("is_previous", set.IsPrevious).
		Msg("refresh applied")
	return nil
}

// loadingLocked must be called with c.mu held.
func (c *Controller) loadingLocked() bool {
	return c.inflight > 0 || c.searchQueued
}

// publishAndUnlock must be called with c.mu held; it releases c.mu and delivers
// the current state to subscribers in order.
func (c *Controller) publishAndUnlock() {
	c.state.Version++
	snapshot := c.state
	subs := make([]subscriber, len(c.subs))
	copy(subs, c.subs)

	c.pubMu.Lock()
	c.mu.Unlock()
	defer c.pubMu.Unlock()

	for _, s := range subs {
		s.fn(snapshot)
	}
}
