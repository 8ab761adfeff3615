package vocab

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/dashd/internal/model"
	"github.com/sandeepkv93/dashd/internal/persist"
)

var (
	ErrInFlight         = errors.New("vocab: fetch already in flight")
	ErrRetriesExhausted = errors.New("vocab: only duplicate words returned")
)

const (
	DefaultMaxRetries = 5
	DefaultTimeout    = 20 * time.Second
)

type State int

const (
	StateIdle State = iota
	StateFetching
	StateAccepted
	StateRejectedRetry
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateAccepted:
		return "accepted"
	case StateRejectedRetry:
		return "rejected-retry"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// FetchError is a remote or payload failure on a given attempt.
type FetchError struct {
	Attempt int
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("vocab: attempt %d: %v", e.Attempt, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

type Transition struct {
	From    State
	To      State
	Attempt int
	Term    string
	Err     error
}

type Option func(*Controller)

// WithMaxRetries bounds how many times a duplicate word is re-requested.
func WithMaxRetries(n int) Option {
	return func(c *Controller) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// WithTimeout bounds each remote attempt.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithObserver(fn func(Transition)) Option {
	return func(c *Controller) { c.observer = fn }
}

// Controller serializes word requests: at most one is outstanding, and a
// word already in History is re-requested up to maxRetries times.
type Controller struct {
	gen        Generator
	persist    *persist.Adapter
	log        *log.Logger
	maxRetries int
	timeout    time.Duration
	observer   func(Transition)

	mu      sync.Mutex
	busy    bool
	state   State
	history *History
	current *model.WordPair
}

func NewController(gen Generator, adapter *persist.Adapter, logger *log.Logger, opts ...Option) *Controller {
	c := &Controller{
		gen:        gen,
		persist:    adapter,
		log:        logger.WithPrefix("vocab"),
		maxRetries: DefaultMaxRetries,
		timeout:    DefaultTimeout,
		history:    NewHistory(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Hydrate(ctx context.Context) {
	terms := c.persist.LoadHistory(ctx)
	c.mu.Lock()
	c.history = NewHistory(terms)
	c.mu.Unlock()
	c.log.Info("hydrated", "history", len(terms))
}

func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// State is the outcome of the last fetch while idle, or the live state
// while one is running.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) History() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history.Terms()
}

func (c *Controller) Current() (model.WordPair, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return model.WordPair{}, false
	}
	return *c.current, true
}

// Fetch requests a word not already in History. A second call while one is
// outstanding returns ErrInFlight and is dropped.
func (c *Controller) Fetch(ctx context.Context, lang model.Language) (model.WordPair, error) {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return model.WordPair{}, ErrInFlight
	}
	c.busy = true
	c.mu.Unlock()

	pair, err := c.run(ctx, lang)

	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
	return pair, err
}

func (c *Controller) run(ctx context.Context, lang model.Language) (model.WordPair, error) {
	for attempt := 1; ; attempt++ {
		c.transition(StateFetching, attempt, "", nil)

		actx, cancel := context.WithTimeout(ctx, c.timeout)
		pair, err := c.gen.Generate(actx, lang, c.History())
		cancel()
		if err == nil {
			err = pair.Validate()
		}
		if err != nil {
			ferr := &FetchError{Attempt: attempt, Err: err}
			c.transition(StateFailed, attempt, "", ferr)
			return model.WordPair{}, ferr
		}

		c.mu.Lock()
		dup := c.history.Contains(pair.Primary)
		c.mu.Unlock()
		if dup {
			c.transition(StateRejectedRetry, attempt, pair.Primary, nil)
			if attempt > c.maxRetries {
				err := fmt.Errorf("%w after %d attempts", ErrRetriesExhausted, attempt)
				c.transition(StateFailed, attempt, pair.Primary, err)
				return model.WordPair{}, err
			}
			continue
		}

		c.mu.Lock()
		c.history.Push(pair.Primary)
		terms := c.history.Terms()
		c.current = &pair
		c.mu.Unlock()
		_ = c.persist.SaveHistory(ctx, terms)
		c.transition(StateAccepted, attempt, pair.Primary, nil)
		return pair, nil
	}
}

func (c *Controller) transition(to State, attempt int, term string, err error) {
	c.mu.Lock()
	from := c.state
	c.state = to
	observer := c.observer
	c.mu.Unlock()

	if err != nil {
		c.log.Warn("fetch "+to.String(), "attempt", attempt, "term", term, "err", err)
	} else {
		c.log.Debug("fetch "+to.String(), "attempt", attempt, "term", term)
	}
	if observer != nil {
		observer(Transition{From: from, To: to, Attempt: attempt, Term: term, Err: err})
	}
}
