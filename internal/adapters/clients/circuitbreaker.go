package clients

import (
	"sync"
	"time"

	"github.com/jsamuelsen/quotebook/internal/platform/config"
)

// State is the position of a circuit breaker.
type State int

const (
	// StateClosed lets every request through.
	StateClosed State = iota

	// StateOpen rejects requests until the cool-down elapses.
	StateOpen

	// StateHalfOpen admits a bounded number of probe requests.
	StateHalfOpen
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreaker guards one downstream source.
//
// State transitions:
//   - Closed → Open: after MaxFailures consecutive failures
//   - Open → HalfOpen: once Timeout has passed since the last failure
//   - HalfOpen → Closed: after HalfOpenLimit consecutive successes
//   - HalfOpen → Open: on any failure
type CircuitBreaker struct {
	mu       sync.Mutex
	cfg      config.CircuitBreakerConfig
	state    State
	failures int
	// successes counts probe successes while half-open.
	successes   int
	inFlight    int
	lastFailure time.Time

	onStateChange func(from, to State)
	now           func() time.Time
}

// NewCircuitBreaker creates a closed breaker.
func NewCircuitBreaker(cfg config.CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		cfg:   cfg,
		state: StateClosed,
		now:   time.Now,
	}
}

// OnStateChange registers a callback run after every transition.
// The callback runs on the goroutine that caused the transition, outside the lock.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.onStateChange = fn
}

// Allow reports whether a request may proceed.
// An open breaker whose cool-down has elapsed moves to half-open and admits the caller as a probe.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()

	var (
		allowed bool
		from    State
		changed bool
	)

	switch cb.state {
	case StateClosed:
		allowed = true

	case StateOpen:
		if cb.now().Sub(cb.lastFailure) >= cb.cfg.Timeout {
			from, changed = cb.transitionLocked(StateHalfOpen)
			cb.inFlight = 1
			allowed = true
		}

	case StateHalfOpen:
		if cb.inFlight < cb.cfg.HalfOpenLimit {
			cb.inFlight++
			allowed = true
		}
	}

	notify := cb.onStateChange
	cb.mu.Unlock()

	if changed && notify != nil {
		notify(from, StateHalfOpen)
	}

	return allowed
}

// RecordSuccess records a completed request.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()

	var (
		from    State
		changed bool
	)

	switch cb.state {
	case StateClosed:
		cb.failures = 0

	case StateHalfOpen:
		cb.inFlight = max(cb.inFlight-1, 0)
		cb.successes++
		if cb.successes >= cb.cfg.HalfOpenLimit {
			from, changed = cb.transitionLocked(StateClosed)
		}
	}

	notify := cb.onStateChange
	cb.mu.Unlock()

	if changed && notify != nil {
		notify(from, StateClosed)
	}
}

// RecordFailure records a failed request.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()

	var (
		from    State
		changed bool
	)

	cb.lastFailure = cb.now()

	switch cb.state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.cfg.MaxFailures {
			from, changed = cb.transitionLocked(StateOpen)
		}

	case StateHalfOpen:
		cb.inFlight = max(cb.inFlight-1, 0)
		from, changed = cb.transitionLocked(StateOpen)
	}

	notify := cb.onStateChange
	cb.mu.Unlock()

	if changed && notify != nil {
		notify(from, StateOpen)
	}
}

// State returns the current state without advancing it.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.state
}

// transitionLocked moves to next and resets counters. Caller holds mu.
func (cb *CircuitBreaker) transitionLocked(next State) (State, bool) {
	prev := cb.state
	if prev == next {
		return prev, false
	}

	cb.state = next
	cb.failures = 0
	cb.successes = 0

	return prev, true
}
