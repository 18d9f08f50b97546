package ignition

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// Default timings for the readiness race.
const (
	// DefaultDeadline is the backstop: readiness is forced when it elapses,
	// whatever else is still in flight. The UI never spins past it.
	DefaultDeadline = 3000 * time.Millisecond

	// DefaultStatusTimeout bounds the initial backend status check. It is
	// strictly shorter than the deadline so the normal path settles first.
	DefaultStatusTimeout = 2000 * time.Millisecond

	// DefaultPollInterval is the recurring status check interval once ready.
	DefaultPollInterval = 10000 * time.Millisecond

	// DefaultFailureHistory is the number of recent status-check failures
	// retained for the disconnected banner's detail view.
	DefaultFailureHistory = 8
)

// Completion paths reported via KeySource and MetricsProvider.OnReady.
const (
	// ReadyDeadline means the backstop timer fired first.
	ReadyDeadline = "deadline"

	// ReadyNoBridge means the capability probe found no bridge.
	ReadyNoBridge = "no-bridge"

	// ReadyInitialized means the initialization sequence completed.
	ReadyInitialized = "initialized"
)

// Controller owns the application-readiness state machine. It races a hard
// deadline against the initialization sequence so the loading indicator
// always resolves, then keeps BackendStatus current with a recurring poll.
type Controller struct {
	bridge        Bridge
	deadline      time.Duration
	statusTimeout time.Duration
	pollInterval  time.Duration
	clock         clockz.Clock
	metrics       MetricsProvider

	state     atomic.Int32
	status    atomic.Int32
	current   atomic.Pointer[Status]
	lastError atomic.Pointer[error]
	failures  *failureRing

	mu        sync.Mutex
	started   bool
	startedAt time.Time

	ready chan struct{}
}

// config holds configuration options for a Controller.
type config struct {
	deadline       time.Duration
	statusTimeout  time.Duration
	pollInterval   time.Duration
	failureHistory int
	clock          clockz.Clock
	metrics        MetricsProvider
}

// Option configures a Controller.
type Option func(*config)

// WithDeadline sets the backstop duration after which readiness is forced
// regardless of any other outcome.
func WithDeadline(d time.Duration) Option {
	return func(c *config) {
		c.deadline = d
	}
}

// WithStatusTimeout sets the timeout for the initial backend status check.
// It should be strictly shorter than the deadline; the race converges to the
// same terminal state either way.
func WithStatusTimeout(d time.Duration) Option {
	return func(c *config) {
		c.statusTimeout = d
	}
}

// WithPollInterval sets the recurring status check interval.
func WithPollInterval(d time.Duration) Option {
	return func(c *config) {
		c.pollInterval = d
	}
}

// WithFailureHistory sets how many recent status-check failures are retained.
// Zero disables retention.
func WithFailureHistory(n int) Option {
	return func(c *config) {
		c.failureHistory = n
	}
}

// WithClock sets a custom clock for time operations.
// Use this with clockz.FakeClock for deterministic timing tests.
func WithClock(clock clockz.Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithMetrics sets a metrics provider for controller events.
func WithMetrics(m MetricsProvider) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// New creates a Controller for the given bridge.
//
// The Controller starts in StateInitializing with StatusUnknown and holds
// both for the lifetime of the process; tear it down by cancelling the
// context passed to Start.
//
// Example:
//
//	ctrl := ignition.New(bridge,
//	    ignition.WithDeadline(3*time.Second),
//	    ignition.WithStatusTimeout(2*time.Second),
//	)
//	ctrl.Start(ctx)
//	<-ctrl.Ready()
func New(bridge Bridge, opts ...Option) *Controller {
	cfg := &config{
		deadline:       DefaultDeadline,
		statusTimeout:  DefaultStatusTimeout,
		pollInterval:   DefaultPollInterval,
		failureHistory: DefaultFailureHistory,
		clock:          clockz.RealClock,
		metrics:        NoOpMetricsProvider{},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	c := &Controller{
		bridge:        bridge,
		deadline:      cfg.deadline,
		statusTimeout: cfg.statusTimeout,
		pollInterval:  cfg.pollInterval,
		clock:         cfg.clock,
		metrics:       cfg.metrics,
		failures:      newFailureRing(cfg.failureHistory),
		ready:         make(chan struct{}),
	}
	c.state.Store(int32(StateInitializing))
	c.status.Store(int32(StatusUnknown))

	return c
}

// State returns the current readiness state.
func (c *Controller) State() ReadinessState {
	return ReadinessState(c.state.Load())
}

// Status returns the current backend status.
func (c *Controller) Status() BackendStatus {
	return BackendStatus(c.status.Load())
}

// Current returns the last status payload and true, or the zero value and
// false if no query has succeeded yet.
func (c *Controller) Current() (Status, bool) {
	ptr := c.current.Load()
	if ptr == nil {
		return Status{}, false
	}
	return *ptr, true
}

// LastError returns the last status-check error, or nil if the most recent
// check succeeded or none has run.
func (c *Controller) LastError() error {
	ptr := c.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// RecentFailures returns retained status-check failures, oldest first.
func (c *Controller) RecentFailures() []CheckFailure {
	return c.failures.all()
}

// Ready returns a channel that is closed when the readiness state flips.
func (c *Controller) Ready() <-chan struct{} {
	return c.ready
}

// Start begins the readiness race. It is idempotent per Controller: the
// second and later calls do nothing.
//
// Start arms the deadline backstop and runs the initialization sequence
// concurrently; whichever finishes first flips the state. If the bridge is
// absent, readiness is immediate and no status query is ever attempted.
// Start never blocks; wait on Ready() if synchronization is needed.
//
// The context governs the Controller's lifetime: cancelling it stops the
// recurring poll and any pending timers.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.startedAt = c.clock.Now()
	c.mu.Unlock()

	capitan.Emit(ctx, ControllerStarted,
		KeyDeadline.Field(c.deadline),
		KeyStatusTimeout.Field(c.statusTimeout),
		KeyPollInterval.Field(c.pollInterval),
	)

	// Capability probe: sampled once, never re-sampled. With no bridge
	// there is nothing left to wait for, so the deadline is never armed.
	if !c.bridge.Available() {
		capitan.Emit(ctx, BridgeUnavailable)
		c.becomeReady(ctx, ReadyNoBridge)
		return
	}

	go c.armDeadline(ctx)
	go c.initialize(ctx)
}

// CheckStatus performs one backend status query and updates BackendStatus
// with the outcome. Failures are recorded and emitted, never propagated:
// the returned status is the new BackendStatus, whatever happened.
//
// This is also the manual retry action behind the disconnected banner.
func (c *Controller) CheckStatus(ctx context.Context) BackendStatus {
	start := c.clock.Now()
	st, err := c.bridge.QueryStatus(ctx)
	elapsed := c.clock.Now().Sub(start)

	if err != nil {
		c.setError(err)
		c.failures.push(err, start)
		capitan.Emit(ctx, StatusCheckFailed,
			KeyError.Field(err.Error()),
		)
		c.metrics.OnStatusCheck("failure", elapsed)
		c.setStatus(ctx, StatusError)
		return StatusError
	}

	c.current.Store(&st)
	c.lastError.Store(nil)
	capitan.Emit(ctx, StatusCheckSucceeded,
		KeyVersion.Field(st.Version),
		KeyPlatform.Field(st.Platform),
	)
	c.metrics.OnStatusCheck("success", elapsed)

	next := StatusConnected
	if !st.Installed {
		next = StatusDisconnected
	}
	c.setStatus(ctx, next)
	return next
}

// armDeadline forces readiness when the backstop fires. It stands down once
// the state flips through any other path.
func (c *Controller) armDeadline(ctx context.Context) {
	timer := c.clock.NewTimer(c.deadline)
	defer timer.Stop()

	select {
	case <-timer.C():
		c.becomeReady(ctx, ReadyDeadline)
	case <-c.ready:
	case <-ctx.Done():
	}
}

// initialize runs the startup sequence: listener registration, then one
// status check bounded by the status timeout. Every failure inside it is
// non-fatal; the sequence always ends in readiness.
func (c *Controller) initialize(ctx context.Context) {
	if err := c.bridge.RegisterListener(ctx); err != nil {
		capitan.Emit(ctx, ListenerFailed,
			KeyError.Field(err.Error()),
		)
	}

	c.initialCheck(ctx)
	c.becomeReady(ctx, ReadyInitialized)
}

// initialCheck races one status check against the status timeout. On
// timeout the status degrades to disconnected, but the in-flight query is
// not abandoned: a late result still lands after readiness.
func (c *Controller) initialCheck(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.CheckStatus(ctx)
	}()

	timer := c.clock.NewTimer(c.statusTimeout)
	defer timer.Stop()

	select {
	case <-done:
	case <-timer.C():
		capitan.Emit(ctx, StatusCheckTimedOut,
			KeyStatusTimeout.Field(c.statusTimeout),
		)
		c.metrics.OnStatusCheck("timeout", c.statusTimeout)
		c.setStatus(ctx, StatusDisconnected)
	case <-ctx.Done():
	}
}

// becomeReady flips the readiness state. Exactly one caller wins; the rest
// return without effect. The winner records the completion path, releases
// everything waiting on Ready(), and starts the recurring poll when there is
// a bridge to poll.
func (c *Controller) becomeReady(ctx context.Context, source string) {
	if !c.state.CompareAndSwap(int32(StateInitializing), int32(StateReady)) {
		return
	}

	c.mu.Lock()
	elapsed := c.clock.Now().Sub(c.startedAt)
	c.mu.Unlock()

	close(c.ready)

	capitan.Emit(ctx, StateChanged,
		KeyOldState.Field(StateInitializing.String()),
		KeyNewState.Field(StateReady.String()),
	)
	capitan.Emit(ctx, ControllerReady,
		KeySource.Field(source),
		KeyElapsed.Field(elapsed),
	)
	c.metrics.OnReady(source, elapsed)

	if source != ReadyNoBridge {
		go c.poll(ctx)
	}
}

// poll performs a recurring status check until the context is cancelled.
func (c *Controller) poll(ctx context.Context) {
	capitan.Emit(ctx, PollStarted,
		KeyPollInterval.Field(c.pollInterval),
	)

	timer := c.clock.NewTimer(c.pollInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			capitan.Emit(ctx, PollStopped,
				KeyState.Field(c.State().String()),
			)
			return
		case <-timer.C():
			c.CheckStatus(ctx)
			timer.Reset(c.pollInterval)
		}
	}
}

// setStatus updates the backend status and emits a transition event when it
// actually changes. Status transitions are unordered and repeatable.
func (c *Controller) setStatus(ctx context.Context, next BackendStatus) {
	prev := BackendStatus(c.status.Swap(int32(next)))
	if prev == next {
		return
	}
	capitan.Emit(ctx, StatusChanged,
		KeyOldStatus.Field(prev.String()),
		KeyNewStatus.Field(next.String()),
	)
	c.metrics.OnStatusChange(prev, next)
}

// setError stores an error atomically.
func (c *Controller) setError(err error) {
	e := err
	c.lastError.Store(&e)
}
