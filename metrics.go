package ignition

import "time"

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on key controller events.
type MetricsProvider interface {
	// OnReady is called once, when the readiness state flips.
	// Source names the completion path: "deadline", "no-bridge", or
	// "initialized". Elapsed is the time spent initializing.
	OnReady(source string, elapsed time.Duration)

	// OnStatusChange is called when the backend status transitions.
	OnStatusChange(from, to BackendStatus)

	// OnStatusCheck is called after every status check attempt.
	// Outcome is "success", "failure", or "timeout".
	OnStatusCheck(outcome string, duration time.Duration)
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnReady(_ string, _ time.Duration)       {}
func (NoOpMetricsProvider) OnStatusChange(_, _ BackendStatus)       {}
func (NoOpMetricsProvider) OnStatusCheck(_ string, _ time.Duration) {}
