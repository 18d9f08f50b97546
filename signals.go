package ignition

import "github.com/zoobzio/capitan"

// Controller lifecycle signals.
var (
	// ControllerStarted is emitted when a Controller begins initialization.
	ControllerStarted = capitan.NewSignal(
		"ignition.controller.started",
		"Controller initialization started",
	)

	// ControllerReady is emitted exactly once, when the Controller decides
	// the application may render its full interface.
	ControllerReady = capitan.NewSignal(
		"ignition.controller.ready",
		"Controller reached ready",
	)

	// StateChanged is emitted when the readiness state transitions.
	StateChanged = capitan.NewSignal(
		"ignition.state.changed",
		"Readiness state transition",
	)

	// BridgeUnavailable is emitted when the capability probe finds no
	// bridge in the running environment.
	BridgeUnavailable = capitan.NewSignal(
		"ignition.bridge.unavailable",
		"Native bridge absent at probe time",
	)

	// ListenerFailed is emitted when bridge listener registration fails.
	// The failure is swallowed; initialization continues.
	ListenerFailed = capitan.NewSignal(
		"ignition.bridge.listener.failed",
		"Bridge listener registration failed",
	)
)

// Status check signals.
var (
	// StatusCheckSucceeded is emitted when a backend status query completes.
	StatusCheckSucceeded = capitan.NewSignal(
		"ignition.status.check.succeeded",
		"Backend status query succeeded",
	)

	// StatusCheckFailed is emitted when a backend status query fails.
	StatusCheckFailed = capitan.NewSignal(
		"ignition.status.check.failed",
		"Backend status query failed",
	)

	// StatusCheckTimedOut is emitted when the initial status query does not
	// settle within the status timeout. A late result may still land.
	StatusCheckTimedOut = capitan.NewSignal(
		"ignition.status.check.timeout",
		"Backend status query exceeded its timeout",
	)

	// StatusChanged is emitted when the backend status transitions.
	StatusChanged = capitan.NewSignal(
		"ignition.status.changed",
		"Backend status transition",
	)
)

// Poll loop signals.
var (
	// PollStarted is emitted when the recurring status poll begins.
	PollStarted = capitan.NewSignal(
		"ignition.poll.started",
		"Recurring status poll started",
	)

	// PollStopped is emitted when the recurring status poll is cancelled.
	PollStopped = capitan.NewSignal(
		"ignition.poll.stopped",
		"Recurring status poll stopped",
	)
)

// Bootstrap signals.
var (
	// BootstrapMounted is emitted when the root surface is activated.
	BootstrapMounted = capitan.NewSignal(
		"ignition.bootstrap.mounted",
		"Root surface activated",
	)

	// BootstrapFailed is emitted when the root surface is missing or cannot
	// be activated. This is the only fatal condition in the package.
	BootstrapFailed = capitan.NewSignal(
		"ignition.bootstrap.failed",
		"Root surface missing or activation failed",
	)
)
