package ignition

import "github.com/zoobzio/capitan"

// Field keys for Controller events.
var (
	// KeyState is the current readiness state.
	KeyState = capitan.NewStringKey("state")

	// KeyOldState is the previous readiness state before a transition.
	KeyOldState = capitan.NewStringKey("old_state")

	// KeyNewState is the new readiness state after a transition.
	KeyNewState = capitan.NewStringKey("new_state")

	// KeyOldStatus is the previous backend status before a transition.
	KeyOldStatus = capitan.NewStringKey("old_status")

	// KeyNewStatus is the new backend status after a transition.
	KeyNewStatus = capitan.NewStringKey("new_status")

	// KeySource names the completion path that forced readiness: "deadline",
	// "no-bridge", or "initialized".
	KeySource = capitan.NewStringKey("source")

	// KeyElapsed is the time spent initializing before readiness.
	KeyElapsed = capitan.NewDurationKey("elapsed")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyDeadline is the configured readiness deadline.
	KeyDeadline = capitan.NewDurationKey("deadline")

	// KeyStatusTimeout is the configured initial status check timeout.
	KeyStatusTimeout = capitan.NewDurationKey("status_timeout")

	// KeyPollInterval is the configured status poll interval.
	KeyPollInterval = capitan.NewDurationKey("poll_interval")

	// KeyVersion is the backend version reported by a status query.
	KeyVersion = capitan.NewStringKey("version")

	// KeyPlatform is the backend platform reported by a status query.
	KeyPlatform = capitan.NewStringKey("platform")
)
