package ignition

// ReadinessState represents the lifecycle state of a Controller.
type ReadinessState int32

const (
	// StateInitializing indicates the Controller has not yet decided what
	// the application should render; consumers show a loading indicator.
	StateInitializing ReadinessState = iota

	// StateReady indicates the application may render its full interface.
	// The transition from StateInitializing is one-way and happens exactly
	// once per Controller.
	StateReady
)

// String returns the string representation of the state.
func (s ReadinessState) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// BackendStatus represents the connectivity state of the backend CLI.
// It is tracked independently of ReadinessState and may change on every
// status check for the lifetime of the application.
type BackendStatus int32

const (
	// StatusUnknown indicates no status check has completed yet.
	StatusUnknown BackendStatus = iota

	// StatusConnected indicates the last status check succeeded.
	StatusConnected

	// StatusDisconnected indicates the backend could not be reached, either
	// because a check timed out or because the payload reported the CLI
	// missing.
	StatusDisconnected

	// StatusError indicates the last status check failed with an error.
	StatusError
)

// String returns the string representation of the status.
func (s BackendStatus) String() string {
	switch s {
	case StatusUnknown:
		return "unknown"
	case StatusConnected:
		return "connected"
	case StatusDisconnected:
		return "disconnected"
	case StatusError:
		return "error"
	default:
		return "invalid"
	}
}
