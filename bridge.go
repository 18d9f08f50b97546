package ignition

import "context"

// Status is the payload returned by a backend status query. Field names
// match the wire schema of the nexus CLI's `--json info` response.
type Status struct {
	DaemonRunning  bool   `json:"daemon_running"`
	DaemonPort     *int   `json:"daemon_port,omitempty"`
	Version        string `json:"version"`
	Platform       string `json:"platform"`
	Installed      bool   `json:"nexus_installed"`
	CurrentProject string `json:"current_project,omitempty"`
	Provider       string `json:"provider,omitempty"`
	Model          string `json:"model,omitempty"`
}

// Bridge is the host-side surface the Controller drives. Implementations
// talk to whatever runtime actually hosts the backend: a local CLI binary,
// a remote session, or a fake in tests.
type Bridge interface {
	// Available reports whether the bridge is present in the running
	// environment. The Controller samples this exactly once at Start; a
	// false result short-circuits initialization entirely.
	Available() bool

	// RegisterListener subscribes to backend events. Failures are treated
	// as fire-and-forget by the Controller: logged, never escalated.
	RegisterListener(ctx context.Context) error

	// QueryStatus performs one backend status query. Implementations should
	// honor context cancellation; the Controller applies its own timeout
	// during initialization.
	QueryStatus(ctx context.Context) (Status, error)
}
