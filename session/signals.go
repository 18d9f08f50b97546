package session

import "github.com/zoobzio/capitan"

// Store signals.
var (
	// ProjectChanged is emitted when the current project path changes.
	ProjectChanged = capitan.NewSignal(
		"session.project.changed",
		"Current project path changed",
	)

	// ChatSent is emitted when a chat round trip completes.
	ChatSent = capitan.NewSignal(
		"session.chat.sent",
		"Chat message sent and reply recorded",
	)

	// ChatFailed is emitted when the CLI chat call fails.
	ChatFailed = capitan.NewSignal(
		"session.chat.failed",
		"Chat message delivery failed",
	)

	// SwarmStarted is emitted when a swarm task is registered.
	SwarmStarted = capitan.NewSignal(
		"session.swarm.started",
		"Swarm task registered",
	)
)

// Field keys for Store events.
var (
	// KeyProject is the current project path.
	KeyProject = capitan.NewStringKey("project")

	// KeyTaskID is the id of a swarm task.
	KeyTaskID = capitan.NewStringKey("task_id")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")
)
