package config

import "github.com/zoobzio/capitan"

// Configuration lifecycle signals.
var (
	// Loaded is emitted when the initial configuration is applied.
	Loaded = capitan.NewSignal(
		"config.loaded",
		"Initial configuration applied",
	)

	// Reloaded is emitted when a configuration change is applied.
	Reloaded = capitan.NewSignal(
		"config.reloaded",
		"Configuration change applied",
	)

	// Invalid is emitted when a configuration fails to load or validate.
	// The previously applied configuration stays in effect.
	Invalid = capitan.NewSignal(
		"config.invalid",
		"Configuration rejected",
	)

	// ApplyFailed is emitted when the apply callback fails.
	ApplyFailed = capitan.NewSignal(
		"config.apply.failed",
		"Configuration apply failed",
	)

	// WatchError is emitted on a file watcher error.
	WatchError = capitan.NewSignal(
		"config.watch.error",
		"Configuration watcher error",
	)
)

// Field keys for configuration events.
var (
	// KeyPath is the configuration file path.
	KeyPath = capitan.NewStringKey("path")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")
)
