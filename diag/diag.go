// Package diag forwards capitan signals to a zap logger, giving the shell
// one structured log stream covering every lifecycle transition.
package diag

import (
	"context"

	"github.com/zoobzio/capitan"
	"go.uber.org/zap"

	"github.com/nexusdesk/ignition"
	"github.com/nexusdesk/ignition/config"
	"github.com/nexusdesk/ignition/session"
)

// Install hooks every ignition, config, and session signal into the given
// logger. Call once at startup, before the controller starts; hooks are
// global and cannot be removed.
func Install(logger *zap.Logger) {
	installController(logger)
	installStatus(logger)
	installBootstrap(logger)
	installConfig(logger)
	installSession(logger)
}

func installController(logger *zap.Logger) {
	capitan.Hook(ignition.ControllerStarted, func(_ context.Context, e *capitan.Event) {
		deadline, _ := ignition.KeyDeadline.From(e)
		statusTimeout, _ := ignition.KeyStatusTimeout.From(e)
		pollInterval, _ := ignition.KeyPollInterval.From(e)
		logger.Info("controller started",
			zap.Duration("deadline", deadline),
			zap.Duration("status_timeout", statusTimeout),
			zap.Duration("poll_interval", pollInterval),
		)
	})

	capitan.Hook(ignition.ControllerReady, func(_ context.Context, e *capitan.Event) {
		source, _ := ignition.KeySource.From(e)
		elapsed, _ := ignition.KeyElapsed.From(e)
		logger.Info("controller ready",
			zap.String("source", source),
			zap.Duration("elapsed", elapsed),
		)
	})

	capitan.Hook(ignition.StateChanged, func(_ context.Context, e *capitan.Event) {
		oldState, _ := ignition.KeyOldState.From(e)
		newState, _ := ignition.KeyNewState.From(e)
		logger.Info("readiness state changed",
			zap.String("old_state", oldState),
			zap.String("new_state", newState),
		)
	})

	capitan.Hook(ignition.BridgeUnavailable, func(_ context.Context, _ *capitan.Event) {
		logger.Warn("native bridge unavailable")
	})

	capitan.Hook(ignition.ListenerFailed, func(_ context.Context, e *capitan.Event) {
		errMsg, _ := ignition.KeyError.From(e)
		logger.Warn("listener registration failed",
			zap.String("error", errMsg),
		)
	})
}

func installStatus(logger *zap.Logger) {
	capitan.Hook(ignition.StatusCheckSucceeded, func(_ context.Context, e *capitan.Event) {
		version, _ := ignition.KeyVersion.From(e)
		platform, _ := ignition.KeyPlatform.From(e)
		logger.Debug("status check succeeded",
			zap.String("version", version),
			zap.String("platform", platform),
		)
	})

	capitan.Hook(ignition.StatusCheckFailed, func(_ context.Context, e *capitan.Event) {
		errMsg, _ := ignition.KeyError.From(e)
		logger.Warn("status check failed",
			zap.String("error", errMsg),
		)
	})

	capitan.Hook(ignition.StatusCheckTimedOut, func(_ context.Context, e *capitan.Event) {
		timeout, _ := ignition.KeyStatusTimeout.From(e)
		logger.Warn("status check timed out",
			zap.Duration("status_timeout", timeout),
		)
	})

	capitan.Hook(ignition.StatusChanged, func(_ context.Context, e *capitan.Event) {
		oldStatus, _ := ignition.KeyOldStatus.From(e)
		newStatus, _ := ignition.KeyNewStatus.From(e)
		logger.Info("backend status changed",
			zap.String("old_status", oldStatus),
			zap.String("new_status", newStatus),
		)
	})

	capitan.Hook(ignition.PollStarted, func(_ context.Context, e *capitan.Event) {
		interval, _ := ignition.KeyPollInterval.From(e)
		logger.Debug("status poll started",
			zap.Duration("poll_interval", interval),
		)
	})

	capitan.Hook(ignition.PollStopped, func(_ context.Context, _ *capitan.Event) {
		logger.Debug("status poll stopped")
	})
}

func installBootstrap(logger *zap.Logger) {
	capitan.Hook(ignition.BootstrapMounted, func(_ context.Context, _ *capitan.Event) {
		logger.Info("root surface mounted")
	})

	capitan.Hook(ignition.BootstrapFailed, func(_ context.Context, e *capitan.Event) {
		errMsg, _ := ignition.KeyError.From(e)
		logger.Error("bootstrap failed",
			zap.String("error", errMsg),
		)
	})
}

func installConfig(logger *zap.Logger) {
	capitan.Hook(config.Loaded, func(_ context.Context, e *capitan.Event) {
		path, _ := config.KeyPath.From(e)
		logger.Info("config loaded", zap.String("path", path))
	})

	capitan.Hook(config.Reloaded, func(_ context.Context, e *capitan.Event) {
		path, _ := config.KeyPath.From(e)
		logger.Info("config reloaded", zap.String("path", path))
	})

	capitan.Hook(config.Invalid, func(_ context.Context, e *capitan.Event) {
		path, _ := config.KeyPath.From(e)
		errMsg, _ := config.KeyError.From(e)
		logger.Warn("config rejected",
			zap.String("path", path),
			zap.String("error", errMsg),
		)
	})

	capitan.Hook(config.ApplyFailed, func(_ context.Context, e *capitan.Event) {
		path, _ := config.KeyPath.From(e)
		errMsg, _ := config.KeyError.From(e)
		logger.Error("config apply failed",
			zap.String("path", path),
			zap.String("error", errMsg),
		)
	})

	capitan.Hook(config.WatchError, func(_ context.Context, e *capitan.Event) {
		path, _ := config.KeyPath.From(e)
		errMsg, _ := config.KeyError.From(e)
		logger.Warn("config watcher error",
			zap.String("path", path),
			zap.String("error", errMsg),
		)
	})
}

func installSession(logger *zap.Logger) {
	capitan.Hook(session.ProjectChanged, func(_ context.Context, e *capitan.Event) {
		project, _ := session.KeyProject.From(e)
		logger.Info("project changed", zap.String("project", project))
	})

	capitan.Hook(session.ChatSent, func(_ context.Context, _ *capitan.Event) {
		logger.Debug("chat round trip completed")
	})

	capitan.Hook(session.ChatFailed, func(_ context.Context, e *capitan.Event) {
		errMsg, _ := session.KeyError.From(e)
		logger.Warn("chat delivery failed",
			zap.String("error", errMsg),
		)
	})

	capitan.Hook(session.SwarmStarted, func(_ context.Context, e *capitan.Event) {
		taskID, _ := session.KeyTaskID.From(e)
		logger.Info("swarm task started",
			zap.String("task_id", taskID),
		)
	})
}
