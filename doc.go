/*
Package ignition decides when a desktop shell stops showing its loading
indicator and what to render instead.

The Controller owns a one-way readiness state machine driven by three racing
signals: a hard deadline backstop, a one-time native-bridge capability probe,
and a backend status check bounded by its own shorter timeout. Whichever
settles first flips the state; all paths converge on ready, so the interface
is never stuck on a spinner. Backend connectivity is tracked separately and
may change forever after, refreshed by a recurring poll.

# Basic Usage

Create a controller around a bridge and start the race:

	ctrl := ignition.New(bridge,
	    ignition.WithDeadline(3*time.Second),
	    ignition.WithStatusTimeout(2*time.Second),
	    ignition.WithPollInterval(10*time.Second),
	)
	ctrl.Start(ctx)

	<-ctrl.Ready()
	switch ctrl.Status() {
	case ignition.StatusConnected:
	    // render live interface
	default:
	    // render interface with a disconnected banner
	}

Or let Bootstrap mount the host's root surface and start the controller in
one step:

	if err := ignition.Bootstrap(ctx, host, ctrl); err != nil {
	    // fatal: nowhere to mount the interface
	}

# Failure Semantics

Everything inside initialization is non-fatal. A missing bridge, a failed
listener registration, a status check that errors or hangs: each degrades
BackendStatus and emits an event, none blocks readiness. The single fatal
condition is a missing root surface at bootstrap.

# Observability

Every lifecycle transition emits a capitan signal (see signals.go). Hook
them to feed a logger or audit trail:

	capitan.Hook(ignition.StatusChanged, func(_ context.Context, e *capitan.Event) {
	    from, _ := ignition.KeyOldStatus.From(e)
	    to, _ := ignition.KeyNewStatus.From(e)
	    log.Printf("backend %s -> %s", from, to)
	})

The diag subpackage installs hooks that forward every signal to a
zap.Logger. The MetricsProvider interface offers the same transitions as
typed callbacks for metrics systems.

# Subpackages

  - nexus: the concrete Bridge for the nexus CLI, local or over SSH
  - session: process-wide shell state (project, chat history, swarm tasks)
  - config: shell configuration with validation and hot reload
  - diag: capitan-to-zap log forwarding
*/
package ignition
