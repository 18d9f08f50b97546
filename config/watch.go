package config

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// DefaultDebounce is the default debounce duration for reload processing.
const DefaultDebounce = 100 * time.Millisecond

// watchConfig holds options for Watch.
type watchConfig struct {
	debounce time.Duration
	clock    clockz.Clock
}

// WatchOption configures Watch.
type WatchOption func(*watchConfig)

// WithDebounce sets the debounce duration for reload processing.
// Writes arriving within this duration are coalesced into a single reload.
func WithDebounce(d time.Duration) WatchOption {
	return func(c *watchConfig) {
		c.debounce = d
	}
}

// WithClock sets a custom clock for debounce timers.
func WithClock(clock clockz.Clock) WatchOption {
	return func(c *watchConfig) {
		c.clock = clock
	}
}

// Watch loads the configuration, applies it, and keeps reloading on file
// writes until the context is cancelled. An invalid or unappliable reload
// is dropped with an event; the previously applied configuration stays in
// effect.
//
// If the initial load or apply fails, Watch returns that error but keeps
// watching in the background for a valid update.
func Watch(ctx context.Context, path string, apply func(Config) error, opts ...WatchOption) error {
	wcfg := &watchConfig{
		debounce: DefaultDebounce,
		clock:    clockz.RealClock,
	}
	for _, opt := range opts {
		opt(wcfg)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return fmt.Errorf("watch file %s: %w", path, err)
	}

	initialErr := reload(ctx, path, apply, true)

	go watch(ctx, watcher, wcfg, path, apply)

	return initialErr
}

// reload loads, validates, and applies one configuration pass. Failures are
// converted into events; the returned error is only surfaced for the
// initial load.
func reload(ctx context.Context, path string, apply func(Config) error, initial bool) error {
	cfg, err := Load(path)
	if err != nil {
		capitan.Emit(ctx, Invalid,
			KeyPath.Field(path),
			KeyError.Field(err.Error()),
		)
		return err
	}

	if err := apply(cfg); err != nil {
		capitan.Emit(ctx, ApplyFailed,
			KeyPath.Field(path),
			KeyError.Field(err.Error()),
		)
		return fmt.Errorf("apply config: %w", err)
	}

	sig := Reloaded
	if initial {
		sig = Loaded
	}
	capitan.Emit(ctx, sig,
		KeyPath.Field(path),
	)
	return nil
}

// watch processes file events with debouncing.
func watch(ctx context.Context, watcher *fsnotify.Watcher, wcfg *watchConfig, path string, apply func(Config) error) {
	defer watcher.Close()

	var (
		timer   clockz.Timer
		pending bool
	)

	for {
		// Get timer channel or nil if no timer
		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C()
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			pending = true
			if timer == nil {
				timer = wcfg.clock.NewTimer(wcfg.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C():
					default:
					}
				}
				timer.Reset(wcfg.debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			capitan.Emit(ctx, WatchError,
				KeyPath.Field(path),
				KeyError.Field(err.Error()),
			)

		case <-timerC:
			if pending {
				pending = false
				_ = reload(ctx, path, apply, false) //nolint:errcheck // Failures emitted as events
			}
		}
	}
}
