package nexus

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"strings"

	"github.com/nexusdesk/ignition"
)

// envelope is the wrapper the nexus CLI puts around every --json response.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// infoPayload is the data section of a `--json info` response.
type infoPayload struct {
	Version  string `json:"version"`
	Platform string `json:"platform"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// Bridge adapts a Runner into an ignition.Bridge for the nexus CLI.
type Bridge struct {
	runner Runner
}

// NewBridge creates a Bridge over the given runner.
func NewBridge(runner Runner) *Bridge {
	return &Bridge{runner: runner}
}

// Available reports whether the CLI can be reached at all. For a local
// runner that is a PATH lookup; a remote runner already holds an
// authenticated connection and counts as present.
func (b *Bridge) Available() bool {
	if lr, ok := b.runner.(*LocalRunner); ok {
		return lr.Installed()
	}
	return b.runner != nil
}

// RegisterListener asks the CLI to start its watcher. The controller treats
// failures here as fire-and-forget.
func (b *Bridge) RegisterListener(ctx context.Context) error {
	if _, err := b.runner.Run(ctx, "--json", "watch-start"); err != nil {
		return fmt.Errorf("register listener: %w", err)
	}
	return nil
}

// QueryStatus runs `nexus --json info` and builds a status payload from the
// response. When the CLI predates the json surface or returns garbage, it
// falls back to `--version` and infers installation from the output.
func (b *Bridge) QueryStatus(ctx context.Context) (ignition.Status, error) {
	raw, err := b.runner.Run(ctx, "--json", "info")
	if err == nil {
		if st, ok := parseInfo(raw); ok {
			return st, nil
		}
	}

	out, verr := b.runner.Run(ctx, "--version")
	if verr != nil {
		return ignition.Status{}, fmt.Errorf("query status: %w", verr)
	}

	version := strings.TrimSpace(string(out))
	return ignition.Status{
		Version:   version,
		Platform:  runtime.GOOS,
		Installed: version != "" && !strings.Contains(version, "failed"),
	}, nil
}

// parseInfo decodes a successful `--json info` envelope.
func parseInfo(raw []byte) (ignition.Status, bool) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || !env.Success {
		return ignition.Status{}, false
	}

	var info infoPayload
	if err := json.Unmarshal(env.Data, &info); err != nil {
		return ignition.Status{}, false
	}

	st := ignition.Status{
		Version:   info.Version,
		Platform:  info.Platform,
		Provider:  info.Provider,
		Model:     info.Model,
		Installed: true,
	}
	if st.Version == "" {
		st.Version = "unknown"
	}
	if st.Platform == "" {
		st.Platform = "unknown"
	}
	return st, true
}

// Ensure Bridge implements ignition.Bridge.
var _ ignition.Bridge = (*Bridge)(nil)
