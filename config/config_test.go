package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nexusdesk/ignition"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func tempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shell.yaml")
	writeFile(t, path, content)
	return path
}

func TestLoad_Basic(t *testing.T) {
	path := tempConfig(t, "deadline: 4s\nstatus_timeout: 1500ms\npoll_interval: 30s\nbinary: nexus-dev\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Deadline.Std() != 4*time.Second {
		t.Errorf("expected deadline 4s, got %v", cfg.Deadline.Std())
	}
	if cfg.StatusTimeout.Std() != 1500*time.Millisecond {
		t.Errorf("expected status timeout 1.5s, got %v", cfg.StatusTimeout.Std())
	}
	if cfg.PollInterval.Std() != 30*time.Second {
		t.Errorf("expected poll interval 30s, got %v", cfg.PollInterval.Std())
	}
	if cfg.Binary != "nexus-dev" {
		t.Errorf("expected binary nexus-dev, got %q", cfg.Binary)
	}
}

func TestLoad_DefaultsForAbsentFields(t *testing.T) {
	path := tempConfig(t, "deadline: 5s\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.StatusTimeout.Std() != ignition.DefaultStatusTimeout {
		t.Errorf("expected default status timeout, got %v", cfg.StatusTimeout.Std())
	}
	if cfg.Binary != "nexus" {
		t.Errorf("expected default binary, got %q", cfg.Binary)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := tempConfig(t, "deadline: 4s\n")
	t.Setenv("IGNITION_DEADLINE", "6s")
	t.Setenv("IGNITION_BINARY", "nexus-canary")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Deadline.Std() != 6*time.Second {
		t.Errorf("expected env override 6s, got %v", cfg.Deadline.Std())
	}
	if cfg.Binary != "nexus-canary" {
		t.Errorf("expected env override, got %q", cfg.Binary)
	}
}

func TestLoad_StatusTimeoutMustBeShorterThanDeadline(t *testing.T) {
	path := tempConfig(t, "deadline: 2s\nstatus_timeout: 2s\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for status_timeout >= deadline")
	}
}

func TestLoad_EmptyBinaryRejected(t *testing.T) {
	path := tempConfig(t, "binary: \"\"\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for empty binary")
	}
}

func TestLoad_BadDuration(t *testing.T) {
	path := tempConfig(t, "deadline: soon\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error for bad duration")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_RemoteBlock(t *testing.T) {
	path := tempConfig(t, `
deadline: 3s
remote:
  host: build.example.com
  port: 22
  user: dev
  password: hunter2
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Remote == nil {
		t.Fatal("expected remote block")
	}
	if cfg.Remote.Host != "build.example.com" || cfg.Remote.Port != 22 {
		t.Errorf("unexpected remote: %+v", cfg.Remote)
	}
}

func TestLoad_RemoteMissingHostRejected(t *testing.T) {
	path := tempConfig(t, "remote:\n  port: 22\n  user: dev\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for remote without host")
	}
}

func TestDefault_IsValid(t *testing.T) {
	if err := validate.Struct(Default()); err != nil {
		t.Errorf("expected default config to validate, got %v", err)
	}
}

func TestControllerOptions(t *testing.T) {
	cfg := Default()
	opts := cfg.ControllerOptions()
	if len(opts) != 3 {
		t.Fatalf("expected 3 options, got %d", len(opts))
	}

	// Options must round-trip into a working controller.
	ctrl := ignition.New(&ignition.FuncBridge{
		AvailableFunc: func() bool { return false },
	}, opts...)
	if ctrl.State() != ignition.StateInitializing {
		t.Errorf("expected initializing, got %s", ctrl.State())
	}
}
