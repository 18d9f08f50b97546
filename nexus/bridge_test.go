package nexus

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// runnerFunc adapts a function into a Runner.
type runnerFunc func(ctx context.Context, args ...string) ([]byte, error)

func (f runnerFunc) Run(ctx context.Context, args ...string) ([]byte, error) {
	return f(ctx, args...)
}

func TestBridge_QueryStatus_InfoEnvelope(t *testing.T) {
	bridge := NewBridge(runnerFunc(func(_ context.Context, args ...string) ([]byte, error) {
		if strings.Join(args, " ") != "--json info" {
			t.Fatalf("unexpected args: %v", args)
		}
		return []byte(`{"success":true,"data":{"version":"2.1.0","platform":"linux","provider":"remote","model":"kimi"}}`), nil
	}))

	st, err := bridge.QueryStatus(context.Background())
	if err != nil {
		t.Fatalf("QueryStatus failed: %v", err)
	}
	if !st.Installed {
		t.Error("expected installed")
	}
	if st.Version != "2.1.0" {
		t.Errorf("expected version 2.1.0, got %q", st.Version)
	}
	if st.Platform != "linux" {
		t.Errorf("expected platform linux, got %q", st.Platform)
	}
	if st.Provider != "remote" || st.Model != "kimi" {
		t.Errorf("expected provider/model carried through, got %q/%q", st.Provider, st.Model)
	}
}

func TestBridge_QueryStatus_EmptyFieldsDefaulted(t *testing.T) {
	bridge := NewBridge(runnerFunc(func(_ context.Context, _ ...string) ([]byte, error) {
		return []byte(`{"success":true,"data":{}}`), nil
	}))

	st, err := bridge.QueryStatus(context.Background())
	if err != nil {
		t.Fatalf("QueryStatus failed: %v", err)
	}
	if st.Version != "unknown" || st.Platform != "unknown" {
		t.Errorf("expected unknown defaults, got %q/%q", st.Version, st.Platform)
	}
}

func TestBridge_QueryStatus_FallsBackToVersion(t *testing.T) {
	bridge := NewBridge(runnerFunc(func(_ context.Context, args ...string) ([]byte, error) {
		if args[0] == "--version" {
			return []byte("nexus 0.9.3\n"), nil
		}
		return []byte("usage: nexus [command]"), nil
	}))

	st, err := bridge.QueryStatus(context.Background())
	if err != nil {
		t.Fatalf("QueryStatus failed: %v", err)
	}
	if st.Version != "nexus 0.9.3" {
		t.Errorf("expected trimmed version output, got %q", st.Version)
	}
	if !st.Installed {
		t.Error("expected installed inferred from version output")
	}
}

func TestBridge_QueryStatus_FailureEnvelopeFallsBack(t *testing.T) {
	bridge := NewBridge(runnerFunc(func(_ context.Context, args ...string) ([]byte, error) {
		if args[0] == "--version" {
			return []byte("command failed\n"), nil
		}
		return []byte(`{"success":false,"error":"daemon not running"}`), nil
	}))

	st, err := bridge.QueryStatus(context.Background())
	if err != nil {
		t.Fatalf("QueryStatus failed: %v", err)
	}
	if st.Installed {
		t.Error("expected not installed when version output reports failure")
	}
}

func TestBridge_QueryStatus_BothPathsFail(t *testing.T) {
	wantErr := errors.New("binary missing")
	bridge := NewBridge(runnerFunc(func(_ context.Context, _ ...string) ([]byte, error) {
		return nil, wantErr
	}))

	_, err := bridge.QueryStatus(context.Background())
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected runner error, got %v", err)
	}
}

func TestBridge_RegisterListener(t *testing.T) {
	var got []string
	bridge := NewBridge(runnerFunc(func(_ context.Context, args ...string) ([]byte, error) {
		got = args
		return []byte(`{"success":true}`), nil
	}))

	if err := bridge.RegisterListener(context.Background()); err != nil {
		t.Fatalf("RegisterListener failed: %v", err)
	}
	if strings.Join(got, " ") != "--json watch-start" {
		t.Errorf("unexpected args: %v", got)
	}
}

func TestBridge_RegisterListener_Error(t *testing.T) {
	bridge := NewBridge(runnerFunc(func(_ context.Context, _ ...string) ([]byte, error) {
		return nil, errors.New("no watcher")
	}))

	if err := bridge.RegisterListener(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestBridge_Available_NonLocalRunner(t *testing.T) {
	bridge := NewBridge(runnerFunc(func(_ context.Context, _ ...string) ([]byte, error) {
		return nil, nil
	}))
	if !bridge.Available() {
		t.Error("expected non-local runners to count as present")
	}
}
