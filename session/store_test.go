package session

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// runnerFunc adapts a function into a nexus.Runner.
type runnerFunc func(ctx context.Context, args ...string) ([]byte, error)

func (f runnerFunc) Run(ctx context.Context, args ...string) ([]byte, error) {
	return f(ctx, args...)
}

func TestStore_SendChat_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(runnerFunc(func(_ context.Context, args ...string) ([]byte, error) {
		if strings.Join(args[:2], " ") != "--json chat" {
			t.Fatalf("unexpected args: %v", args)
		}
		return []byte(`{"success":true,"data":{"response":"hi there"}}`), nil
	}))

	reply, err := store.SendChat(ctx, "hello")
	if err != nil {
		t.Fatalf("SendChat failed: %v", err)
	}
	if reply != "hi there" {
		t.Errorf("expected 'hi there', got %q", reply)
	}

	history := store.History()
	if len(history) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(history))
	}
	if history[0].Role != RoleUser || history[0].Content != "hello" {
		t.Errorf("unexpected user message: %+v", history[0])
	}
	if history[1].Role != RoleAssistant || history[1].Content != "hi there" {
		t.Errorf("unexpected assistant message: %+v", history[1])
	}
	if history[0].ID == history[1].ID {
		t.Error("expected distinct message ids")
	}
	if history[0].Timestamp.IsZero() {
		t.Error("expected timestamp set")
	}
}

func TestStore_SendChat_RunnerError_KeepsUserMessage(t *testing.T) {
	ctx := context.Background()
	store := NewStore(runnerFunc(func(_ context.Context, _ ...string) ([]byte, error) {
		return nil, errors.New("daemon down")
	}))

	if _, err := store.SendChat(ctx, "hello"); err == nil {
		t.Fatal("expected error")
	}

	history := store.History()
	if len(history) != 1 {
		t.Fatalf("expected user message retained, got %d messages", len(history))
	}
	if history[0].Role != RoleUser {
		t.Errorf("expected user role, got %q", history[0].Role)
	}
}

func TestStore_SendChat_FailureEnvelope(t *testing.T) {
	ctx := context.Background()
	store := NewStore(runnerFunc(func(_ context.Context, _ ...string) ([]byte, error) {
		return []byte(`{"success":false,"error":"no provider configured"}`), nil
	}))

	reply, err := store.SendChat(ctx, "hello")
	if err != nil {
		t.Fatalf("SendChat failed: %v", err)
	}
	if reply != "no provider configured" {
		t.Errorf("expected envelope error as content, got %q", reply)
	}
}

func TestStore_SendChat_PlainOutputPassthrough(t *testing.T) {
	ctx := context.Background()
	store := NewStore(runnerFunc(func(_ context.Context, _ ...string) ([]byte, error) {
		return []byte("plain text reply"), nil
	}))

	reply, err := store.SendChat(ctx, "hello")
	if err != nil {
		t.Fatalf("SendChat failed: %v", err)
	}
	if reply != "plain text reply" {
		t.Errorf("expected passthrough, got %q", reply)
	}
}

func TestStore_ClearHistory(t *testing.T) {
	ctx := context.Background()
	store := NewStore(runnerFunc(func(_ context.Context, _ ...string) ([]byte, error) {
		return []byte(`{"success":true,"data":{"response":"ok"}}`), nil
	}))

	if _, err := store.SendChat(ctx, "hello"); err != nil {
		t.Fatalf("SendChat failed: %v", err)
	}
	store.ClearHistory()
	if n := len(store.History()); n != 0 {
		t.Errorf("expected empty history, got %d messages", n)
	}
}

func TestStore_StartSwarm_Completed(t *testing.T) {
	ctx := context.Background()
	store := NewStore(runnerFunc(func(_ context.Context, _ ...string) ([]byte, error) {
		return []byte(`{"success":true,"data":{"response":"done"}}`), nil
	}))

	task, err := store.StartSwarm(ctx, "refactor the parser")
	if err != nil {
		t.Fatalf("StartSwarm failed: %v", err)
	}
	if task.Status != TaskCompleted {
		t.Errorf("expected completed, got %q", task.Status)
	}
	if task.Output != "done" {
		t.Errorf("expected output 'done', got %q", task.Output)
	}

	got, ok := store.SwarmStatus(task.ID)
	if !ok {
		t.Fatal("expected task registered")
	}
	if got.Description != "refactor the parser" {
		t.Errorf("unexpected description: %q", got.Description)
	}

	ids := store.Swarms()
	if len(ids) != 1 || ids[0] != task.ID {
		t.Errorf("expected [%s], got %v", task.ID, ids)
	}
}

func TestStore_StartSwarm_FailureStillRegistered(t *testing.T) {
	ctx := context.Background()
	store := NewStore(runnerFunc(func(_ context.Context, _ ...string) ([]byte, error) {
		return nil, errors.New("daemon down")
	}))

	task, err := store.StartSwarm(ctx, "doomed task")
	if err == nil {
		t.Fatal("expected error")
	}
	if task.Status != TaskFailed {
		t.Errorf("expected failed, got %q", task.Status)
	}
	if _, ok := store.SwarmStatus(task.ID); !ok {
		t.Error("expected failed task registered for later inspection")
	}
}

func TestStore_SwarmStatus_Unknown(t *testing.T) {
	store := NewStore(runnerFunc(func(_ context.Context, _ ...string) ([]byte, error) {
		return nil, nil
	}))

	if _, ok := store.SwarmStatus("nope"); ok {
		t.Error("expected unknown task to report false")
	}
}

func TestStore_Project(t *testing.T) {
	ctx := context.Background()
	store := NewStore(runnerFunc(func(_ context.Context, _ ...string) ([]byte, error) {
		return nil, nil
	}))

	if p := store.Project(); p != "" {
		t.Errorf("expected empty project, got %q", p)
	}
	store.SetProject(ctx, "/work/acme")
	if p := store.Project(); p != "/work/acme" {
		t.Errorf("expected /work/acme, got %q", p)
	}
}
