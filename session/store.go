// Package session holds the shell's process-wide state: the current
// project, the chat transcript, and the swarm task registry. The Store is
// an explicit object created at startup and passed to its consumers, so the
// state machine around it stays testable in isolation.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"

	"github.com/nexusdesk/ignition/nexus"
)

// Chat roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Swarm task states.
const (
	TaskCompleted = "completed"
	TaskFailed    = "failed"
)

// Message is one chat transcript record. Field names match the desktop
// shell's persisted schema.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Streaming bool      `json:"is_streaming"`
}

// Task is one registered swarm task.
type Task struct {
	ID          string `json:"task_id"`
	Description string `json:"task"`
	Status      string `json:"status"`
	Output      string `json:"output,omitempty"`
}

// chatReply is the data section of a `--json chat` response.
type chatReply struct {
	Response string `json:"response"`
}

// envelope mirrors the CLI's --json wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// Store holds the shell state for one process. All methods are safe for
// concurrent use.
type Store struct {
	runner nexus.Runner
	clock  clockz.Clock

	mu      sync.Mutex
	project string
	history []Message
	swarms  map[string]Task
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets a custom clock for message timestamps.
func WithClock(clock clockz.Clock) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// NewStore creates an empty Store backed by the given runner.
func NewStore(runner nexus.Runner, opts ...Option) *Store {
	s := &Store{
		runner: runner,
		clock:  clockz.RealClock,
		swarms: make(map[string]Task),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetProject records the current project path.
func (s *Store) SetProject(ctx context.Context, path string) {
	s.mu.Lock()
	s.project = path
	s.mu.Unlock()

	capitan.Emit(ctx, ProjectChanged,
		KeyProject.Field(path),
	)
}

// Project returns the current project path, empty if none is set.
func (s *Store) Project() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.project
}

// SendChat appends the user message to the transcript, forwards it to the
// CLI, appends the reply, and returns the reply content. The user message
// stays in the transcript even when the CLI call fails.
func (s *Store) SendChat(ctx context.Context, text string) (string, error) {
	s.append(Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   text,
		Timestamp: s.clock.Now(),
	})

	raw, err := s.runner.Run(ctx, "--json", "chat", text)
	if err != nil {
		capitan.Emit(ctx, ChatFailed,
			KeyError.Field(err.Error()),
		)
		return "", fmt.Errorf("send chat: %w", err)
	}

	content := parseChatReply(raw)
	s.append(Message{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: s.clock.Now(),
	})

	capitan.Emit(ctx, ChatSent)
	return content, nil
}

// History returns a copy of the chat transcript, oldest first.
func (s *Store) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Message, len(s.history))
	copy(out, s.history)
	return out
}

// ClearHistory removes the entire chat transcript.
func (s *Store) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
}

// StartSwarm registers a task, runs it through the CLI, and records the
// outcome. The task stays registered either way so its status can be
// queried later.
func (s *Store) StartSwarm(ctx context.Context, description string) (Task, error) {
	task := Task{
		ID:          uuid.NewString(),
		Description: description,
	}

	capitan.Emit(ctx, SwarmStarted,
		KeyTaskID.Field(task.ID),
	)

	raw, err := s.runner.Run(ctx, "--json", "chat", description)
	if err != nil {
		task.Status = TaskFailed
		s.register(task)
		return task, fmt.Errorf("start swarm: %w", err)
	}

	task.Status = TaskCompleted
	task.Output = parseChatReply(raw)
	s.register(task)
	return task, nil
}

// SwarmStatus returns the task with the given id and true, or the zero
// value and false when no such task exists.
func (s *Store) SwarmStatus(id string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.swarms[id]
	return task, ok
}

// Swarms returns the ids of all registered tasks.
func (s *Store) Swarms() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.swarms))
	for id := range s.swarms {
		ids = append(ids, id)
	}
	return ids
}

func (s *Store) append(m Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, m)
}

func (s *Store) register(task Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.swarms[task.ID] = task
}

// parseChatReply extracts the reply content from a `--json chat` response.
// Non-envelope output is passed through untouched; failure envelopes yield
// their error message.
func parseChatReply(raw []byte) string {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return string(raw)
	}

	if !env.Success {
		if env.Error != "" {
			return env.Error
		}
		return "unknown error"
	}

	var reply chatReply
	if err := json.Unmarshal(env.Data, &reply); err != nil || reply.Response == "" {
		return string(raw)
	}
	return reply.Response
}
