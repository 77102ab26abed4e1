// Package chat implements the client side of one assistant conversation: a
// session holds the ordered message history and drives one streamed exchange
// at a time against the backend.
package chat

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/agiantii/bcoj/internal/api"
)

// FallbackAnswer replaces the assistant message when the stream fails. Kept
// fixed so a broken backend never leaves the conversation stuck on a spinner.
const FallbackAnswer = "Sorry, the assistant is unavailable right now. Please try again later."

const titleRuneLimit = 20

// Sentinel errors of Send.
var (
	ErrEmptyQuery   = errors.New("query is empty")
	ErrNoSession    = errors.New("no session id: create one via the backend first")
	ErrStreamActive = errors.New("a stream is already active for this session")
)

// Role of a message author.
type Role string

// Message roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message within a session. Content of an assistant message grows by append
// while its stream is active and is immutable afterwards.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Streamer opens the chunked answer stream for a query. Implemented by
// api.Client.
type Streamer interface {
	StreamChatWithMemory(ctx context.Context, request *api.StreamChatMemoryRequest) (api.Stream, error)
}

// Session is one conversation. It enforces single-flight: at most one stream
// is active per session, and a new Send is rejected while one is running.
type Session struct {
	ID        string
	Title     string
	Messages  []*Message
	CreatedAt time.Time

	streamer Streamer
	// Invoked after every observable mutation of the message history, with
	// the message that changed. Partial answers are visible through it before
	// the stream ends.
	onUpdate func(*Message)

	// Guards cancel; Cancel may be called from another goroutine (signal
	// handlers, view teardown).
	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewSession wraps a backend-issued chat session id.
func NewSession(streamer Streamer, id, title string, onUpdate func(*Message)) *Session {
	return &Session{
		ID:        id,
		Title:     title,
		CreatedAt: time.Now(),
		streamer:  streamer,
		onUpdate:  onUpdate,
	}
}

// Send executes one exchange: it appends the user message, opens the stream
// and appends each chunk to a fresh assistant message as it arrives. It
// returns once the stream completes, fails, or is cancelled. Cancellation is
// not an error: the assistant message keeps exactly the content accumulated
// so far.
func (s *Session) Send(ctx context.Context, query string, problemID int64) error {
	if strings.TrimSpace(query) == "" {
		return ErrEmptyQuery
	}
	if s.ID == "" {
		return ErrNoSession
	}
	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	if s.cancel != nil {
		s.mu.Unlock()
		cancel()
		return ErrStreamActive
	}
	s.cancel = cancel
	s.mu.Unlock()
	defer func() {
		cancel()
		s.mu.Lock()
		s.cancel = nil
		s.mu.Unlock()
	}()

	// The user message is appended optimistically, before any network call.
	userMessage := &Message{
		ID:        uuid.New().String()[:8],
		Role:      RoleUser,
		Content:   query,
		Timestamp: time.Now(),
	}
	s.Messages = append(s.Messages, userMessage)
	if s.Title == "" {
		s.Title = deriveTitle(query)
	}
	s.notify(userMessage)

	request := &api.StreamChatMemoryRequest{
		Query:     query,
		MessageID: s.ID,
		ProblemID: problemID,
	}
	stream, err := s.streamer.StreamChatWithMemory(ctx, request)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		// Degrade to the fixed fallback rather than leaving no answer at all.
		s.appendAssistant(FallbackAnswer)
		return errors.Wrap(err, "opening stream")
	}
	defer stream.Close()

	assistantMessage := s.appendAssistant("")
	for {
		chunk, err := stream.Recv()
		if chunk != "" {
			assistantMessage.Content += chunk
			s.notify(assistantMessage)
		}
		if err == io.EOF {
			return nil
		}
		if errors.Is(err, context.Canceled) {
			// Cancelled by the caller: keep whatever was accumulated.
			return nil
		}
		if err != nil {
			assistantMessage.Content = FallbackAnswer
			s.notify(assistantMessage)
			return errors.Wrap(err, "receiving chunk")
		}
	}
}

// Cancel aborts the in-flight stream, if any. Idempotent; a no-op when
// nothing is in flight. Callers tear sessions down through it so the reader
// is released on every exit path.
func (s *Session) Cancel() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Active reports whether a stream is in flight.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

func (s *Session) appendAssistant(content string) *Message {
	message := &Message{
		ID:        uuid.New().String()[:8],
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: time.Now(),
	}
	s.Messages = append(s.Messages, message)
	s.notify(message)
	return message
}

func (s *Session) notify(message *Message) {
	if s.onUpdate != nil {
		s.onUpdate(message)
	}
}

// deriveTitle truncates the first user message.
func deriveTitle(query string) string {
	runes := []rune(strings.TrimSpace(query))
	if len(runes) <= titleRuneLimit {
		return string(runes)
	}
	return string(runes[:titleRuneLimit]) + "..."
}
