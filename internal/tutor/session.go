// Package tutor holds the in-memory chat session with the AI tutor.
package tutor

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/smartstudy/internal/gateway"
	"github.com/abhisek/smartstudy/internal/llm"
)

const (
	// Greeting opens every session.
	Greeting = "Hi! I'm your AI Tutor. Need help with a specific problem or concept?"

	// EmptyReply stands in for a blank model reply.
	EmptyReply = "I'm having trouble thinking right now."

	// ConnectionApology is shown when the chat request fails.
	ConnectionApology = "Sorry, I couldn't connect to the server."
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one entry in the conversation.
type ChatMessage struct {
	ID        string
	Role      Role
	Text      string
	Timestamp time.Time
}

// Chatter sends a message to the tutor model.
type Chatter interface {
	Chat(ctx context.Context, turns []gateway.ChatTurn, newMessage string) (string, error)
}

// Session is an append-only conversation. It is never persisted.
type Session struct {
	chat Chatter
	now  func() time.Time

	mu       sync.Mutex
	messages []ChatMessage
	pending  bool
}

// NewSession starts a session with the greeting.
func NewSession(chat Chatter) *Session {
	s := &Session{chat: chat, now: time.Now}
	s.messages = append(s.messages, s.newMessage(RoleAssistant, Greeting))
	return s
}

// Messages returns a copy of the conversation so far.
func (s *Session) Messages() []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Pending reports whether a reply is outstanding.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Send appends text as a user message, waits for the reply and appends
// it. Blank text is ignored and reported as false.
func (s *Session) Send(ctx context.Context, text string) bool {
	call, ok := s.Begin(text)
	if !ok {
		return false
	}
	reply, err := call(ctx)
	s.Complete(reply, err)
	return true
}

// Begin appends the user message immediately and returns the request to
// run. The prior conversation is captured before the new message, so the
// request carries history and the new message separately. Call Complete
// with the result. ok is false for blank text or while a reply is pending.
func (s *Session) Begin(text string) (call func(context.Context) (string, error), ok bool) {
	if strings.TrimSpace(text) == "" {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending {
		return nil, false
	}

	turns := make([]gateway.ChatTurn, 0, len(s.messages))
	for _, m := range s.messages {
		turns = append(turns, gateway.ChatTurn{Role: llmRole(m.Role), Text: m.Text})
	}
	s.messages = append(s.messages, s.newMessage(RoleUser, text))
	s.pending = true

	return func(ctx context.Context) (string, error) {
		return s.chat.Chat(ctx, turns, text)
	}, true
}

// Complete appends the assistant reply for the outstanding request.
func (s *Session) Complete(reply string, err error) ChatMessage {
	text := reply
	switch {
	case err != nil:
		text = ConnectionApology
	case strings.TrimSpace(reply) == "":
		text = EmptyReply
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.newMessage(RoleAssistant, text)
	s.messages = append(s.messages, msg)
	s.pending = false
	return msg
}

// Cancel clears a pending request without appending a reply.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false
}

func (s *Session) newMessage(role Role, text string) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: s.now(),
	}
}

func llmRole(r Role) llm.Role {
	if r == RoleUser {
		return llm.RoleUser
	}
	return llm.RoleAssistant
}
