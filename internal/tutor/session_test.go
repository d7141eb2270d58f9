package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/smartstudy/internal/gateway"
	"github.com/abhisek/smartstudy/internal/llm"
)

func newTestSession(responses ...llm.MockResponse) (*Session, *llm.MockProvider) {
	mock := llm.NewMockProvider(responses...)
	return NewSession(gateway.New(mock, nil)), mock
}

func reply(s string) llm.MockResponse {
	return llm.MockResponse{Content: json.RawMessage(s)}
}

func TestNewSession_Greeting(t *testing.T) {
	s, _ := newTestSession()
	msgs := s.Messages()
	if len(msgs) != 1 {
		t.Fatalf("len(messages) = %d, want 1", len(msgs))
	}
	if msgs[0].Role != RoleAssistant || msgs[0].Text != Greeting {
		t.Errorf("first message = %+v, want assistant greeting", msgs[0])
	}
	if msgs[0].ID == "" {
		t.Error("greeting has no id")
	}
}

func TestSend_AppendsReply(t *testing.T) {
	s, mock := newTestSession(reply("Plants turn light into sugar 🌱"), reply("Chlorophyll!"))
	ctx := context.Background()

	if !s.Send(ctx, "What is photosynthesis?") {
		t.Fatal("Send returned false")
	}
	if !s.Send(ctx, "Why green?") {
		t.Fatal("Send returned false")
	}

	msgs := s.Messages()
	want := []struct {
		role Role
		text string
	}{
		{RoleAssistant, Greeting},
		{RoleUser, "What is photosynthesis?"},
		{RoleAssistant, "Plants turn light into sugar 🌱"},
		{RoleUser, "Why green?"},
		{RoleAssistant, "Chlorophyll!"},
	}
	if len(msgs) != len(want) {
		t.Fatalf("len(messages) = %d, want %d", len(msgs), len(want))
	}
	for i, w := range want {
		if msgs[i].Role != w.role || msgs[i].Text != w.text {
			t.Errorf("messages[%d] = {%s %q}, want {%s %q}", i, msgs[i].Role, msgs[i].Text, w.role, w.text)
		}
	}

	// The second request replays greeting + first exchange, then the new message.
	req := mock.Calls[1]
	if len(req.Messages) != 4 {
		t.Fatalf("second request has %d messages, want 4", len(req.Messages))
	}
	if req.Messages[0].Role != llm.RoleAssistant || req.Messages[0].Content != Greeting {
		t.Errorf("history[0] = %+v", req.Messages[0])
	}
	if req.Messages[3].Role != llm.RoleUser || req.Messages[3].Content != "Why green?" {
		t.Errorf("last message = %+v", req.Messages[3])
	}
}

func TestSend_IgnoresBlank(t *testing.T) {
	s, mock := newTestSession()
	for _, in := range []string{"", "  ", "\n"} {
		if s.Send(context.Background(), in) {
			t.Errorf("Send(%q) = true, want false", in)
		}
	}
	if mock.CallCount() != 0 {
		t.Errorf("CallCount = %d, want 0", mock.CallCount())
	}
	if n := len(s.Messages()); n != 1 {
		t.Errorf("len(messages) = %d, want 1", n)
	}
}

func TestSend_EmptyReply(t *testing.T) {
	s, _ := newTestSession(reply("   "))
	s.Send(context.Background(), "hello")
	msgs := s.Messages()
	if got := msgs[len(msgs)-1].Text; got != EmptyReply {
		t.Errorf("reply = %q, want %q", got, EmptyReply)
	}
}

func TestSend_Failure(t *testing.T) {
	s, _ := newTestSession(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("offline")}})
	s.Send(context.Background(), "hello")
	msgs := s.Messages()
	last := msgs[len(msgs)-1]
	if last.Role != RoleAssistant || last.Text != ConnectionApology {
		t.Errorf("last message = {%s %q}, want apology", last.Role, last.Text)
	}
	if s.Pending() {
		t.Error("session still pending after failure")
	}
}

func TestBegin_ShowsUserMessageBeforeReply(t *testing.T) {
	s, _ := newTestSession(reply("Sure!"))

	call, ok := s.Begin("Help me with fractions")
	if !ok {
		t.Fatal("Begin returned false")
	}
	msgs := s.Messages()
	if last := msgs[len(msgs)-1]; last.Role != RoleUser || last.Text != "Help me with fractions" {
		t.Errorf("last message = %+v, want the user message", last)
	}
	if !s.Pending() {
		t.Error("expected pending")
	}

	if _, ok := s.Begin("another"); ok {
		t.Error("Begin while pending should be rejected")
	}

	reply, err := call(context.Background())
	msg := s.Complete(reply, err)
	if msg.Text != "Sure!" {
		t.Errorf("Complete = %q, want %q", msg.Text, "Sure!")
	}
	if s.Pending() {
		t.Error("still pending after Complete")
	}
}

func TestCancel(t *testing.T) {
	s, _ := newTestSession()
	if _, ok := s.Begin("hi"); !ok {
		t.Fatal("Begin returned false")
	}
	s.Cancel()
	if s.Pending() {
		t.Error("pending after Cancel")
	}
	if n := len(s.Messages()); n != 2 {
		t.Errorf("len(messages) = %d, want 2", n)
	}
}
