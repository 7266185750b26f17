package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/edudesign/internal/curriculum"
	"github.com/abhisek/edudesign/internal/lessonchat"
	"github.com/abhisek/edudesign/internal/llm"
	"github.com/abhisek/edudesign/internal/persona"
)

type chatCall struct {
	history []lessonchat.Message
	message string
	persona persona.Archetype
}

type mockChatter struct {
	mu    sync.Mutex
	reply string
	err   error
	calls []chatCall
}

func (m *mockChatter) Chat(_ context.Context, history []lessonchat.Message, newMessage, _ string, p persona.Archetype) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, chatCall{history: history, message: newMessage, persona: p})
	return m.reply, m.err
}

func testDesign() *curriculum.Design {
	return &curriculum.Design{
		Title:         "Floating Futures",
		NarrativeRole: "Ocean Engineer",
		Overview:      "Learners design a floating community.",
		JoyMechanism:  curriculum.JoyMechanism{Description: "Teams earn harbor permits."},
	}
}

func typeText(s *ChatScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func enter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }
func tab() tea.KeyPressMsg   { return tea.KeyPressMsg{Code: tea.KeyTab} }

func runReply(t *testing.T, cmd tea.Cmd) replyMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatal("expected BatchMsg")
	}
	for _, c := range batch {
		if c == nil {
			continue
		}
		if msg, ok := c().(replyMsg); ok {
			return msg
		}
	}
	t.Fatal("no replyMsg in batch")
	return replyMsg{}
}

func TestChatScreen_StartsWithGreeting(t *testing.T) {
	s := New(&mockChatter{}, testDesign())

	h := s.History()
	if len(h) != 1 || h[0].Role != lessonchat.RoleAssistant {
		t.Fatalf("history = %v", h)
	}
	if h[0].Content != testDesign().Greeting() {
		t.Errorf("greeting = %q", h[0].Content)
	}
	if s.Persona() != persona.Socratic {
		t.Errorf("persona = %s, want Socratic", s.Persona())
	}
}

func TestChatScreen_SendAppendsReply(t *testing.T) {
	m := &mockChatter{reply: "What do you think makes it float?"}
	s := New(m, testDesign())

	typeText(s, "Why does it float?")
	_, cmd := s.Update(enter())

	h := s.History()
	if len(h) != 2 || h[1].Role != lessonchat.RoleUser || h[1].Content != "Why does it float?" {
		t.Fatalf("user message not appended immediately: %v", h)
	}
	if s.input.Value() != "" {
		t.Error("input should be cleared after sending")
	}

	s.Update(runReply(t, cmd))

	h = s.History()
	if len(h) != 3 || h[2].Content != "What do you think makes it float?" {
		t.Fatalf("reply not appended: %v", h)
	}
	if len(m.calls) != 1 {
		t.Fatalf("calls = %d", len(m.calls))
	}
	if len(m.calls[0].history) != 1 {
		t.Errorf("prior history length = %d, want 1", len(m.calls[0].history))
	}
	if m.calls[0].message != "Why does it float?" {
		t.Errorf("message = %q", m.calls[0].message)
	}
}

func TestChatScreen_FailureKeepsUserMessage(t *testing.T) {
	m := &mockChatter{err: &lessonchat.ChatError{Err: errors.New("boom")}}
	s := New(m, testDesign())

	typeText(s, "Hello")
	_, cmd := s.Update(enter())
	s.Update(runReply(t, cmd))

	h := s.History()
	if len(h) != 2 || h[1].Role != lessonchat.RoleUser {
		t.Fatalf("history after failure = %v", h)
	}
	if !strings.Contains(s.View(100, 30), "could not answer") {
		t.Error("expected failure notice in view")
	}
}

func TestChatScreen_SendIgnoredWhileBusy(t *testing.T) {
	s := New(&mockChatter{reply: "ok"}, testDesign())

	typeText(s, "one")
	_, first := s.Update(enter())
	if first == nil {
		t.Fatal("expected command")
	}
	typeText(s, "two")
	_, second := s.Update(enter())
	if second != nil {
		t.Error("expected send to be ignored while a turn is in flight")
	}
	if len(s.History()) != 2 {
		t.Errorf("history length = %d, want 2", len(s.History()))
	}
}

func TestChatScreen_EmptyMessageIgnored(t *testing.T) {
	s := New(&mockChatter{}, testDesign())
	typeText(s, "   ")
	_, cmd := s.Update(enter())
	if cmd != nil {
		t.Error("expected no command for blank input")
	}
}

func TestChatScreen_TabCyclesPersona(t *testing.T) {
	m := &mockChatter{reply: "Wow!"}
	s := New(m, testDesign())

	s.Update(tab())
	if s.Persona() != persona.Enthusiastic {
		t.Fatalf("persona = %s, want Enthusiastic", s.Persona())
	}
	if !strings.Contains(s.Status(), "Enthusiastic Mentor") {
		t.Errorf("status = %q", s.Status())
	}

	typeText(s, "Why does this matter?")
	_, cmd := s.Update(enter())
	runReply(t, cmd)
	if m.calls[0].persona != persona.Enthusiastic {
		t.Errorf("chat used persona %s", m.calls[0].persona)
	}

	s.Update(tab())
	s.Update(tab())
	if s.Persona() != persona.Socratic {
		t.Errorf("persona = %s, want Socratic after full cycle", s.Persona())
	}
}

func TestChatScreen_WithOrchestrator(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: []byte("Great question!")})
	s := New(lessonchat.New(mock, nil, lessonchat.DefaultConfig()), testDesign())

	typeText(s, "Why does this matter?")
	_, cmd := s.Update(enter())
	s.Update(runReply(t, cmd))

	h := s.History()
	if h[len(h)-1].Content != "Great question!" {
		t.Errorf("last message = %q", h[len(h)-1].Content)
	}
	if !strings.Contains(mock.Calls[0].System, testDesign().LessonContext()) {
		t.Error("system instruction missing lesson context")
	}
}

func TestChatScreen_View(t *testing.T) {
	s := New(&mockChatter{}, testDesign())
	view := s.View(100, 30)
	for _, want := range []string{"Socratic Guide", "Ocean Engineer"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
