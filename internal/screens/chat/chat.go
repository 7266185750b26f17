// Package chat is the lesson chat screen: a transcript, a persona bar and
// a message input.
package chat

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edudesign/internal/curriculum"
	"github.com/abhisek/edudesign/internal/lessonchat"
	"github.com/abhisek/edudesign/internal/persona"
	"github.com/abhisek/edudesign/internal/screen"
	"github.com/abhisek/edudesign/internal/ui/components"
	"github.com/abhisek/edudesign/internal/ui/layout"
	"github.com/abhisek/edudesign/internal/ui/theme"
)

// Chatter answers one learner message.
type Chatter interface {
	Chat(ctx context.Context, history []lessonchat.Message, newMessage, lessonContext string, p persona.Archetype) (string, error)
}

// replyMsg carries the outcome of a chat turn.
type replyMsg struct {
	Reply string
	Err   error
}

type ChatScreen struct {
	chatter       Chatter
	design        *curriculum.Design
	lessonContext string
	history       []lessonchat.Message
	persona       persona.Archetype
	input         components.TextInput
	spinner       spinner.Model
	viewport      viewport.Model
	busy          bool
	notice        string
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)
var _ screen.StatusProvider = (*ChatScreen)(nil)

// New opens a conversation about d, starting with the design's greeting.
func New(chatter Chatter, d *curriculum.Design) *ChatScreen {
	return &ChatScreen{
		chatter:       chatter,
		design:        d,
		lessonContext: d.LessonContext(),
		history: []lessonchat.Message{
			{Role: lessonchat.RoleAssistant, Content: d.Greeting()},
		},
		persona: persona.Default,
		input:   components.NewTextInput("Ask about the project...", "", 0),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Ellipsis),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.TextDim)),
		),
		viewport: viewport.New(),
	}
}

func (s *ChatScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ChatScreen) Title() string {
	return "Lesson Chat"
}

func (s *ChatScreen) Status() string {
	cfg := persona.MustLookup(s.persona)
	return cfg.Glyph + " " + cfg.Name
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Tab", Description: "Switch persona"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

// History returns a copy of the transcript.
func (s *ChatScreen) History() []lessonchat.Message {
	return append([]lessonchat.Message(nil), s.history...)
}

// Persona returns the active persona.
func (s *ChatScreen) Persona() persona.Archetype {
	return s.persona
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		return s.handleReply(msg)

	case spinner.TickMsg:
		if !s.busy {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			return s, s.send()
		case "tab":
			s.persona = persona.Next(s.persona)
			s.notice = ""
			return s, nil
		case "up":
			s.viewport.ScrollUp(1)
			return s, nil
		case "down":
			s.viewport.ScrollDown(1)
			return s, nil
		case "pgup":
			s.viewport.PageUp()
			return s, nil
		case "pgdown":
			s.viewport.PageDown()
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// send appends the user message right away and asks for a reply with the
// persona active at the time of sending.
func (s *ChatScreen) send() tea.Cmd {
	if s.busy {
		return nil
	}
	text := s.input.Value()
	if text == "" {
		return nil
	}

	prior := s.History()
	s.history = append(s.history, lessonchat.Message{Role: lessonchat.RoleUser, Content: text})
	s.input.Reset()
	s.input.SetLocked(true)
	s.busy = true
	s.notice = ""
	s.viewport.GotoBottom()

	chatter, lessonContext, p := s.chatter, s.lessonContext, s.persona
	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		reply, err := chatter.Chat(context.Background(), prior, text, lessonContext, p)
		return replyMsg{Reply: reply, Err: err}
	})
}

func (s *ChatScreen) handleReply(msg replyMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	s.input.SetLocked(false)

	if msg.Err != nil {
		s.notice = "The assistant could not answer. Try sending your message again."
		return s, nil
	}

	s.history = append(s.history, lessonchat.Message{Role: lessonchat.RoleAssistant, Content: msg.Reply})
	s.viewport.GotoBottom()
	return s, nil
}

func (s *ChatScreen) View(width, height int) string {
	cfg := persona.MustLookup(s.persona)

	top := lipgloss.JoinVertical(lipgloss.Left,
		components.PersonaBar{Active: s.persona}.View(),
		theme.Hint.Render(cfg.Description+". "+cfg.Tagline+"."),
	)

	var status string
	switch {
	case s.busy:
		status = theme.Hint.Render(cfg.Name+" is thinking") + s.spinner.View()
	case s.notice != "":
		status = theme.Notice.Render(s.notice)
	}

	bottom := lipgloss.JoinVertical(lipgloss.Left, status, s.input.View(width-4))

	atBottom := s.viewport.AtBottom()
	s.viewport.SetWidth(width - 4)
	s.viewport.SetHeight(height - lipgloss.Height(top) - lipgloss.Height(bottom) - 1)
	s.viewport.SetContent(renderTranscript(s.history, width-4))
	if atBottom {
		s.viewport.GotoBottom()
	}

	return lipgloss.NewStyle().PaddingLeft(2).Render(
		lipgloss.JoinVertical(lipgloss.Left, top, s.viewport.View(), bottom))
}

func renderTranscript(history []lessonchat.Message, width int) string {
	bubbleWidth := width * 3 / 4
	var b strings.Builder
	for _, m := range history {
		b.WriteString("\n")
		if m.Role == lessonchat.RoleUser {
			bubble := theme.UserBubble.MaxWidth(bubbleWidth).Render(layout.Wrap(m.Content, bubbleWidth))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble))
		} else {
			b.WriteString(theme.AssistantBubble.MaxWidth(bubbleWidth).Render(layout.Wrap(m.Content, bubbleWidth)))
		}
		b.WriteString("\n")
	}
	return b.String()
}
