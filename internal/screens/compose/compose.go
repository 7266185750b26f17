// Package compose is the entry screen where the user describes a theme and
// starts curriculum generation.
package compose

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edudesign/internal/curriculum"
	"github.com/abhisek/edudesign/internal/router"
	"github.com/abhisek/edudesign/internal/screen"
	"github.com/abhisek/edudesign/internal/ui/components"
	"github.com/abhisek/edudesign/internal/ui/layout"
	"github.com/abhisek/edudesign/internal/ui/theme"
)

// Designer generates a curriculum design from a theme prompt.
type Designer interface {
	Generate(ctx context.Context, themePrompt string) (*curriculum.Design, error)
}

// DesignScreenFactory builds the screen that presents a finished design.
type DesignScreenFactory func(*curriculum.Design) screen.Screen

// designReadyMsg carries the outcome of a generation request.
type designReadyMsg struct {
	Design *curriculum.Design
	Err    error
}

type ComposeScreen struct {
	designer Designer
	next     DesignScreenFactory
	input    components.TextInput
	spinner  spinner.Model
	busy     bool
	notice   string
}

var _ screen.Screen = (*ComposeScreen)(nil)
var _ screen.KeyHintProvider = (*ComposeScreen)(nil)

// New creates the compose screen pre-filled with the sample theme.
func New(designer Designer, next DesignScreenFactory) *ComposeScreen {
	return &ComposeScreen{
		designer: designer,
		next:     next,
		input:    components.NewTextInput("Describe a theme for your unit...", curriculum.DefaultThemePrompt, 0),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent)),
		),
	}
}

func (s *ComposeScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ComposeScreen) Title() string {
	return "New Unit"
}

func (s *ComposeScreen) KeyHints() []layout.KeyHint {
	if s.busy {
		return []layout.KeyHint{
			{Key: "…", Description: "Designing your unit"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Generate"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Busy reports whether a generation is in flight.
func (s *ComposeScreen) Busy() bool {
	return s.busy
}

func (s *ComposeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case designReadyMsg:
		return s.handleDesignReady(msg)

	case spinner.TickMsg:
		if !s.busy {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		if msg.String() == "enter" {
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ComposeScreen) submit() tea.Cmd {
	if s.busy {
		return nil
	}

	prompt := s.input.Value()
	if prompt == "" {
		s.notice = "Describe a theme first."
		return nil
	}

	s.busy = true
	s.notice = ""
	s.input.SetLocked(true)

	designer := s.designer
	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		d, err := designer.Generate(context.Background(), prompt)
		return designReadyMsg{Design: d, Err: err}
	})
}

func (s *ComposeScreen) handleDesignReady(msg designReadyMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	s.input.SetLocked(false)

	if msg.Err != nil || msg.Design == nil {
		s.notice = "Sorry, the unit could not be designed. Please try again."
		if msg.Err != nil {
			s.notice += "\n" + msg.Err.Error()
		}
		return s, nil
	}

	s.notice = ""
	next := s.next(msg.Design)
	return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *ComposeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Design a curriculum unit"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(
		"Project-based · STEAM · phenomenon-based. Describe a theme, the learners and the experience you want."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(s.input.View(width - 4)))
	b.WriteString("\n\n")

	switch {
	case s.busy:
		b.WriteString("  " + s.spinner.View() + " " +
			theme.Hint.Render("Designing the unit and sketching an illustration..."))
	case s.notice != "":
		b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(
			theme.Notice.Width(width - 4).Render(s.notice)))
	default:
		b.WriteString("  " + theme.Hint.Render("Press Enter to generate. The sample theme is only a starting point."))
	}

	return lipgloss.NewStyle().Height(height).Render(b.String())
}
