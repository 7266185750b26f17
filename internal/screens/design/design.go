// Package design presents a generated curriculum unit.
package design

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edudesign/internal/curriculum"
	"github.com/abhisek/edudesign/internal/router"
	"github.com/abhisek/edudesign/internal/screen"
	"github.com/abhisek/edudesign/internal/ui/components"
	"github.com/abhisek/edudesign/internal/ui/layout"
	"github.com/abhisek/edudesign/internal/ui/theme"
)

// ChatScreenFactory builds the lesson chat screen for a design.
type ChatScreenFactory func(*curriculum.Design) screen.Screen

// savedMsg reports the outcome of an export.
type savedMsg struct {
	What string
	Path string
	Err  error
}

type DesignScreen struct {
	design   *curriculum.Design
	chat     ChatScreenFactory
	saveDir  string
	viewport viewport.Model
	width    int
	notice   string
}

var _ screen.Screen = (*DesignScreen)(nil)
var _ screen.KeyHintProvider = (*DesignScreen)(nil)

// New creates the design screen. Exports are written to saveDir.
func New(d *curriculum.Design, chat ChatScreenFactory, saveDir string) *DesignScreen {
	return &DesignScreen{
		design:   d,
		chat:     chat,
		saveDir:  saveDir,
		viewport: viewport.New(),
	}
}

func (s *DesignScreen) Init() tea.Cmd {
	return nil
}

func (s *DesignScreen) Title() string {
	return s.design.Title
}

func (s *DesignScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "C", Description: "Chat"},
		{Key: "M", Description: "Save Markdown"},
	}
	if s.design.HasImage() {
		hints = append(hints, layout.KeyHint{Key: "S", Description: "Save illustration"})
	}
	return append(hints,
		layout.KeyHint{Key: "N", Description: "New unit"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (s *DesignScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		if msg.Err != nil {
			s.notice = fmt.Sprintf("Could not save %s: %v", msg.What, msg.Err)
		} else {
			s.notice = fmt.Sprintf("Saved %s to %s", msg.What, msg.Path)
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "c", "C":
			next := s.chat(s.design)
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		case "s", "S":
			return s, s.saveImage()
		case "m", "M":
			return s, s.saveMarkdown()
		case "n", "N":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}

	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return s, cmd
}

func (s *DesignScreen) saveImage() tea.Cmd {
	if !s.design.HasImage() {
		s.notice = "This unit has no illustration."
		return nil
	}
	d, dir := s.design, s.saveDir
	return func() tea.Msg {
		path, err := d.WriteImage(filepath.Join(dir, d.Slug()))
		return savedMsg{What: "illustration", Path: path, Err: err}
	}
}

func (s *DesignScreen) saveMarkdown() tea.Cmd {
	d, dir := s.design, s.saveDir
	return func() tea.Msg {
		path := filepath.Join(dir, d.Slug()+".md")
		err := os.WriteFile(path, []byte(d.Markdown()), 0o644)
		return savedMsg{What: "unit", Path: path, Err: err}
	}
}

func (s *DesignScreen) View(width, height int) string {
	footer := ""
	if s.notice != "" {
		footer = "\n" + theme.Hint.Render("  "+s.notice)
	}

	if width != s.width {
		s.width = width
		s.viewport.SetContent(renderDesign(s.design, width-4))
	}
	s.viewport.SetWidth(width)
	s.viewport.SetHeight(height - lipgloss.Height(footer))

	return lipgloss.NewStyle().PaddingLeft(2).Render(s.viewport.View()) + footer
}

func renderDesign(d *curriculum.Design, width int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render(d.Title))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(
		fmt.Sprintf("%s  ·  You are the %s", d.TargetGrade, d.NarrativeRole)))
	b.WriteString("\n")

	if d.HasImage() {
		b.WriteString(theme.Subtitle.Width(width).Foreground(theme.Success).Render("Illustration ready (press S to save)"))
	} else {
		b.WriteString(theme.Subtitle.Width(width).Render("No illustration for this unit"))
	}
	b.WriteString("\n\n")

	b.WriteString(layout.Wrap(theme.Body.Render(d.Overview), width))
	b.WriteString("\n")

	b.WriteString(theme.Section.Render("Modules"))
	b.WriteString("\n")
	cardWidth := width
	if !layout.IsCompactWidth(width) {
		cardWidth = width/2 - 1
	}
	cards := make([]string, 0, len(d.Modules))
	for _, m := range d.Modules {
		cards = append(cards, renderModule(m, cardWidth))
	}
	b.WriteString(arrange(cards, width, cardWidth))
	b.WriteString("\n")

	b.WriteString(theme.Section.Render("Joy Mechanism: " + d.JoyMechanism.Title))
	b.WriteString("\n")
	b.WriteString(layout.Wrap(d.JoyMechanism.Description, width))
	b.WriteString("\n")
	b.WriteString(layout.Wrap(theme.Label.Render("Learning outcome: ")+d.JoyMechanism.LearningOutcome, width))
	b.WriteString("\n")

	b.WriteString(theme.Section.Render("Final Showcase: " + d.FinalShowcase.Format))
	b.WriteString("\n")
	b.WriteString(layout.Wrap(d.FinalShowcase.Description, width))
	b.WriteString("\n")

	b.WriteString(theme.Section.Render("Growth Metrics"))
	b.WriteString("\n")
	for _, m := range d.Assessment {
		b.WriteString(components.NewMetricBar(m.Name, m.Value, width).View())
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(layout.Wrap("  "+m.Description, width)))
		b.WriteString("\n")
	}

	return b.String()
}

func renderModule(m curriculum.Module, width int) string {
	var b strings.Builder
	b.WriteString(theme.Label.Render(m.Subject))
	b.WriteString("\n")
	b.WriteString(theme.Body.Bold(true).Render(m.Focus))
	for _, a := range m.Activities {
		b.WriteString("\n• " + a)
	}
	return theme.Card.Width(width).Render(b.String())
}

// arrange lays cards out two per row when they fit.
func arrange(cards []string, width, cardWidth int) string {
	if cardWidth >= width {
		return strings.Join(cards, "\n")
	}
	rows := make([]string, 0, (len(cards)+1)/2)
	for i := 0; i < len(cards); i += 2 {
		if i+1 < len(cards) {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i], " ", cards[i+1]))
		} else {
			rows = append(rows, cards[i])
		}
	}
	return strings.Join(rows, "\n")
}
