// Package splash shows the animated EduDesign banner before the compose
// screen.
package splash

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edudesign/internal/router"
	"github.com/abhisek/edudesign/internal/screen"
	"github.com/abhisek/edudesign/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	sparkleStart = 400 * time.Millisecond
	bannerStart  = 1000 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const emblemArt = `    ╭─────╮
    │ ◠‿◠ │
  ╭─┴─────┴─╮
  │ ▤  ✎  ◍ │
  ╰─────────╯`

var sparkleFrames = []string{"✦", "·"}

type tickMsg time.Time

// SplashScreen animates the emblem and banner. Any key, or the end of the
// animation, replaces it with the next screen.
type SplashScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*SplashScreen)(nil)

// New creates a SplashScreen that hands over to the screen built by next.
func New(next func() screen.Screen) *SplashScreen {
	return &SplashScreen{next: next}
}

func (s *SplashScreen) Title() string {
	return ""
}

func (s *SplashScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *SplashScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if s.transitioned {
			return s, nil
		}
		s.elapsed += tickInterval
		s.tickCount++
		if s.elapsed >= totalDur {
			s.elapsed = totalDur
			return s, s.transition()
		}
		return s, tick()

	case tea.KeyPressMsg:
		return s, s.transition()
	}

	return s, nil
}

func (s *SplashScreen) transition() tea.Cmd {
	if s.transitioned {
		return nil
	}
	s.transitioned = true
	next := s.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *SplashScreen) View(width, height int) string {
	rendered := lipgloss.NewStyle().Foreground(theme.Primary).Render(emblemArt)

	if s.elapsed >= sparkleStart {
		sparkle := sparkleFrames[s.tickCount%len(sparkleFrames)]
		a := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		b := lipgloss.NewStyle().Foreground(theme.Secondary).Render(sparkle)

		lines := strings.Split(rendered, "\n")
		lines[0] = a + "  " + lines[0] + "  " + b
		lines[len(lines)-1] = b + "  " + lines[len(lines)-1] + "  " + a
		rendered = strings.Join(lines, "\n")
	}

	sections := []string{rendered}

	if s.elapsed >= bannerStart {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Learning through play, designed in seconds."),
			"",
			theme.Hint.Render("press any key to start"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
