// Package app wires the screens of the terminal UI into a Bubble Tea
// program.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edudesign/internal/curriculum"
	"github.com/abhisek/edudesign/internal/router"
	"github.com/abhisek/edudesign/internal/screen"
	"github.com/abhisek/edudesign/internal/screens/chat"
	"github.com/abhisek/edudesign/internal/screens/compose"
	"github.com/abhisek/edudesign/internal/screens/design"
	"github.com/abhisek/edudesign/internal/screens/splash"
	"github.com/abhisek/edudesign/internal/ui/layout"
)

// Options holds the dependencies injected into the TUI.
type Options struct {
	Designer compose.Designer
	Chatter  chat.Chatter

	// SaveDir receives exported units and illustrations.
	SaveDir string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel that opens on the splash screen and
// then settles on the compose screen as root.
func newAppModel(opts Options) AppModel {
	newChat := func(d *curriculum.Design) screen.Screen {
		return chat.New(opts.Chatter, d)
	}
	newDesign := func(d *curriculum.Design) screen.Screen {
		return design.New(d, newChat, opts.SaveDir)
	}
	newCompose := func() screen.Screen {
		return compose.New(opts.Designer, newDesign)
	}
	return AppModel{
		router: router.New(splash.New(newCompose)),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render composes header, active screen and footer.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		if hints := kp.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
