package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edudesign/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with EduDesign styling. It can be
// locked while a request is in flight so keystrokes are dropped.
type TextInput struct {
	Model  textinput.Model
	locked bool
}

// NewTextInput creates a focused input pre-filled with value.
func NewTextInput(placeholder, value string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = charLimit
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Focus()

	return TextInput{Model: ti}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. Key presses are ignored while locked.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok && t.locked {
		return t, nil
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the input inside a rounded box of the given width.
func (t TextInput) View(width int) string {
	inner := width - 4
	if inner < 10 {
		inner = 10
	}
	t.Model.SetWidth(inner - 2)

	border := theme.Primary
	if t.locked {
		border = theme.Border
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(inner).
		Render(t.Model.View())
}

// Value returns the input with surrounding whitespace removed.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}

// Reset clears the input.
func (t *TextInput) Reset() {
	t.Model.Reset()
}

// SetLocked toggles whether key presses are accepted.
func (t *TextInput) SetLocked(locked bool) {
	t.locked = locked
}

// Locked reports whether key presses are being dropped.
func (t TextInput) Locked() bool {
	return t.locked
}
