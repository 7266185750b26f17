package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/edudesign/internal/ui/theme"
)

// MetricBar displays a 0-100 growth metric as a horizontal bar.
type MetricBar struct {
	Label string
	Value int
	Width int
}

// NewMetricBar creates a metric bar. value is clamped to [0,100].
func NewMetricBar(label string, value, width int) MetricBar {
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	return MetricBar{Label: label, Value: value, Width: width}
}

// View renders the bar as "label  ████░░░░  72".
func (p MetricBar) View() string {
	labelWidth := p.Width / 3
	if labelWidth < 12 {
		labelWidth = 12
	}
	label := lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(labelWidth).
		MaxHeight(1).
		Render(p.Label)

	barWidth := p.Width - labelWidth - 6
	if barWidth < 4 {
		barWidth = 4
	}

	filled := barWidth * p.Value / 100
	empty := barWidth - filled

	return label +
		theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(" %3d", p.Value))
}
