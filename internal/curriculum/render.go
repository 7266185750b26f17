package curriculum

import (
	"fmt"
	"strings"
	"unicode"
)

// Markdown renders the design as a Markdown document. The illustration is
// not embedded.
func (d *Design) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", d.Title)
	fmt.Fprintf(&b, "**Grade:** %s  \n**Your role:** %s\n\n", d.TargetGrade, d.NarrativeRole)
	fmt.Fprintf(&b, "%s\n\n", d.Overview)

	b.WriteString("## Modules\n\n")
	for _, m := range d.Modules {
		fmt.Fprintf(&b, "### %s: %s\n\n", m.Subject, m.Focus)
		for _, a := range m.Activities {
			fmt.Fprintf(&b, "- %s\n", a)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Joy Mechanism: %s\n\n%s\n\n*Learning outcome:* %s\n\n",
		d.JoyMechanism.Title, d.JoyMechanism.Description, d.JoyMechanism.LearningOutcome)

	fmt.Fprintf(&b, "## Final Showcase: %s\n\n%s\n\n", d.FinalShowcase.Format, d.FinalShowcase.Description)

	b.WriteString("## Growth Metrics\n\n| Competency | Emphasis | Observed through |\n|---|---|---|\n")
	for _, m := range d.Assessment {
		fmt.Fprintf(&b, "| %s | %d | %s |\n", m.Name, m.Value, m.Description)
	}

	return b.String()
}

// Outline renders the design as indented plain text for terminals that
// should not see Markdown syntax.
func (d *Design) Outline() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", d.Title)
	fmt.Fprintf(&b, "%s | %s\n\n", d.TargetGrade, d.NarrativeRole)
	fmt.Fprintf(&b, "%s\n\n", d.Overview)

	b.WriteString("Modules\n")
	for _, m := range d.Modules {
		fmt.Fprintf(&b, "  %s: %s\n", m.Subject, m.Focus)
		for _, a := range m.Activities {
			fmt.Fprintf(&b, "    - %s\n", a)
		}
	}

	fmt.Fprintf(&b, "\nJoy mechanism: %s\n  %s\n  Outcome: %s\n",
		d.JoyMechanism.Title, d.JoyMechanism.Description, d.JoyMechanism.LearningOutcome)
	fmt.Fprintf(&b, "\nFinal showcase: %s\n  %s\n", d.FinalShowcase.Format, d.FinalShowcase.Description)

	b.WriteString("\nGrowth metrics\n")
	for _, m := range d.Assessment {
		fmt.Fprintf(&b, "  %-24s %3d  %s\n", m.Name, m.Value, m.Description)
	}

	if d.HasImage() {
		b.WriteString("\nIllustration: attached\n")
	}
	return b.String()
}

// Slug returns a filesystem-friendly form of the title.
func (d *Design) Slug() string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(d.Title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "curriculum"
	}
	return s
}
