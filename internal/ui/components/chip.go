package components

import (
	"strings"

	"github.com/abhisek/edudesign/internal/persona"
	"github.com/abhisek/edudesign/internal/ui/theme"
)

// PersonaBar renders the persona choices with the active one highlighted.
type PersonaBar struct {
	Active persona.Archetype
}

// View renders one chip per persona in display order.
func (b PersonaBar) View() string {
	all := persona.All()
	chips := make([]string, 0, len(all))
	for _, a := range all {
		cfg := persona.MustLookup(a)
		label := cfg.Glyph + " " + cfg.Name
		if a == b.Active {
			chips = append(chips, theme.ChipActive.Render(label))
		} else {
			chips = append(chips, theme.ChipInactive.Render(label))
		}
	}
	return strings.Join(chips, " ")
}
