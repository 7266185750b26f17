// Package persona defines the assistant archetypes a learner can chat with
// and the behavioral instruction each one contributes to the system prompt.
package persona

import (
	"fmt"
	"strings"
)

// Archetype identifies a persona.
type Archetype string

const (
	Socratic     Archetype = "Socratic"
	Enthusiastic Archetype = "Enthusiastic"
	Explorer     Archetype = "Explorer"
)

// Default is the persona a new conversation starts with.
const Default = Socratic

// Config is the display metadata and behavioral instruction of a persona.
type Config struct {
	ID          Archetype `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Icon        string    `json:"icon" yaml:"icon"`
	Glyph       string    `json:"glyph" yaml:"glyph"`
	Description string    `json:"description" yaml:"description"`
	Tagline     string    `json:"tagline" yaml:"tagline"`
	Instruction string    `json:"instruction" yaml:"instruction"`
}

// All returns every archetype in display order.
func All() []Archetype {
	return []Archetype{Socratic, Enthusiastic, Explorer}
}

// Lookup returns the configuration for a. It fails for values outside the
// enumeration.
func Lookup(a Archetype) (Config, error) {
	switch a {
	case Socratic:
		return Config{
			ID:          Socratic,
			Name:        "Socratic Guide",
			Icon:        "fa-brain",
			Glyph:       "🧠",
			Description: "Guides thinking through questions",
			Tagline:     "Never gives the answer away",
			Instruction: "You are a Socratic Guide. Never give direct answers. Instead, ask probing questions " +
				"that lead the student to discover the answer themselves. Be patient and intellectually challenging.",
		}, nil
	case Enthusiastic:
		return Config{
			ID:          Enthusiastic,
			Name:        "Enthusiastic Mentor",
			Icon:        "fa-fire-alt",
			Glyph:       "🔥",
			Description: "Full of energy and encouragement",
			Tagline:     "Celebrates every small idea",
			Instruction: "You are an Enthusiastic Mentor. Be incredibly positive, energetic, and full of praise! " +
				"Use lots of exclamation marks, emojis, and celebrate every small idea the student has.",
		}, nil
	case Explorer:
		return Config{
			ID:          Explorer,
			Name:        "Curious Explorer",
			Icon:        "fa-compass",
			Glyph:       "🧭",
			Description: "Explores the world together",
			Tagline:     "A fellow learner, just as amazed",
			Instruction: "You are a Curious Explorer. Act as a fellow learner who is just as amazed by the world " +
				"as the student. Use phrases like 'I wonder...', 'What if...', and 'Let's imagine...'. " +
				"Be an equal partner in discovery.",
		}, nil
	}
	return Config{}, fmt.Errorf("unknown persona %q", string(a))
}

// MustLookup is Lookup for archetypes known to be valid, such as those
// returned by All.
func MustLookup(a Archetype) Config {
	c, err := Lookup(a)
	if err != nil {
		panic(err)
	}
	return c
}

// Parse resolves s case-insensitively against archetype IDs and display
// names ("explorer", "Curious Explorer").
func Parse(s string) (Archetype, error) {
	s = strings.TrimSpace(s)
	for _, a := range All() {
		c := MustLookup(a)
		if strings.EqualFold(s, string(a)) || strings.EqualFold(s, c.Name) {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown persona %q (want one of %s)", s, strings.Join(names(), ", "))
}

// Next returns the archetype after a in display order, wrapping around.
func Next(a Archetype) Archetype {
	all := All()
	for i, v := range all {
		if v == a {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func names() []string {
	out := make([]string, 0, len(All()))
	for _, a := range All() {
		out = append(out, strings.ToLower(string(a)))
	}
	return out
}
