// Package curriculum generates cross-disciplinary curriculum units from a
// free-text theme and renders them for the terminal, CLI and API.
package curriculum

import "fmt"

// Module is one subject strand of a unit.
type Module struct {
	Subject    string   `json:"subject" yaml:"subject"`
	Focus      string   `json:"focus" yaml:"focus"`
	Activities []string `json:"activities" yaml:"activities"`
}

// GrowthMetric is a non-score competency indicator on a 0-100 scale.
type GrowthMetric struct {
	Name        string `json:"name" yaml:"name"`
	Value       int    `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
}

// JoyMechanism is the play element that carries the learning.
type JoyMechanism struct {
	Title           string `json:"title" yaml:"title"`
	Description     string `json:"description" yaml:"description"`
	LearningOutcome string `json:"learningOutcome" yaml:"learningOutcome"`
}

// Showcase is the culminating presentation of the unit.
type Showcase struct {
	Format      string `json:"format" yaml:"format"`
	Description string `json:"description" yaml:"description"`
}

// Design is a complete curriculum unit.
type Design struct {
	Title         string         `json:"title" yaml:"title"`
	TargetGrade   string         `json:"targetGrade" yaml:"targetGrade"`
	NarrativeRole string         `json:"narrativeRole" yaml:"narrativeRole"`
	Overview      string         `json:"overview" yaml:"overview"`
	Modules       []Module       `json:"modules" yaml:"modules"`
	JoyMechanism  JoyMechanism   `json:"joyMechanism" yaml:"joyMechanism"`
	FinalShowcase Showcase       `json:"finalShowcase" yaml:"finalShowcase"`
	Assessment    []GrowthMetric `json:"assessment" yaml:"assessment"`

	// ImageURL is a data URI of the illustration, empty when none was made.
	ImageURL string `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
}

// LessonContext summarizes the design for the lesson chat system prompt.
func (d *Design) LessonContext() string {
	return fmt.Sprintf("Lesson: %s. Overview: %s. Role: %s. Joy Mechanism: %s",
		d.Title, d.Overview, d.NarrativeRole, d.JoyMechanism.Description)
}

// Greeting is the assistant's opening line shown when chat opens.
func (d *Design) Greeting() string {
	return fmt.Sprintf("Hi! I'm your %s. What would you like to discuss about the \"%s\" project?",
		d.NarrativeRole, d.Title)
}

// HasImage reports whether an illustration is attached.
func (d *Design) HasImage() bool {
	return d.ImageURL != ""
}

// DefaultThemePrompt pre-fills the compose screen.
const DefaultThemePrompt = "Design a 4-week cross-disciplinary unit for 4th graders on building a " +
	"self-sustaining community that floats on the sea. Combine science (buoyancy, water " +
	"cycles), math (area and budgets), art (architecture models) and social studies " +
	"(community rules), with play at the center and no test scores."
