package curriculum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/edudesign/internal/llm"
	"github.com/abhisek/edudesign/internal/logger"
)

// Config holds curriculum generation settings.
type Config struct {
	// MaxTokens caps the structured response. Zero uses the provider default.
	MaxTokens   int
	Temperature float64

	// AspectRatio of the illustration.
	AspectRatio string
}

// DefaultConfig returns sensible defaults for curriculum generation.
func DefaultConfig() Config {
	return Config{
		Temperature: 0.7,
		AspectRatio: "16:9",
	}
}

// Generator turns theme prompts into Designs.
type Generator struct {
	provider llm.Provider
	images   llm.ImageGenerator
	log      *logger.Logger
	cfg      Config
	validate *validator.Validate
}

// NewGenerator creates a Generator. images may be nil, in which case every
// design is returned without an illustration.
func NewGenerator(provider llm.Provider, images llm.ImageGenerator, log *logger.Logger, cfg Config) *Generator {
	if log == nil {
		log = logger.Nop()
	}
	return &Generator{
		provider: provider,
		images:   images,
		log:      log,
		cfg:      cfg,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Generate produces a Design for themePrompt. The structured step must
// succeed; the illustration step is best-effort and its failure only leaves
// ImageURL empty. Any returned error is a *GenerationError.
func (g *Generator) Generate(ctx context.Context, themePrompt string) (*Design, error) {
	design, err := g.design(ctx, themePrompt)
	if err != nil {
		return nil, &GenerationError{Err: err}
	}

	if err := g.illustrate(ctx, design); err != nil {
		g.log.Warn("illustration skipped", "title", design.Title, "error", err)
	}
	return design, nil
}

type designOutput struct {
	Title         string         `json:"title" validate:"required"`
	TargetGrade   string         `json:"targetGrade" validate:"required"`
	NarrativeRole string         `json:"narrativeRole" validate:"required"`
	Overview      string         `json:"overview" validate:"required"`
	Modules       []moduleOutput `json:"modules" validate:"required,min=1,dive"`
	JoyMechanism  joyOutput      `json:"joyMechanism" validate:"required"`
	FinalShowcase showcaseOutput `json:"finalShowcase" validate:"required"`
	Assessment    []metricOutput `json:"assessment" validate:"required,min=1,dive"`
}

type moduleOutput struct {
	Subject    string   `json:"subject" validate:"required"`
	Focus      string   `json:"focus" validate:"required"`
	Activities []string `json:"activities" validate:"required,min=1,dive,required"`
}

type joyOutput struct {
	Title           string `json:"title" validate:"required"`
	Description     string `json:"description" validate:"required"`
	LearningOutcome string `json:"learningOutcome" validate:"required"`
}

type showcaseOutput struct {
	Format      string `json:"format" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type metricOutput struct {
	Name        string   `json:"name" validate:"required"`
	Value       *float64 `json:"value" validate:"required,min=0,max=100"`
	Description string   `json:"description" validate:"required"`
}

func (g *Generator) design(ctx context.Context, themePrompt string) (*Design, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeCurriculum)

	req := llm.Request{
		System: designSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildDesignUserMessage(themePrompt)},
		},
		Schema:      CurriculumSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("curriculum request: %w", err)
	}

	return g.parse(resp.Content)
}

// parse decodes and validates a structured response.
func (g *Generator) parse(raw json.RawMessage) (*Design, error) {
	var out designOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse curriculum response: %w", err)
	}
	out.trim()

	if err := g.validate.Struct(out); err != nil {
		return nil, fmt.Errorf("validate curriculum response: %w", err)
	}

	return out.toDesign(), nil
}

func (o *designOutput) trim() {
	for _, s := range []*string{
		&o.Title, &o.TargetGrade, &o.NarrativeRole, &o.Overview,
		&o.JoyMechanism.Title, &o.JoyMechanism.Description, &o.JoyMechanism.LearningOutcome,
		&o.FinalShowcase.Format, &o.FinalShowcase.Description,
	} {
		*s = strings.TrimSpace(*s)
	}
	for i := range o.Modules {
		m := &o.Modules[i]
		m.Subject = strings.TrimSpace(m.Subject)
		m.Focus = strings.TrimSpace(m.Focus)
		for j := range m.Activities {
			m.Activities[j] = strings.TrimSpace(m.Activities[j])
		}
	}
	for i := range o.Assessment {
		a := &o.Assessment[i]
		a.Name = strings.TrimSpace(a.Name)
		a.Description = strings.TrimSpace(a.Description)
	}
}

func (o *designOutput) toDesign() *Design {
	d := &Design{
		Title:         o.Title,
		TargetGrade:   o.TargetGrade,
		NarrativeRole: o.NarrativeRole,
		Overview:      o.Overview,
		Modules:       make([]Module, len(o.Modules)),
		JoyMechanism: JoyMechanism{
			Title:           o.JoyMechanism.Title,
			Description:     o.JoyMechanism.Description,
			LearningOutcome: o.JoyMechanism.LearningOutcome,
		},
		FinalShowcase: Showcase{
			Format:      o.FinalShowcase.Format,
			Description: o.FinalShowcase.Description,
		},
		Assessment: make([]GrowthMetric, len(o.Assessment)),
	}
	for i, m := range o.Modules {
		d.Modules[i] = Module{
			Subject:    m.Subject,
			Focus:      m.Focus,
			Activities: append([]string(nil), m.Activities...),
		}
	}
	for i, a := range o.Assessment {
		d.Assessment[i] = GrowthMetric{
			Name:        a.Name,
			Value:       int(math.Round(*a.Value)),
			Description: a.Description,
		}
	}
	return d
}

// illustrate attaches an illustration to d. Failures come back as
// *ImageError and leave d unchanged.
func (g *Generator) illustrate(ctx context.Context, d *Design) error {
	if g.images == nil {
		return &ImageError{Err: errors.New("no image generator configured")}
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeIllustration)
	img, err := g.images.GenerateImage(ctx, llm.ImageRequest{
		Prompt:      buildIllustrationPrompt(d.Title),
		AspectRatio: g.cfg.AspectRatio,
	})
	if err != nil {
		return &ImageError{Err: err}
	}
	if len(img.Data) == 0 {
		return &ImageError{Err: llm.ErrNoImageData}
	}

	d.ImageURL = EncodeImage(img.MIMEType, img.Data)
	return nil
}
