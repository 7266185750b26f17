// Package lessonchat answers learner messages about a curriculum unit in the
// voice of a chosen persona.
package lessonchat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/edudesign/internal/llm"
	"github.com/abhisek/edudesign/internal/logger"
	"github.com/abhisek/edudesign/internal/persona"
)

// Role is the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a lesson conversation.
type Message struct {
	Role    Role   `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content"`
}

// ChatError reports a failed chat turn. No reply is produced.
type ChatError struct {
	Err error
}

func (e *ChatError) Error() string {
	return fmt.Sprintf("lesson chat failed: %v", e.Err)
}

func (e *ChatError) Unwrap() error { return e.Err }

// Config holds lesson chat settings.
type Config struct {
	// MaxHistoryTurns caps how many prior turns are replayed. Zero replays
	// the whole history.
	MaxHistoryTurns int

	// MaxTokens caps the reply. Zero uses the provider default.
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for lesson chat.
func DefaultConfig() Config {
	return Config{
		MaxHistoryTurns: 20,
		Temperature:     0.8,
	}
}

// Orchestrator builds one generation request per learner message.
type Orchestrator struct {
	provider llm.Provider
	log      *logger.Logger
	cfg      Config
}

// New creates an Orchestrator.
func New(provider llm.Provider, log *logger.Logger, cfg Config) *Orchestrator {
	if log == nil {
		log = logger.Nop()
	}
	return &Orchestrator{provider: provider, log: log, cfg: cfg}
}

// Chat returns the assistant's reply to newMessage, verbatim. history is
// read but never modified. Every call is a fresh request, so a persona
// change applies from the next turn on. Any returned error is a *ChatError.
func (o *Orchestrator) Chat(ctx context.Context, history []Message, newMessage, lessonContext string, p persona.Archetype) (string, error) {
	system, err := SystemInstruction(lessonContext, p)
	if err != nil {
		return "", &ChatError{Err: err}
	}

	req := llm.Request{
		System:      system,
		Messages:    replay(history, newMessage, o.cfg.MaxHistoryTurns),
		MaxTokens:   o.cfg.MaxTokens,
		Temperature: o.cfg.Temperature,
	}

	turnID := uuid.NewString()
	start := time.Now()
	resp, err := o.provider.Generate(llm.WithPurpose(ctx, llm.PurposeLessonChat), req)
	if err != nil {
		o.log.Warn("lesson chat turn failed", "turn_id", turnID, "persona", string(p), "error", err)
		return "", &ChatError{Err: err}
	}

	reply := resp.Text()
	if strings.TrimSpace(reply) == "" {
		return "", &ChatError{Err: &llm.ErrInvalidResponse{Err: llm.ErrEmptyReply}}
	}

	o.log.Debug("lesson chat turn",
		"turn_id", turnID,
		"persona", string(p),
		"replayed", len(req.Messages)-1,
		"latency", time.Since(start),
	)
	return reply, nil
}

// SystemInstruction composes the system prompt for lessonContext and p.
// It fails only for archetypes outside the persona enumeration.
func SystemInstruction(lessonContext string, p persona.Archetype) (string, error) {
	cfg, err := persona.Lookup(p)
	if err != nil {
		return "", err
	}

	return strings.Join([]string{
		"You are an AI learning assistant integrated into a lesson.",
		"The current lesson context is: " + lessonContext + ".",
		cfg.Instruction,
		"Target audience: Elementary school students.",
		"Keep your responses concise, engaging, and age-appropriate.",
	}, "\n"), nil
}
