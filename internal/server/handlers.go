package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/edudesign/internal/curriculum"
	"github.com/abhisek/edudesign/internal/lessonchat"
	"github.com/abhisek/edudesign/internal/logger"
	"github.com/abhisek/edudesign/internal/persona"
)

type handlers struct {
	designer Designer
	chatter  Chatter
	timeout  time.Duration
	log      *logger.Logger
}

type curriculumRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type chatRequest struct {
	History       []lessonchat.Message `json:"history" binding:"omitempty,dive"`
	Message       string               `json:"message" binding:"required"`
	LessonContext string               `json:"lessonContext"`
	Design        *curriculum.Design   `json:"design"`
	Persona       string               `json:"persona"`
}

type chatResponse struct {
	Reply   string            `json:"reply"`
	Persona persona.Archetype `json:"persona"`
}

func (h *handlers) healthCheck(c *gin.Context) {
	respondOK(c, gin.H{"status": "ok"})
}

func (h *handlers) listPersonas(c *gin.Context) {
	all := persona.All()
	out := make([]persona.Config, 0, len(all))
	for _, a := range all {
		cfg, err := persona.Lookup(a)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "internal", err)
			return
		}
		out = append(out, cfg)
	}
	respondOK(c, gin.H{"personas": out})
}

func (h *handlers) generateCurriculum(c *gin.Context) {
	var req curriculumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		respondError(c, http.StatusBadRequest, "invalid_request", errors.New("prompt must not be empty"))
		return
	}

	ctx, cancel := h.callContext(c)
	defer cancel()

	design, err := h.designer.Generate(ctx, prompt)
	if err != nil {
		h.log.Warn("curriculum generation failed", "request_id", c.GetString(requestIDKey), "error", err)
		respondError(c, http.StatusBadGateway, "generation_failed", err)
		return
	}
	respondOK(c, design)
}

func (h *handlers) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		respondError(c, http.StatusBadRequest, "invalid_request", errors.New("message must not be empty"))
		return
	}

	p := persona.Default
	if req.Persona != "" {
		var err error
		if p, err = persona.Parse(req.Persona); err != nil {
			respondError(c, http.StatusBadRequest, "invalid_persona", err)
			return
		}
	}

	lessonContext := req.LessonContext
	if lessonContext == "" && req.Design != nil {
		lessonContext = req.Design.LessonContext()
	}

	ctx, cancel := h.callContext(c)
	defer cancel()

	reply, err := h.chatter.Chat(ctx, req.History, message, lessonContext, p)
	if err != nil {
		h.log.Warn("lesson chat failed", "request_id", c.GetString(requestIDKey), "error", err)
		respondError(c, http.StatusBadGateway, "chat_failed", err)
		return
	}
	respondOK(c, chatResponse{Reply: reply, Persona: p})
}

func (h *handlers) callContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout > 0 {
		return context.WithTimeout(c.Request.Context(), h.timeout)
	}
	return context.WithCancel(c.Request.Context())
}
