package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abhisek/edudesign/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as an event.
// It forwards image generation when the wrapped provider supports it.
type LoggingProvider struct {
	inner     Provider
	eventRepo store.EventRepo
}

var _ imageCapable = (*LoggingProvider)(nil)

// WithLogging wraps a Provider with event logging. A nil repo disables
// recording but keeps the decorator transparent.
func WithLogging(p Provider, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, eventRepo: repo}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.inner.ModelID(),
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.ResponseBody = string(resp.Content)
	}

	if err != nil {
		data.ErrorMessage = err.Error()
	}

	l.record(ctx, data)
	return resp, err
}

// SupportsImages reports whether the wrapped provider renders images.
func (l *LoggingProvider) SupportsImages() bool {
	_, ok := l.inner.(ImageGenerator)
	return ok
}

func (l *LoggingProvider) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	ig, ok := l.inner.(ImageGenerator)
	if !ok {
		return nil, &ErrProviderUnavailable{Err: fmt.Errorf("%s cannot generate images", l.inner.ModelID())}
	}

	start := time.Now()
	resp, err := ig.GenerateImage(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.inner.ModelID(),
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: fmt.Sprintf("[image aspect=%s]\n%s\n", req.AspectRatio, req.Prompt),
	}
	if resp != nil {
		data.Model = resp.Model
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		// Image bytes are not stored; the log records only their shape.
		data.ResponseBody = fmt.Sprintf("[%s, %d bytes]", resp.MIMEType, len(resp.Data))
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	l.record(ctx, data)
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// record logs the event but never fails the request if logging fails.
func (l *LoggingProvider) record(ctx context.Context, data store.LLMRequestEventData) {
	if l.eventRepo == nil {
		return
	}
	if logErr := l.eventRepo.AppendLLMRequest(ctx, data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log LLM request event: %v\n", logErr)
	}
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		b.WriteString(fmt.Sprintf("[%s]\n", m.Role))
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		schemaDef, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			b.WriteString(fmt.Sprintf("[schema: %s]\n", req.Schema.Name))
			b.WriteString(string(schemaDef))
			b.WriteString("\n")
		}
	}

	return b.String()
}
