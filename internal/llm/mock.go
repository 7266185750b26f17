package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned text response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockImageResponse is a canned image response for the MockProvider.
type MockImageResponse struct {
	Data     []byte
	MIMEType string
	Err      error
}

// MockProvider is a deterministic Provider and ImageGenerator for testing.
// It returns canned responses in FIFO order and records all requests.
type MockProvider struct {
	mu         sync.Mutex
	responses  []MockResponse
	images     []MockImageResponse
	Calls      []Request
	ImageCalls []ImageRequest
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate returns the next canned response or ErrProviderUnavailable if
// the queue is empty.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{Err: nil}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}

	if req.Schema != nil {
		if err := validateResponse(req.Schema, resp.Content); err != nil {
			return nil, err
		}
	}

	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// GenerateImage returns the next canned image or ErrProviderUnavailable if
// the image queue is empty.
func (m *MockProvider) GenerateImage(_ context.Context, req ImageRequest) (*ImageResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ImageCalls = append(m.ImageCalls, req)

	if len(m.images) == 0 {
		return nil, &ErrProviderUnavailable{Err: nil}
	}

	img := m.images[0]
	m.images = m.images[1:]

	if img.Err != nil {
		return nil, img.Err
	}
	if len(img.Data) == 0 {
		return nil, &ErrInvalidResponse{Err: ErrNoImageData}
	}

	mime := img.MIMEType
	if mime == "" {
		mime = "image/png"
	}
	return &ImageResponse{Data: img.Data, MIMEType: mime, Model: "mock-image"}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// AddImage appends a canned image response to the image queue.
func (m *MockProvider) AddImage(img MockImageResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.images = append(m.images, img)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// ImageCallCount returns the number of GenerateImage calls made.
func (m *MockProvider) ImageCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ImageCalls)
}
