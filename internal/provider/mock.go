package provider

import "context"

// MockProvider is a test provider that streams predefined fragments.
type MockProvider struct {
	name      string
	fragments []string
	streamErr error
}

// NewMock creates a new mock provider that streams the given fragments.
func NewMock(name string, fragments ...string) *MockProvider {
	return &MockProvider{name: name, fragments: fragments}
}

// WithStreamError sets an error to return from Stream.
func (p *MockProvider) WithStreamError(err error) *MockProvider {
	p.streamErr = err
	return p
}

// Name returns the provider identifier.
func (p *MockProvider) Name() string {
	return p.name
}

// Models returns a single fake model.
func (p *MockProvider) Models() []string {
	return []string{"mock-1"}
}

// Stream returns the predefined fragments as individual chunks.
func (p *MockProvider) Stream(ctx context.Context, model string, messages []Message) (<-chan StreamChunk, error) {
	if p.streamErr != nil {
		return nil, p.streamErr
	}

	ch := make(chan StreamChunk, len(p.fragments)+1)
	go func() {
		defer close(ch)
		for _, f := range p.fragments {
			ch <- StreamChunk{Content: f}
		}
		ch <- StreamChunk{Done: true}
	}()

	return ch, nil
}
