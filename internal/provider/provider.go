// Package provider defines the streaming LLM provider interface and
// implementations. Providers only produce text fragments into a channel;
// they never touch document state.
package provider

import (
	"context"
	"errors"
)

// ErrProviderNotFound is returned when a requested provider doesn't exist.
var ErrProviderNotFound = errors.New("provider not found")

// ErrNoAPIKey is returned when a provider requires a key and none is
// configured or present in the environment.
var ErrNoAPIKey = errors.New("no API key configured")

// Message represents a chat message sent to a provider.
type Message struct {
	Role    string
	Content string
}

// Provider defines the interface for LLM providers.
type Provider interface {
	// Name returns the provider's identifier.
	Name() string

	// Models returns the model identifiers this provider serves.
	Models() []string

	// Stream sends messages and returns a channel of response chunks.
	// The channel is closed after the Done or Err chunk.
	Stream(ctx context.Context, model string, messages []Message) (<-chan StreamChunk, error)
}

// StreamChunk represents a chunk of streamed response.
type StreamChunk struct {
	Content string
	Done    bool
	Err     error
}

// Registry holds available providers.
type Registry struct {
	providers map[string]Provider
	order     []string
}

// NewRegistry creates a new provider registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a provider to the registry.
func (r *Registry) Register(p Provider) {
	if _, ok := r.providers[p.Name()]; !ok {
		r.order = append(r.order, p.Name())
	}
	r.providers[p.Name()] = p
}

// Get retrieves a provider by name.
func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, ErrProviderNotFound
	}
	return p, nil
}

// List returns all registered provider names in registration order.
func (r *Registry) List() []string {
	return append([]string(nil), r.order...)
}

// EnabledModels returns the flat (provider, model) list across all
// registered providers, in registration order.
func (r *Registry) EnabledModels() []ModelRef {
	var refs []ModelRef
	for _, name := range r.order {
		for _, m := range r.providers[name].Models() {
			refs = append(refs, ModelRef{Provider: name, Model: m})
		}
	}
	return refs
}

// ModelRef names one selectable model.
type ModelRef struct {
	Provider string
	Model    string
}

// String renders the ref in the "provider:model" form used by conversation
// records.
func (m ModelRef) String() string {
	return m.Provider + ":" + m.Model
}
