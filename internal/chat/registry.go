package chat

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/catnip/internal/constants"
)

// ErrStreamActive is returned when a stream is already registered for a
// conversation. At most one stream may feed a conversation at a time.
var ErrStreamActive = errors.New("stream already active for conversation")

// stream is one registered inbound fragment channel. started flips when the
// first fragment arrives; from then on the conversation's trailing assistant
// message is the in-progress one this stream extends.
type stream struct {
	conversationID string
	ch             chan string
	started        bool
}

// Registry routes text fragments from in-flight model responses into
// conversation message buffers. Producers write into per-stream channels;
// the render loop drains them. The channels are the only cross-goroutine
// boundary in the document model.
type Registry struct {
	streams map[string]*stream
	order   []string // registration order, for deterministic drains
}

// NewRegistry creates an empty stream registry.
func NewRegistry() *Registry {
	return &Registry{streams: make(map[string]*stream)}
}

// Begin registers a fragment sink for a conversation. The producer writes
// UTF-8 text fragments and closes the channel on completion or error; the
// registry treats both terminations identically.
func (r *Registry) Begin(conversationID string) (chan<- string, error) {
	if _, ok := r.streams[conversationID]; ok {
		return nil, ErrStreamActive
	}
	s := &stream{
		conversationID: conversationID,
		ch:             make(chan string, constants.StreamBufferSize),
	}
	r.streams[conversationID] = s
	r.order = append(r.order, conversationID)
	return s.ch, nil
}

// Active reports whether a stream is registered for the conversation.
func (r *Registry) Active(conversationID string) bool {
	_, ok := r.streams[conversationID]
	return ok
}

// Count returns the number of registered streams.
func (r *Registry) Count() int {
	return len(r.streams)
}

// DrainPending consumes every fragment currently buffered on every
// registered stream without blocking, applies them to the owning
// conversations in arrival order, and deregisters streams whose channel is
// closed and empty. It returns the ids of conversations whose content
// changed, for dirty-marking the document cache.
//
// Fragments for a conversation that no longer exists are dropped.
func (r *Registry) DrainPending(conversations *List) []string {
	var mutated []string
	var finished []string

	for _, id := range r.order {
		s, ok := r.streams[id]
		if !ok {
			continue
		}
		conv := conversations.ByID(id)
		changed := false

	drain:
		for {
			select {
			case frag, open := <-s.ch:
				if !open {
					finished = append(finished, id)
					break drain
				}
				if conv == nil {
					// Conversation deleted mid-stream; keep
					// consuming so the producer can finish.
					continue
				}
				if s.started && len(conv.Messages) > 0 &&
					conv.Messages[len(conv.Messages)-1].Role == RoleAssistant {
					conv.Messages[len(conv.Messages)-1].Content += frag
				} else {
					// First fragment of this stream: never
					// touch a completed assistant message.
					conv.Messages = append(conv.Messages, Message{Role: RoleAssistant, Content: frag})
				}
				s.started = true
				conv.Streaming = true
				changed = true
			default:
				break drain
			}
		}

		if changed {
			lastIdx := len(conv.Messages) - 1
			conv.SetBlocks(lastIdx, ExtractBlocks(conv.Messages[lastIdx].Content))
			mutated = append(mutated, id)
		}
	}

	for _, id := range finished {
		if conv := conversations.ByID(id); conv != nil {
			conv.Streaming = false
			// Closure can change what the cache shows (loading
			// indicator, truncation exemption), so mark dirty.
			if !contains(mutated, id) {
				mutated = append(mutated, id)
			}
		} else {
			log.Debug().Str("conversation", id).Msg("stream closed for deleted conversation")
		}
		r.remove(id)
	}

	return mutated
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func (r *Registry) remove(conversationID string) {
	delete(r.streams, conversationID)
	for i, id := range r.order {
		if id == conversationID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}
