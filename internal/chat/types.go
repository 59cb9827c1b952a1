// Package chat holds the conversation data model, the stream registry that
// routes incoming response fragments into message buffers, and the fenced
// code block extractor. It has no knowledge of rendering.
package chat

import (
	"fmt"

	"github.com/google/uuid"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in a conversation. Identity is its index within the
// conversation; content grows in place while a stream is active.
type Message struct {
	Role    Role
	Content string
}

// CodeBlock is a fenced code block extracted from a message. Derived data:
// recomputed from scratch whenever the owning message changes.
type CodeBlock struct {
	Language  string // trimmed tag after the opening fence, "" if absent
	Content   string // verbatim body, no fences
	StartLine int    // first body line within the message text, 0-based
	EndLine   int    // last body line, inclusive
}

// Conversation is a single chat session.
type Conversation struct {
	ID        string
	Title     string
	Model     string
	Messages  []Message
	Streaming bool

	// blocks holds extracted code blocks per message index. Replaced
	// wholesale on every re-extraction, never merged.
	blocks map[int][]CodeBlock
}

// NewConversation creates an empty conversation using the given model.
func NewConversation(title, model string) *Conversation {
	return &Conversation{
		ID:     uuid.NewString(),
		Title:  title,
		Model:  model,
		blocks: make(map[int][]CodeBlock),
	}
}

// AddUserMessage appends a user message and re-extracts its code blocks.
// Returns the new message index.
func (c *Conversation) AddUserMessage(content string) int {
	idx := len(c.Messages)
	c.Messages = append(c.Messages, Message{Role: RoleUser, Content: content})
	c.SetBlocks(idx, ExtractBlocks(content))
	return idx
}

// SetBlocks replaces all extracted code blocks for a message index.
func (c *Conversation) SetBlocks(msgIdx int, blocks []CodeBlock) {
	if c.blocks == nil {
		c.blocks = make(map[int][]CodeBlock)
	}
	if len(blocks) == 0 {
		delete(c.blocks, msgIdx)
		return
	}
	c.blocks[msgIdx] = blocks
}

// Blocks returns the extracted code blocks for a message index in source order.
func (c *Conversation) Blocks(msgIdx int) []CodeBlock {
	return c.blocks[msgIdx]
}

// List owns the ordered set of conversations. It is only ever touched from
// the render loop goroutine.
type List struct {
	items []*Conversation
}

// NewList creates an empty conversation list.
func NewList() *List {
	return &List{}
}

// Add appends a conversation and returns its index.
func (l *List) Add(c *Conversation) int {
	l.items = append(l.items, c)
	return len(l.items) - 1
}

// ByID returns the conversation with the given id, or nil.
func (l *List) ByID(id string) *Conversation {
	for _, c := range l.items {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// At returns the conversation at index i, or nil if out of range.
func (l *List) At(i int) *Conversation {
	if i < 0 || i >= len(l.items) {
		return nil
	}
	return l.items[i]
}

// Remove deletes the conversation at index i. Out-of-range is a no-op.
func (l *List) Remove(i int) {
	if i < 0 || i >= len(l.items) {
		return
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
}

// Len returns the number of conversations.
func (l *List) Len() int {
	return len(l.items)
}

// All returns the backing slice for iteration. Callers must not retain it
// across mutations.
func (l *List) All() []*Conversation {
	return l.items
}

// NextTitle generates a default title for a new conversation.
func (l *List) NextTitle() string {
	return fmt.Sprintf("Chat %d", len(l.items)+1)
}
