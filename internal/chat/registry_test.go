package chat

import (
	"testing"
)

func newTestList(t *testing.T) (*List, *Conversation) {
	t.Helper()
	list := NewList()
	conv := NewConversation("Chat 1", "mock:mock-1")
	list.Add(conv)
	return list, conv
}

func TestRegistry_BeginRejectsSecondStream(t *testing.T) {
	r := NewRegistry()

	if _, err := r.Begin("conv-1"); err != nil {
		t.Fatalf("First Begin failed: %v", err)
	}
	if _, err := r.Begin("conv-1"); err != ErrStreamActive {
		t.Errorf("Expected ErrStreamActive, got %v", err)
	}
	if _, err := r.Begin("conv-2"); err != nil {
		t.Errorf("Different conversation should be allowed: %v", err)
	}
}

func TestRegistry_FragmentsAppendInOrder(t *testing.T) {
	list, conv := newTestList(t)
	conv.AddUserMessage("question")

	r := NewRegistry()
	sink, err := r.Begin(conv.ID)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	sink <- "Hel"
	sink <- "lo "
	sink <- "world"
	mutated := r.DrainPending(list)

	if len(mutated) != 1 || mutated[0] != conv.ID {
		t.Errorf("Expected mutated [%s], got %v", conv.ID, mutated)
	}
	if len(conv.Messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(conv.Messages))
	}
	last := conv.Messages[1]
	if last.Role != RoleAssistant {
		t.Errorf("Expected assistant message, got %s", last.Role)
	}
	if last.Content != "Hello world" {
		t.Errorf("Expected concatenated fragments, got %q", last.Content)
	}
	if !conv.Streaming {
		t.Error("Expected streaming flag set while stream is open")
	}
}

func TestRegistry_AppendsAcrossDrains(t *testing.T) {
	list, conv := newTestList(t)

	r := NewRegistry()
	sink, _ := r.Begin(conv.ID)

	sink <- "part one"
	r.DrainPending(list)
	sink <- " part two"
	r.DrainPending(list)

	if len(conv.Messages) != 1 {
		t.Fatalf("Expected a single growing message, got %d", len(conv.Messages))
	}
	if conv.Messages[0].Content != "part one part two" {
		t.Errorf("Expected growth in place, got %q", conv.Messages[0].Content)
	}
}

func TestRegistry_FirstFragmentNeverExtendsCompletedMessage(t *testing.T) {
	list, conv := newTestList(t)
	conv.Messages = append(conv.Messages, Message{Role: RoleAssistant, Content: "earlier answer"})

	r := NewRegistry()
	sink, _ := r.Begin(conv.ID)
	sink <- "new answer"
	r.DrainPending(list)

	if len(conv.Messages) != 2 {
		t.Fatalf("Expected a new message, got %d messages", len(conv.Messages))
	}
	if conv.Messages[0].Content != "earlier answer" {
		t.Errorf("Completed message was modified: %q", conv.Messages[0].Content)
	}
	if conv.Messages[1].Content != "new answer" {
		t.Errorf("Expected fresh assistant message, got %q", conv.Messages[1].Content)
	}
}

func TestRegistry_ClosedStreamDeregisters(t *testing.T) {
	list, conv := newTestList(t)

	r := NewRegistry()
	sink, _ := r.Begin(conv.ID)
	sink <- "done"
	close(sink)

	mutated := r.DrainPending(list)

	if r.Active(conv.ID) {
		t.Error("Expected stream deregistered after close")
	}
	if r.Count() != 0 {
		t.Errorf("Expected 0 streams, got %d", r.Count())
	}
	if conv.Streaming {
		t.Error("Expected streaming flag cleared on closure")
	}
	if len(mutated) != 1 {
		t.Errorf("Closure should report the conversation mutated, got %v", mutated)
	}

	// The conversation is free for a new stream.
	if _, err := r.Begin(conv.ID); err != nil {
		t.Errorf("Expected Begin to succeed after closure: %v", err)
	}
}

func TestRegistry_CloseWithoutFragments(t *testing.T) {
	list, conv := newTestList(t)

	r := NewRegistry()
	sink, _ := r.Begin(conv.ID)
	close(sink)

	r.DrainPending(list)

	if len(conv.Messages) != 0 {
		t.Errorf("Expected no message from an empty stream, got %d", len(conv.Messages))
	}
	if r.Active(conv.ID) {
		t.Error("Expected empty stream deregistered")
	}
}

func TestRegistry_DeletedConversationDropsFragments(t *testing.T) {
	list := NewList()

	r := NewRegistry()
	sink, _ := r.Begin("gone")
	sink <- "orphan fragment"
	close(sink)

	mutated := r.DrainPending(list)

	if len(mutated) != 0 {
		t.Errorf("Expected no mutations for deleted conversation, got %v", mutated)
	}
	if r.Active("gone") {
		t.Error("Expected orphan stream deregistered")
	}
}

func TestRegistry_MultipleStreamsIndependent(t *testing.T) {
	list := NewList()
	a := NewConversation("A", "mock:mock-1")
	b := NewConversation("B", "mock:mock-1")
	list.Add(a)
	list.Add(b)

	r := NewRegistry()
	sinkA, _ := r.Begin(a.ID)
	sinkB, _ := r.Begin(b.ID)

	sinkA <- "alpha"
	sinkB <- "beta"
	r.DrainPending(list)

	if a.Messages[0].Content != "alpha" {
		t.Errorf("Conversation A got %q", a.Messages[0].Content)
	}
	if b.Messages[0].Content != "beta" {
		t.Errorf("Conversation B got %q", b.Messages[0].Content)
	}
}

func TestRegistry_DrainReextractsBlocks(t *testing.T) {
	list, conv := newTestList(t)

	r := NewRegistry()
	sink, _ := r.Begin(conv.ID)
	sink <- "```py\nx = 1"
	r.DrainPending(list)

	blocks := conv.Blocks(0)
	if len(blocks) != 1 {
		t.Fatalf("Expected 1 open block, got %d", len(blocks))
	}
	if blocks[0].Content != "x = 1" {
		t.Errorf("Expected open-fence body, got %q", blocks[0].Content)
	}

	sink <- "\ny = 2\n```"
	r.DrainPending(list)

	blocks = conv.Blocks(0)
	if len(blocks) != 1 {
		t.Fatalf("Expected 1 block after close, got %d", len(blocks))
	}
	if blocks[0].Content != "x = 1\ny = 2" {
		t.Errorf("Expected re-extracted body, got %q", blocks[0].Content)
	}
}
