package provider

import (
	"context"
	"errors"
	"testing"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(NewMock("mock"))

	p, err := r.Get("mock")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if p.Name() != "mock" {
		t.Errorf("Expected name 'mock', got %q", p.Name())
	}

	if _, err := r.Get("missing"); !errors.Is(err, ErrProviderNotFound) {
		t.Errorf("Expected ErrProviderNotFound, got %v", err)
	}
}

func TestRegistry_EnabledModelsPreservesOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(NewMock("alpha"))
	r.Register(NewMock("beta"))

	refs := r.EnabledModels()
	if len(refs) != 2 {
		t.Fatalf("Expected 2 model refs, got %d", len(refs))
	}
	if refs[0].Provider != "alpha" || refs[1].Provider != "beta" {
		t.Errorf("Expected registration order, got %v", refs)
	}
	if refs[0].String() != "alpha:mock-1" {
		t.Errorf("Expected 'alpha:mock-1', got %q", refs[0].String())
	}
}

func TestMockProvider_StreamsFragmentsThenDone(t *testing.T) {
	p := NewMock("mock", "Hel", "lo")

	ch, err := p.Stream(context.Background(), "mock-1", []Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("Stream failed: %v", err)
	}

	var got string
	done := false
	for chunk := range ch {
		if chunk.Err != nil {
			t.Fatalf("Unexpected chunk error: %v", chunk.Err)
		}
		if chunk.Done {
			done = true
			continue
		}
		got += chunk.Content
	}

	if got != "Hello" {
		t.Errorf("Expected 'Hello', got %q", got)
	}
	if !done {
		t.Error("Expected a Done chunk before close")
	}
}

func TestMockProvider_StreamError(t *testing.T) {
	wantErr := errors.New("boom")
	p := NewMock("mock").WithStreamError(wantErr)

	if _, err := p.Stream(context.Background(), "mock-1", nil); !errors.Is(err, wantErr) {
		t.Errorf("Expected stream error, got %v", err)
	}
}
