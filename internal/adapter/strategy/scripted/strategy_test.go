package scripted

import (
	"context"
	"testing"
)

func TestReplaysScriptThenFallsBack(t *testing.T) {
	s := New([]string{"open fridge", "take apple"})
	ctx := context.Background()

	for _, want := range []string{"open fridge", "take apple", "look", "look"} {
		got, err := s.SelectAction(ctx, "")
		if err != nil {
			t.Fatalf("select: %v", err)
		}
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	}
}

func TestLoopingRestartsScript(t *testing.T) {
	s := NewLooping([]string{"look", "wait"})
	ctx := context.Background()

	for _, want := range []string{"look", "wait", "look", "wait", "look"} {
		got, err := s.SelectAction(ctx, "")
		if err != nil {
			t.Fatalf("select: %v", err)
		}
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	}
}

func TestEmptyScript(t *testing.T) {
	s := New(nil)
	got, err := s.SelectAction(context.Background(), "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if got != "look" {
		t.Fatalf("got %q, want look", got)
	}
}
