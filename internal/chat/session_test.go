package chat

import (
	"testing"

	"codemanager-ui/internal/history"
	"codemanager-ui/internal/model"
)

func newTestSession(t *testing.T, store *history.MemoryStore) *Session {
	t.Helper()
	s, err := NewSession(store)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return s
}

func TestNewSession_EmptyStoreGetsGreeting(t *testing.T) {
	store := &history.MemoryStore{}
	s := newTestSession(t, store)

	msgs := s.Messages()
	if len(msgs) != 1 {
		t.Fatalf("len = %d, want 1", len(msgs))
	}
	if msgs[0].Text != DefaultGreeting || msgs[0].IsUser {
		t.Errorf("greeting = %+v", msgs[0])
	}
	if len(store.Messages) != 1 {
		t.Errorf("greeting should be persisted, store has %d", len(store.Messages))
	}
}

func TestNewSession_Rehydrates(t *testing.T) {
	store := &history.MemoryStore{Messages: []model.ChatMessage{
		{Text: "Hello!", IsUser: false},
		{Text: "hi", IsUser: true},
		{Text: "hello again", IsUser: false},
	}}
	s := newTestSession(t, store)

	if len(s.Messages()) != 3 {
		t.Errorf("len = %d, want 3", len(s.Messages()))
	}
	if store.Saves != 0 {
		t.Errorf("rehydration should not rewrite storage, saves = %d", store.Saves)
	}
}

func TestBegin_AppendsAndReturnsPriorHistory(t *testing.T) {
	store := &history.MemoryStore{}
	s := newTestSession(t, store)

	prior, ok := s.Begin("what is this repo?")
	if !ok {
		t.Fatal("Begin should succeed")
	}
	if len(prior) != 1 || prior[0].Text != DefaultGreeting {
		t.Errorf("prior = %+v, want just the greeting", prior)
	}
	if len(s.Messages()) != 2 {
		t.Fatalf("len = %d, want 2", len(s.Messages()))
	}
	last := s.Messages()[1]
	if last.Text != "what is this repo?" || !last.IsUser {
		t.Errorf("last = %+v", last)
	}
	if !s.Sending() {
		t.Error("send should be in flight")
	}
	if len(store.Messages) != 2 {
		t.Errorf("mutation should be persisted, store has %d", len(store.Messages))
	}
}

func TestBegin_BlankIsNoop(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n"} {
		store := &history.MemoryStore{}
		s := newTestSession(t, store)
		before := len(s.Messages())

		if _, ok := s.Begin(text); ok {
			t.Errorf("Begin(%q) should be a no-op", text)
		}
		if len(s.Messages()) != before {
			t.Errorf("Begin(%q) changed message count", text)
		}
	}
}

func TestBegin_GuardsInFlightSend(t *testing.T) {
	s := newTestSession(t, &history.MemoryStore{})

	if _, ok := s.Begin("first"); !ok {
		t.Fatal("first Begin should succeed")
	}
	if _, ok := s.Begin("second"); ok {
		t.Error("second Begin should be rejected while sending")
	}
	if len(s.Messages()) != 2 {
		t.Errorf("len = %d, want 2", len(s.Messages()))
	}
}

func TestComplete_AppendsAssistantTurn(t *testing.T) {
	s := newTestSession(t, &history.MemoryStore{})
	s.Begin("hi")
	s.Complete("hello there")

	msgs := s.Messages()
	if len(msgs) != 3 {
		t.Fatalf("len = %d, want 3", len(msgs))
	}
	if msgs[2].Text != "hello there" || msgs[2].IsUser {
		t.Errorf("reply = %+v", msgs[2])
	}
	if s.Sending() {
		t.Error("send should no longer be in flight")
	}
}

func TestFail_AppendsExactlyOneFallback(t *testing.T) {
	s := newTestSession(t, &history.MemoryStore{})
	before := len(s.Messages())

	s.Begin("hi")
	s.Fail()

	msgs := s.Messages()
	if len(msgs) != before+2 {
		t.Fatalf("appended %d messages, want 2", len(msgs)-before)
	}
	if msgs[len(msgs)-1].Text != FallbackReply || msgs[len(msgs)-1].IsUser {
		t.Errorf("fallback = %+v", msgs[len(msgs)-1])
	}
	if s.Sending() {
		t.Error("send should no longer be in flight")
	}

	// The conversation stays usable after a failure.
	if _, ok := s.Begin("again"); !ok {
		t.Error("Begin should succeed after Fail")
	}
}

func TestClear_ResetsToGreeting(t *testing.T) {
	tests := []struct {
		name  string
		prior []model.ChatMessage
	}{
		{"empty history", nil},
		{"long history", manyMessages(200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &history.MemoryStore{Messages: tt.prior}
			s := newTestSession(t, store)

			s.Clear()

			if len(s.Messages()) != 1 {
				t.Fatalf("len = %d, want 1", len(s.Messages()))
			}
			if s.Messages()[0].Text != DefaultGreeting {
				t.Errorf("message = %+v", s.Messages()[0])
			}
			if len(store.Messages) != 1 || store.Messages[0].Text != DefaultGreeting {
				t.Errorf("persisted = %+v, want single greeting", store.Messages)
			}
		})
	}
}

func manyMessages(n int) []model.ChatMessage {
	msgs := make([]model.ChatMessage, n)
	for i := range msgs {
		msgs[i] = model.ChatMessage{Text: "turn", IsUser: i%2 == 0}
	}
	return msgs
}

func TestOrdering_StrictAppend(t *testing.T) {
	s := newTestSession(t, &history.MemoryStore{})

	s.Begin("one")
	s.Complete("reply one")
	s.Begin("two")
	s.Fail()

	want := []string{DefaultGreeting, "one", "reply one", "two", FallbackReply}
	msgs := s.Messages()
	if len(msgs) != len(want) {
		t.Fatalf("len = %d, want %d", len(msgs), len(want))
	}
	for i, text := range want {
		if msgs[i].Text != text {
			t.Errorf("msgs[%d].Text = %q, want %q", i, msgs[i].Text, text)
		}
	}
}
