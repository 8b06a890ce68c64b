// Package chat holds the conversation state machine: an append-only,
// persisted message history with a single in-flight send at a time.
package chat

import (
	"strings"

	"codemanager-ui/internal/history"
	"codemanager-ui/internal/model"
)

// DefaultGreeting opens every fresh conversation.
const DefaultGreeting = "Hello! I've analyzed your repository. Ask me anything about it."

// FallbackReply stands in for the assistant when the chat request fails,
// so every user turn still gets exactly one assistant turn.
const FallbackReply = "Sorry, something went wrong while answering. Please try again."

// Session owns the ordered message history. Every mutation is flushed to
// the store before returning.
type Session struct {
	store    history.Store
	messages []model.ChatMessage
	sending  bool
}

// NewSession rehydrates the conversation from the store. An empty or
// missing history yields the single default greeting.
func NewSession(store history.Store) (*Session, error) {
	messages, err := store.Load()
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		messages = []model.ChatMessage{{Text: DefaultGreeting, IsUser: false}}
		if err := store.Save(messages); err != nil {
			return nil, err
		}
	}
	return &Session{store: store, messages: messages}, nil
}

// Messages returns the history in append order.
func (s *Session) Messages() []model.ChatMessage {
	return s.messages
}

// Sending reports whether a send is in flight.
func (s *Session) Sending() bool {
	return s.sending
}

// Begin appends the user's turn and marks a send in flight. It returns
// the history as it stood before the new turn, which is what the chat
// request carries. Blank input or an in-flight send is a no-op and
// returns ok = false.
func (s *Session) Begin(text string) (prior []model.ChatMessage, ok bool) {
	if strings.TrimSpace(text) == "" || s.sending {
		return nil, false
	}

	prior = append([]model.ChatMessage(nil), s.messages...)
	s.messages = append(s.messages, model.ChatMessage{Text: text, IsUser: true})
	s.sending = true
	s.persist()
	return prior, true
}

// Complete appends the assistant's reply and ends the in-flight send.
func (s *Session) Complete(reply string) {
	s.messages = append(s.messages, model.ChatMessage{Text: reply, IsUser: false})
	s.sending = false
	s.persist()
}

// Fail appends the fixed fallback reply and ends the in-flight send.
func (s *Session) Fail() {
	s.Complete(FallbackReply)
}

// Clear resets the history to the single default greeting and overwrites
// storage. Callers are expected to confirm with the user first.
func (s *Session) Clear() {
	s.messages = []model.ChatMessage{{Text: DefaultGreeting, IsUser: false}}
	s.sending = false
	s.persist()
}

// persist flushes the history. A write failure loses durability, not the
// on-screen conversation, so it is deliberately not propagated.
func (s *Session) persist() {
	_ = s.store.Save(s.messages)
}
