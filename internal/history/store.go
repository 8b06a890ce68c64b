// Package history persists the chat conversation between runs.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"codemanager-ui/internal/model"
)

// Store abstracts where the conversation lives so tests can substitute
// an in-memory implementation.
type Store interface {
	Load() ([]model.ChatMessage, error)
	Save(messages []model.ChatMessage) error
}

// FileStore keeps the conversation as a JSON file on disk.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the persisted conversation. A missing file yields an empty
// history and no error.
func (s *FileStore) Load() ([]model.ChatMessage, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	var messages []model.ChatMessage
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("parsing history file: %w", err)
	}
	return messages, nil
}

// Save overwrites the persisted conversation.
func (s *FileStore) Save(messages []model.ChatMessage) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	data, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}

	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("writing history file: %w", err)
	}
	return nil
}

// MemoryStore is a test double holding the conversation in memory.
type MemoryStore struct {
	Messages []model.ChatMessage
	LoadErr  error
	SaveErr  error
	Saves    int
}

func (s *MemoryStore) Load() ([]model.ChatMessage, error) {
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	return append([]model.ChatMessage(nil), s.Messages...), nil
}

func (s *MemoryStore) Save(messages []model.ChatMessage) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Messages = append([]model.ChatMessage(nil), messages...)
	s.Saves++
	return nil
}
