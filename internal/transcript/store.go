// Package transcript persists the chat message history to a user-specific
// JSON file so that conversations survive daemon restarts.
package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/triplab-ai/tripd/internal/contracts"
	"github.com/triplab-ai/tripd/internal/domain"
	internalerrors "github.com/triplab-ai/tripd/internal/errors"
	"github.com/triplab-ai/tripd/internal/files"
	"github.com/triplab-ai/tripd/internal/perms"
)

// FileName is the transcript file name inside the user-specific data directory.
const FileName = "transcript.json"

// DefaultPath returns the default transcript file location,
// e.g. ~/.local/share/tripd/transcript.json.
func DefaultPath() (string, error) {
	dir, err := files.UserSpecificDataDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine data directory: %w", err)
	}

	return filepath.Join(dir, FileName), nil
}

// Store is a file-backed transcript store. All mutations are written through
// to disk before returning. NewStore should be used to create instances of
// Store. It is safe for concurrent use by multiple goroutines.
type Store struct {
	logger hclog.Logger
	path   string
	now    func() time.Time

	mu       sync.Mutex
	messages []domain.ChatMessage
}

var _ contracts.TranscriptStore = (*Store)(nil)

// NewStore creates a transcript store backed by the file at path,
// loading any previously persisted messages. A missing file is not an error.
func NewStore(logger hclog.Logger, path string) (*Store, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("transcript path cannot be empty")
	}

	s := &Store{
		logger: logger.Named("transcript"),
		path:   path,
		now:    time.Now,
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

// Append records a message and persists the transcript.
func (s *Store) Append(text string, sender domain.Sender) (domain.ChatMessage, error) {
	msg := domain.ChatMessage{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    sender,
		Timestamp: s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, msg)
	if err := s.save(); err != nil {
		s.messages = s.messages[:len(s.messages)-1]
		return domain.ChatMessage{}, fmt.Errorf("%w: %w", internalerrors.ErrTranscriptStore, err)
	}

	return msg, nil
}

// Messages returns a copy of all persisted messages in order.
func (s *Store) Messages() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.messages)
}

// Clear removes all persisted messages.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.messages
	s.messages = nil
	if err := s.save(); err != nil {
		s.messages = previous
		return fmt.Errorf("%w: %w", internalerrors.ErrTranscriptStore, err)
	}

	s.logger.Info("Transcript cleared", "path", s.path)

	return nil
}

// load reads the transcript file from disk. A missing file leaves the store empty.
func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("could not read transcript file '%s': %w", s.path, err)
	}

	var messages []domain.ChatMessage
	if err := json.Unmarshal(data, &messages); err != nil {
		return fmt.Errorf("transcript file '%s' could not be parsed: %w", s.path, err)
	}

	s.messages = messages
	s.logger.Debug("Transcript loaded", "path", s.path, "messages", len(messages))

	return nil
}

// save writes the transcript to disk, creating parent directories as needed.
// Callers must hold s.mu.
func (s *Store) save() error {
	if err := files.EnsureAtLeastRegularDir(filepath.Dir(s.path)); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s.messages, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode transcript: %w", err)
	}

	if err := os.WriteFile(s.path, data, perms.RegularFile); err != nil {
		return fmt.Errorf("could not write transcript file '%s': %w", s.path, err)
	}

	return nil
}
