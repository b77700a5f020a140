package api

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/triplab-ai/tripd/internal/assistant"
	"github.com/triplab-ai/tripd/internal/domain"
)

// fakeAssistant returns a scripted reply or error.
type fakeAssistant struct {
	reply domain.Reply
	err   error
}

func (a *fakeAssistant) Process(_ context.Context, _ string) (domain.Reply, error) {
	return a.reply, a.err
}

// memStore is an in-memory TranscriptStore for handler tests.
type memStore struct {
	messages  []domain.ChatMessage
	appendErr error
	clearErr  error
}

func (s *memStore) Append(text string, sender domain.Sender) (domain.ChatMessage, error) {
	if s.appendErr != nil {
		return domain.ChatMessage{}, s.appendErr
	}

	msg := domain.ChatMessage{
		ID:        fmt.Sprintf("msg-%d", len(s.messages)+1),
		Text:      text,
		Sender:    sender,
		Timestamp: time.Now(),
	}
	s.messages = append(s.messages, msg)

	return msg, nil
}

func (s *memStore) Messages() []domain.ChatMessage {
	return s.messages
}

func (s *memStore) Clear() error {
	if s.clearErr != nil {
		return s.clearErr
	}
	s.messages = nil
	return nil
}

func TestHandleChatMessage(t *testing.T) {
	t.Parallel()

	store := &memStore{}
	asst := &fakeAssistant{
		reply: domain.Reply{
			Text: "Here's the weather information for Paris:",
			Analysis: domain.Analysis{
				Intent:     domain.IntentWeather,
				Confidence: 0.8,
			},
		},
	}

	resp, err := handleChatMessage(context.Background(), asst, store, "What's the weather in Paris?")
	require.NoError(t, err)

	require.Equal(t, "Here's the weather information for Paris:", resp.Body.Reply.Text)
	require.Equal(t, string(domain.SenderAssistant), resp.Body.Reply.Sender)
	require.Equal(t, domain.IntentWeather, resp.Body.Analysis.Intent)

	// Both the user message and the reply are persisted, in order.
	require.Len(t, store.messages, 2)
	require.Equal(t, domain.SenderUser, store.messages[0].Sender)
	require.Equal(t, "What's the weather in Paris?", store.messages[0].Text)
	require.Equal(t, domain.SenderAssistant, store.messages[1].Sender)
}

func TestHandleChatMessage_AssistantFailureYieldsApology(t *testing.T) {
	t.Parallel()

	store := &memStore{}
	asst := &fakeAssistant{err: fmt.Errorf("simulated failure")}

	resp, err := handleChatMessage(context.Background(), asst, store, "hello")
	require.NoError(t, err)

	require.Equal(t, assistant.ApologyReply, resp.Body.Reply.Text)
	require.Len(t, store.messages, 2)
	require.Equal(t, assistant.ApologyReply, store.messages[1].Text)
}

func TestHandleChatMessage_StoreFailure(t *testing.T) {
	t.Parallel()

	store := &memStore{appendErr: fmt.Errorf("disk full")}

	_, err := handleChatMessage(context.Background(), &fakeAssistant{}, store, "hello")
	require.ErrorContains(t, err, "disk full")
}

func TestHandleTranscript(t *testing.T) {
	t.Parallel()

	store := &memStore{}
	_, err := store.Append("Hello", domain.SenderUser)
	require.NoError(t, err)
	_, err = store.Append("Hi!", domain.SenderAssistant)
	require.NoError(t, err)

	resp, err := handleTranscript(store)
	require.NoError(t, err)

	require.Len(t, resp.Body.Messages, 2)
	require.Equal(t, "Hello", resp.Body.Messages[0].Text)
	require.Equal(t, string(domain.SenderUser), resp.Body.Messages[0].Sender)
}

func TestHandleClearTranscript_ReseedsWelcome(t *testing.T) {
	t.Parallel()

	store := &memStore{}
	_, err := store.Append("Hello", domain.SenderUser)
	require.NoError(t, err)

	resp, err := handleClearTranscript(store)
	require.NoError(t, err)

	require.Len(t, resp.Body.Messages, 1)
	require.Equal(t, assistant.Welcome, resp.Body.Messages[0].Text)
	require.Equal(t, string(domain.SenderSystem), resp.Body.Messages[0].Sender)
}

func TestHandleClearTranscript_ClearFailure(t *testing.T) {
	t.Parallel()

	store := &memStore{clearErr: fmt.Errorf("disk full")}

	_, err := handleClearTranscript(store)
	require.ErrorContains(t, err, "disk full")
}
