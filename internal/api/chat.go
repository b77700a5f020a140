package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/triplab-ai/tripd/internal/assistant"
	"github.com/triplab-ai/tripd/internal/contracts"
	"github.com/triplab-ai/tripd/internal/domain"
)

// ChatRequest represents the incoming API request for processing one chat message.
type ChatRequest struct {
	Body struct {
		Message string `doc:"User message to process" example:"What's the weather like in Paris next week?" json:"message" minLength:"1"`
	}
}

// ChatMessage represents one transcript entry exposed over the API.
type ChatMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatResponse represents the wrapped API response for a processed chat message.
type ChatResponse struct {
	Body struct {
		Reply    ChatMessage     `doc:"Composed assistant reply"       json:"reply"`
		Analysis domain.Analysis `doc:"Intent analysis of the message" json:"analysis"`
	}
}

// TranscriptResponse represents the wrapped API response for the persisted transcript.
type TranscriptResponse struct {
	Body struct {
		Messages []ChatMessage `doc:"All persisted messages in order" json:"messages"`
	}
}

// ClearTranscriptResponse represents the wrapped API response for clearing the transcript.
// The transcript is re-seeded with the welcome message.
type ClearTranscriptResponse struct {
	Body struct {
		Messages []ChatMessage `doc:"Messages remaining after the clear" json:"messages"`
	}
}

// DomainChatMessage wraps domain.ChatMessage for conversion to ChatMessage via ToAPIType.
type DomainChatMessage domain.ChatMessage

var _ Convertible[ChatMessage] = (*DomainChatMessage)(nil)

// ToAPIType can be used to convert a wrapped domain type to an API-safe type.
func (d DomainChatMessage) ToAPIType() (ChatMessage, error) {
	return ChatMessage{
		ID:        d.ID,
		Text:      d.Text,
		Sender:    string(d.Sender),
		Timestamp: d.Timestamp,
	}, nil
}

// RegisterChatRoutes sets up chat and transcript API endpoint routes.
func RegisterChatRoutes(
	routerAPI huma.API,
	asst contracts.Assistant,
	store contracts.TranscriptStore,
	apiPathPrefix string,
) {
	chatAPI := huma.NewGroup(routerAPI, apiPathPrefix)
	tags := []string{"Chat"}

	huma.Register(
		chatAPI,
		huma.Operation{
			OperationID: "postChatMessage",
			Method:      http.MethodPost,
			Summary:     "Process a chat message",
			Tags:        tags,
		},
		func(ctx context.Context, input *ChatRequest) (*ChatResponse, error) {
			return handleChatMessage(ctx, asst, store, input.Body.Message)
		},
	)

	huma.Register(
		chatAPI,
		huma.Operation{
			OperationID: "getTranscript",
			Method:      http.MethodGet,
			Path:        "/transcript",
			Summary:     "Get the persisted chat transcript",
			Tags:        tags,
		},
		func(ctx context.Context, _ *struct{}) (*TranscriptResponse, error) {
			return handleTranscript(store)
		},
	)

	huma.Register(
		chatAPI,
		huma.Operation{
			OperationID: "clearTranscript",
			Method:      http.MethodDelete,
			Path:        "/transcript",
			Summary:     "Clear the persisted chat transcript",
			Tags:        tags,
		},
		func(ctx context.Context, _ *struct{}) (*ClearTranscriptResponse, error) {
			return handleClearTranscript(store)
		},
	)
}

// handleChatMessage runs one message through the assistant, persisting both
// the user message and the reply. An assistant failure still produces a reply
// carrying the fixed apology text.
func handleChatMessage(
	ctx context.Context,
	asst contracts.Assistant,
	store contracts.TranscriptStore,
	message string,
) (*ChatResponse, error) {
	if _, err := store.Append(message, domain.SenderUser); err != nil {
		return nil, err
	}

	reply, err := asst.Process(ctx, message)
	if err != nil {
		reply.Text = assistant.ApologyReply
	}

	replyMsg, err := store.Append(reply.Text, domain.SenderAssistant)
	if err != nil {
		return nil, err
	}

	data, err := DomainChatMessage(replyMsg).ToAPIType()
	if err != nil {
		return nil, err
	}

	resp := &ChatResponse{}
	resp.Body.Reply = data
	resp.Body.Analysis = reply.Analysis

	return resp, nil
}

// handleTranscript returns all persisted messages in insertion order.
func handleTranscript(store contracts.TranscriptStore) (*TranscriptResponse, error) {
	messages, err := transcriptMessages(store)
	if err != nil {
		return nil, err
	}

	resp := &TranscriptResponse{}
	resp.Body.Messages = messages

	return resp, nil
}

// handleClearTranscript clears the transcript and re-seeds the welcome message.
func handleClearTranscript(store contracts.TranscriptStore) (*ClearTranscriptResponse, error) {
	if err := store.Clear(); err != nil {
		return nil, err
	}

	if _, err := store.Append(assistant.Welcome, domain.SenderSystem); err != nil {
		return nil, err
	}

	messages, err := transcriptMessages(store)
	if err != nil {
		return nil, err
	}

	resp := &ClearTranscriptResponse{}
	resp.Body.Messages = messages

	return resp, nil
}

func transcriptMessages(store contracts.TranscriptStore) ([]ChatMessage, error) {
	messages := store.Messages()

	apiMessages := make([]ChatMessage, 0, len(messages))
	for _, msg := range messages {
		data, err := DomainChatMessage(msg).ToAPIType()
		if err != nil {
			return nil, err
		}
		apiMessages = append(apiMessages, data)
	}

	return apiMessages, nil
}
