package services

import (
	"context"

	"github.com/lexiquest/lexiquest/pkg/chat"
)

// LLMService defines the interface for interacting with a text
// generation provider.
type LLMService interface {
	// InitModel prepares the provider's model for use on startup.
	InitModel(ctx context.Context, modelName string) error

	// Chat generates a completion for the given conversation.
	Chat(ctx context.Context, messages []chat.Message) (*chat.Response, error)
}
