package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/lexiquest/lexiquest/pkg/chat"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiService implements LLMService for Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
	client    *genai.Client
	logger    *slog.Logger
}

func NewGeminiService(apiKey string, modelName string, logger *slog.Logger) *GeminiService {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiService{
		apiKey:    apiKey,
		modelName: modelName,
		logger:    logger,
	}
}

// InitModel creates the underlying API client. Gemini has no warmup
// step, so a successful client construction is enough.
func (g *GeminiService) InitModel(ctx context.Context, modelName string) error {
	if modelName != "" {
		g.modelName = modelName
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return fmt.Errorf("failed to create gemini client: %w", err)
	}
	g.client = client
	return nil
}

// Chat generates a completion using Gemini. System messages become
// the model's system instruction; prior turns become chat history.
func (g *GeminiService) Chat(ctx context.Context, messages []chat.Message) (*chat.Response, error) {
	if g.client == nil {
		return nil, fmt.Errorf("gemini client not initialized")
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("no messages to send")
	}

	model := g.client.GenerativeModel(g.modelName)

	system, conversation := splitMessages(messages)
	if system != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
	}
	if len(conversation) == 0 {
		return nil, fmt.Errorf("no user messages to send")
	}

	cs := model.StartChat()
	for _, msg := range conversation[:len(conversation)-1] {
		role := "user"
		if msg.Role == chat.RoleAssistant {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(conversation[len(conversation)-1].Content))
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return nil, fmt.Errorf("gemini returned no text content")
	}

	return &chat.Response{
		Message: sb.String(),
		Model:   g.modelName,
	}, nil
}

// splitMessages combines system messages into one instruction and
// returns the remaining conversation turns.
func splitMessages(messages []chat.Message) (string, []chat.Message) {
	var systemParts []string
	var conversation []chat.Message
	for _, msg := range messages {
		if msg.Role == chat.RoleSystem {
			systemParts = append(systemParts, msg.Content)
		} else {
			conversation = append(conversation, msg)
		}
	}
	return strings.Join(systemParts, "\n\n"), conversation
}
