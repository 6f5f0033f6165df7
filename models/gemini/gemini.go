package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/Desarso/hapticvision/models"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// Default model tiers for each mode.
const (
	DefaultChatModel = "gemini-2.5-flash-lite"
	DefaultToolModel = "gemini-2.5-flash"
)

// ErrMissingAPIKey is returned when a client is built without a key, so the
// process fails at start-up instead of on the first provider call.
var ErrMissingAPIKey = errors.New("gemini: API key is not configured (set GOOGLE_API_KEY)")

// ContentGenerator is the part of *genai.Models the adapters need. Tests
// substitute a stub.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// NewClient creates the process-wide Gemini API client.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return client, nil
}

// ChatModel answers a prompt with free text.
type ChatModel struct {
	Generator ContentGenerator
	Model     string
}

// Complete sends the messages and returns the text of the first candidate.
// System messages become the system instruction; the rest are sent as
// contents in order.
func (m *ChatModel) Complete(ctx context.Context, messages []models.Message) (string, error) {
	var system []string
	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case models.RoleSystem:
			system = append(system, msg.Content)
		case models.RoleUser:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		}
	}

	config := &genai.GenerateContentConfig{}
	if len(system) > 0 {
		config.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n"), genai.RoleUser)
	}

	resp, err := m.Generator.GenerateContent(ctx, modelOrDefault(m.Model, DefaultChatModel), contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini chat request failed: %w", err)
	}
	return ResponseText(resp), nil
}

// ToolModel asks the model to pick one of a fixed set of functions.
type ToolModel struct {
	Generator ContentGenerator
	Model     string
	Tools     []*genai.Tool
	Logger    zerolog.Logger
}

// NewToolModel converts the catalog once; the result is read-only and safe
// to share between requests.
func NewToolModel(generator ContentGenerator, model string, tools []models.FunctionDeclaration, logger zerolog.Logger) *ToolModel {
	return &ToolModel{
		Generator: generator,
		Model:     model,
		Tools:     NewToolSpec(tools),
		Logger:    logger,
	}
}

// Call sends the instruction and the message as two user contents with the
// tool catalog attached, and returns the function call found in the first
// part of the first candidate. A nil result means no action.
func (m *ToolModel) Call(ctx context.Context, instruction, message string) (*models.ToolCallResult, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(instruction, genai.RoleUser),
		genai.NewContentFromText(message, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{Tools: m.Tools}

	resp, err := m.Generator.GenerateContent(ctx, modelOrDefault(m.Model, DefaultToolModel), contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini tool request failed: %w", err)
	}

	if m.Logger.Debug().Enabled() {
		if raw, err := json.Marshal(resp); err == nil {
			m.Logger.Debug().RawJSON("response", raw).Msg("LLM tool response")
		}
	}

	return ExtractToolCall(resp), nil
}

// ExtractToolCall inspects only the first part of the first candidate. Any
// later parts, including further function calls, are ignored.
func ExtractToolCall(resp *genai.GenerateContentResponse) *models.ToolCallResult {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil
	}
	part := candidate.Content.Parts[0]
	if part == nil || part.FunctionCall == nil {
		return nil
	}

	args := make(map[string]interface{}, len(part.FunctionCall.Args))
	maps.Copy(args, part.FunctionCall.Args)
	return &models.ToolCallResult{
		Name: part.FunctionCall.Name,
		Args: args,
	}
}

// ResponseText concatenates the text parts of the first candidate, skipping
// thought summaries. It returns "" when the response has no text.
func ResponseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}

func modelOrDefault(model, fallback string) string {
	if model == "" {
		return fallback
	}
	return model
}
