package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/Desarso/hapticvision/models"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

type stubGenerator struct {
	resp *genai.GenerateContentResponse
	err  error

	gotModel    string
	gotContents []*genai.Content
	gotConfig   *genai.GenerateContentConfig
}

func (s *stubGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	s.gotModel = model
	s.gotContents = contents
	s.gotConfig = config
	return s.resp, s.err
}

func responseWithParts(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Role: "model", Parts: parts}},
		},
	}
}

func functionCallPart(name string, args map[string]any) *genai.Part {
	return &genai.Part{FunctionCall: &genai.FunctionCall{Name: name, Args: args}}
}

func testTools() []models.FunctionDeclaration {
	return []models.FunctionDeclaration{
		{
			Name:        "navigate",
			Description: "go somewhere",
			Parameters: models.Parameters{
				Type: "object",
				Properties: map[string]models.Property{
					"screen": {Type: "string", Enum: []string{"camera", "home"}},
				},
				Required: []string{"screen"},
			},
		},
	}
}

func TestExtractToolCall_ZeroCandidates(t *testing.T) {
	if got := ExtractToolCall(&genai.GenerateContentResponse{}); got != nil {
		t.Errorf("expected nil result, got %+v", got)
	}
	if got := ExtractToolCall(nil); got != nil {
		t.Errorf("expected nil result for nil response, got %+v", got)
	}
}

func TestExtractToolCall_NoParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: &genai.Content{}}}}
	if got := ExtractToolCall(resp); got != nil {
		t.Errorf("expected nil result, got %+v", got)
	}
	resp = &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}
	if got := ExtractToolCall(resp); got != nil {
		t.Errorf("expected nil result for candidate without content, got %+v", got)
	}
}

func TestExtractToolCall_FirstPartTextIgnoresLaterCalls(t *testing.T) {
	resp := responseWithParts(
		&genai.Part{Text: "claro"},
		functionCallPart("navigate", map[string]any{"screen": "home"}),
	)
	if got := ExtractToolCall(resp); got != nil {
		t.Errorf("expected nil when first part is text, got %+v", got)
	}
}

func TestExtractToolCall_Navigate(t *testing.T) {
	resp := responseWithParts(functionCallPart("navigate", map[string]any{"screen": "camera"}))
	got := ExtractToolCall(resp)
	if got == nil {
		t.Fatal("expected a tool call, got nil")
	}
	if got.Name != "navigate" {
		t.Errorf("expected name navigate, got %q", got.Name)
	}
	if len(got.Args) != 1 || got.Args["screen"] != "camera" {
		t.Errorf("expected args {screen: camera}, got %v", got.Args)
	}
}

func TestExtractToolCall_SecondFunctionCallIgnored(t *testing.T) {
	resp := responseWithParts(
		functionCallPart("haptic_feedback", map[string]any{"emotion": "happy"}),
		functionCallPart("camera_control", map[string]any{"action": "switch_camera"}),
	)
	got := ExtractToolCall(resp)
	if got == nil {
		t.Fatal("expected a tool call, got nil")
	}
	if got.Name != "haptic_feedback" || got.Args["emotion"] != "happy" {
		t.Errorf("expected first call haptic_feedback{happy}, got %+v", got)
	}
}

func TestExtractToolCall_ArgsAreCopied(t *testing.T) {
	args := map[string]any{"screen": "camera"}
	got := ExtractToolCall(responseWithParts(functionCallPart("navigate", args)))
	args["screen"] = "home"
	if got.Args["screen"] != "camera" {
		t.Errorf("result args alias the provider map: got %v", got.Args["screen"])
	}
}

func TestExtractToolCall_NilArgs(t *testing.T) {
	got := ExtractToolCall(responseWithParts(functionCallPart("camera_control", nil)))
	if got == nil {
		t.Fatal("expected a tool call, got nil")
	}
	if got.Args == nil || len(got.Args) != 0 {
		t.Errorf("expected empty non-nil args, got %#v", got.Args)
	}
}

func TestToolModelCall_RequestShape(t *testing.T) {
	gen := &stubGenerator{resp: responseWithParts(functionCallPart("navigate", map[string]any{"screen": "camera"}))}
	m := NewToolModel(gen, "", testTools(), zerolog.Nop())

	got, err := m.Call(context.Background(), "instruction", "abre la cámara")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.Name != "navigate" {
		t.Fatalf("expected navigate call, got %+v", got)
	}
	if gen.gotModel != DefaultToolModel {
		t.Errorf("expected model %q, got %q", DefaultToolModel, gen.gotModel)
	}
	if len(gen.gotContents) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(gen.gotContents))
	}
	wantText := []string{"instruction", "abre la cámara"}
	for i, c := range gen.gotContents {
		if c.Role != "user" {
			t.Errorf("content %d: expected role user, got %q", i, c.Role)
		}
		if len(c.Parts) != 1 || c.Parts[0].Text != wantText[i] {
			t.Errorf("content %d: expected text %q, got %+v", i, wantText[i], c.Parts)
		}
	}
	if gen.gotConfig == nil || len(gen.gotConfig.Tools) != 1 {
		t.Fatalf("expected one tool entry in config, got %+v", gen.gotConfig)
	}
	decls := gen.gotConfig.Tools[0].FunctionDeclarations
	if len(decls) != 1 || decls[0].Name != "navigate" {
		t.Fatalf("expected navigate declaration, got %+v", decls)
	}
}

func TestToolModelCall_PropagatesError(t *testing.T) {
	cause := errors.New("quota exceeded")
	m := NewToolModel(&stubGenerator{err: cause}, "gemini-test", testTools(), zerolog.Nop())
	got, err := m.Call(context.Background(), "instruction", "hola")
	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
	if got != nil {
		t.Errorf("expected nil result on error, got %+v", got)
	}
}

func TestChatModelComplete_SystemInstructionAndText(t *testing.T) {
	gen := &stubGenerator{resp: responseWithParts(
		&genai.Part{Text: "thinking", Thought: true},
		&genai.Part{Text: "Hola, "},
		&genai.Part{Text: "¿en qué te ayudo?"},
	)}
	m := &ChatModel{Generator: gen, Model: "gemini-test"}

	got, err := m.Complete(context.Background(), []models.Message{
		{Role: models.RoleSystem, Content: "persona"},
		{Role: models.RoleUser, Content: "hola"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hola, ¿en qué te ayudo?" {
		t.Errorf("unexpected text %q", got)
	}
	if gen.gotModel != "gemini-test" {
		t.Errorf("expected model gemini-test, got %q", gen.gotModel)
	}
	if gen.gotConfig.SystemInstruction == nil || gen.gotConfig.SystemInstruction.Parts[0].Text != "persona" {
		t.Errorf("expected system instruction 'persona', got %+v", gen.gotConfig.SystemInstruction)
	}
	if len(gen.gotContents) != 1 || gen.gotContents[0].Parts[0].Text != "hola" {
		t.Errorf("expected single user content 'hola', got %+v", gen.gotContents)
	}
}

func TestChatModelComplete_PropagatesError(t *testing.T) {
	cause := errors.New("unauthenticated")
	m := &ChatModel{Generator: &stubGenerator{err: cause}}
	if _, err := m.Complete(context.Background(), nil); !errors.Is(err, cause) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
}

func TestResponseText_Empty(t *testing.T) {
	if got := ResponseText(&genai.GenerateContentResponse{}); got != "" {
		t.Errorf("expected empty text, got %q", got)
	}
}

func TestNewClient_MissingKey(t *testing.T) {
	_, err := NewClient(context.Background(), "  ")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestConvertToGeminiFunctionDeclarations(t *testing.T) {
	decls := ConvertToGeminiFunctionDeclarations(testTools())
	if len(decls) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(decls))
	}
	params := decls[0].Parameters
	if params.Type != genai.TypeObject {
		t.Errorf("expected OBJECT, got %q", params.Type)
	}
	screen, ok := params.Properties["screen"]
	if !ok {
		t.Fatal("expected screen property")
	}
	if screen.Type != genai.TypeString {
		t.Errorf("expected STRING, got %q", screen.Type)
	}
	if len(screen.Enum) != 2 || screen.Enum[0] != "camera" || screen.Enum[1] != "home" {
		t.Errorf("expected enum [camera home], got %v", screen.Enum)
	}
	if len(params.Required) != 1 || params.Required[0] != "screen" {
		t.Errorf("expected required [screen], got %v", params.Required)
	}
}

func TestConvertDefaultsMissingTypeToObject(t *testing.T) {
	decls := ConvertToGeminiFunctionDeclarations([]models.FunctionDeclaration{{Name: "noop"}})
	if decls[0].Parameters.Type != genai.TypeObject {
		t.Errorf("expected OBJECT default, got %q", decls[0].Parameters.Type)
	}
	if decls[0].Parameters.Properties == nil {
		t.Error("expected empty, non-nil properties")
	}
}
