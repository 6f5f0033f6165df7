package hapticvision

import (
	"context"
	"time"

	"github.com/Desarso/hapticvision/common_tools"
	"github.com/Desarso/hapticvision/models"
	"github.com/Desarso/hapticvision/models/gemini"
	"github.com/Desarso/hapticvision/stores"
	"github.com/rs/zerolog"
)

// ChatPersona is the system message sent with every free-text request.
const ChatPersona = "Eres un asistente inteligente para la aplicación HapticVision. " +
	"Tu objetivo es ayudar al usuario a navegar por la aplicación y controlar sus funciones " +
	"mediante comandos de voz. Responde de manera breve y útil."

// ToolInstruction precedes the user message in tool-calling requests.
const ToolInstruction = "Eres un asistente inteligente para la aplicación HapticVision. " +
	"Tu objetivo es ayudar al usuario a navegar por la aplicación y controlar sus funciones " +
	"(cámara, vibración, configuración) mediante comandos de voz. " +
	"Interpreta la intención del usuario y llama a la herramienta adecuada."

// ChatModel produces a free-text answer for an ordered prompt.
type ChatModel interface {
	Complete(ctx context.Context, messages []models.Message) (string, error)
}

// ToolModel resolves a message to at most one function call.
type ToolModel interface {
	Call(ctx context.Context, instruction, message string) (*models.ToolCallResult, error)
}

// Gateway wraps the two ways of calling the hosted model. It holds no
// per-request state and is safe for concurrent use.
type Gateway struct {
	Chatter   ChatModel
	Tools     ToolModel
	WrapWidth int
	Traces    stores.TraceStore
	Logger    zerolog.Logger
}

// NewGateway builds the Gemini-backed gateway. It fails immediately with
// gemini.ErrMissingAPIKey when no key is configured.
func NewGateway(ctx context.Context, cfg *Config, traces stores.TraceStore, logger zerolog.Logger) (*Gateway, error) {
	client, err := gemini.NewClient(ctx, cfg.APIKey)
	if err != nil {
		return nil, err
	}

	chat := &gemini.ChatModel{Generator: client.Models, Model: cfg.ChatModel}
	tools := gemini.NewToolModel(client.Models, cfg.ToolModel, common_tools.DefaultTools(),
		logger.With().Str("component", "gemini").Logger())

	return &Gateway{
		Chatter:   chat,
		Tools:     tools,
		WrapWidth: cfg.WrapWidth,
		Traces:    traces,
		Logger:    logger.With().Str("component", "gateway").Logger(),
	}, nil
}

// Chat sends the persona and the user's message and returns the answer
// hard-wrapped to WrapWidth. Provider errors are returned unchanged.
func (g *Gateway) Chat(ctx context.Context, message string) (string, error) {
	start := time.Now()
	messages := []models.Message{
		{Role: models.RoleSystem, Content: ChatPersona},
		{Role: models.RoleUser, Content: message},
	}

	text, err := g.Chatter.Complete(ctx, messages)
	if err != nil {
		g.record(ctx, &stores.InteractionTrace{Mode: stores.ModeChat, Status: stores.StatusError, Error: err.Error()}, start)
		return "", err
	}

	g.Logger.Debug().
		Str("request_id", models.RequestIDFrom(ctx)).
		Str("response", text).
		Msg("LLM response")
	g.record(ctx, &stores.InteractionTrace{Mode: stores.ModeChat, Status: stores.StatusOK}, start)

	return WordWrap(text, g.wrapWidth()), nil
}

// CallTool asks the model to pick one voice-command action. A nil result
// with a nil error means no action was recognized. The returned name and
// arguments are passed through even when they fall outside the declared
// schema; such results are only logged.
func (g *Gateway) CallTool(ctx context.Context, message string) (*models.ToolCallResult, error) {
	start := time.Now()

	result, err := g.Tools.Call(ctx, ToolInstruction, message)
	if err != nil {
		g.record(ctx, &stores.InteractionTrace{Mode: stores.ModeTool, Status: stores.StatusError, Error: err.Error()}, start)
		return nil, err
	}

	if result == nil {
		g.Logger.Debug().Str("request_id", models.RequestIDFrom(ctx)).Msg("no action recognized")
		g.record(ctx, &stores.InteractionTrace{Mode: stores.ModeTool, Status: stores.StatusNoAction}, start)
		return nil, nil
	}

	if verr := result.Action().Validate(); verr != nil {
		g.Logger.Warn().
			Err(verr).
			Str("request_id", models.RequestIDFrom(ctx)).
			Str("tool", result.Name).
			Msg("model call does not match the declared tool schema")
	}
	g.Logger.Debug().
		Str("request_id", models.RequestIDFrom(ctx)).
		Str("tool", result.Name).
		Interface("args", result.Args).
		Msg("LLM tool call")
	g.record(ctx, &stores.InteractionTrace{
		Mode:     stores.ModeTool,
		Status:   stores.StatusOK,
		ToolName: result.Name,
		Args:     result.Args,
	}, start)

	return result, nil
}

func (g *Gateway) wrapWidth() int {
	if g.WrapWidth <= 0 {
		return DefaultWrapWidth
	}
	return g.WrapWidth
}

// record stores a trace. Failures are logged and never surface to the caller.
func (g *Gateway) record(ctx context.Context, trace *stores.InteractionTrace, start time.Time) {
	if g.Traces == nil {
		return
	}
	trace.RequestID = models.RequestIDFrom(ctx)
	trace.DurationMS = time.Since(start).Milliseconds()
	if err := g.Traces.SaveTrace(context.WithoutCancel(ctx), trace); err != nil {
		g.Logger.Error().Err(err).Str("request_id", trace.RequestID).Msg("failed to save interaction trace")
	}
}
