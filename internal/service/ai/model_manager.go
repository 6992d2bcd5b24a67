package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kapu/ai-creative-studio-go/internal/constants"
	"github.com/kapu/ai-creative-studio-go/internal/util"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	BackendVertex = "vertex"
)

// ModelManager routes every completion to exactly one configured provider.
// There is no fallback chain: a provider failure is returned to the caller.
type ModelManager struct {
	provider     TextProvider
	geminiClient *genai.Client
	logger       *zap.Logger
}

type ModelManagerConfig struct {
	Provider        string
	GeminiBackend   string
	GeminiAPIKey    string
	GeminiProject   string
	GeminiLocation  string
	OpenAIAPIKey    string
	GeminiTextModel string
	OpenAITextModel string
}

func NewModelManager(ctx context.Context, cfg ModelManagerConfig, logger *zap.Logger) (*ModelManager, error) {
	geminiClient, err := genai.NewClient(ctx, GeminiClientConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	geminiModel := cfg.GeminiTextModel
	if geminiModel == "" {
		geminiModel = constants.ModelDefaults.GeminiText
	}
	openaiModel := cfg.OpenAITextModel
	if openaiModel == "" {
		openaiModel = constants.ModelDefaults.OpenAIText
	}

	mm := &ModelManager{
		geminiClient: geminiClient,
		logger:       logger,
	}

	switch strings.ToLower(cfg.Provider) {
	case "", ProviderGemini:
		mm.provider = NewGeminiProvider(geminiClient, geminiModel, logger)
	case ProviderOpenAI:
		openaiProvider := NewOpenAIProvider(cfg.OpenAIAPIKey, openaiModel, logger)
		if openaiProvider == nil {
			return nil, fmt.Errorf("OpenAI provider selected but no API key configured")
		}
		mm.provider = openaiProvider
	default:
		return nil, fmt.Errorf("unsupported text provider %q", cfg.Provider)
	}

	logger.Info("Text model provider ready", zap.String("provider", mm.provider.Name()))
	return mm, nil
}

// GeminiClientConfig maps the backend selection onto a genai client config.
// Vertex authenticates with application default credentials.
func GeminiClientConfig(cfg ModelManagerConfig) *genai.ClientConfig {
	if strings.EqualFold(cfg.GeminiBackend, BackendVertex) {
		return &genai.ClientConfig{
			Backend:  genai.BackendVertexAI,
			Project:  cfg.GeminiProject,
			Location: cfg.GeminiLocation,
		}
	}
	return &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}
}

// NewModelManagerWithProvider builds a manager around an existing provider.
func NewModelManagerWithProvider(provider TextProvider, logger *zap.Logger) *ModelManager {
	return &ModelManager{provider: provider, logger: logger}
}

// GeminiClient exposes the shared client so media generation reuses one connection pool.
func (mm *ModelManager) GeminiClient() *genai.Client {
	return mm.geminiClient
}

func (mm *ModelManager) ProviderName() string {
	if mm.provider == nil {
		return ""
	}
	return mm.provider.Name()
}

func (mm *ModelManager) Ping(ctx context.Context) bool {
	return mm.provider != nil && mm.provider.Ping(ctx)
}

// GenerateText returns the trimmed completion for prompt.
func (mm *ModelManager) GenerateText(ctx context.Context, prompt string, preset ModelPreset, opts *GenerateOptions) (string, *GenerateMetadata, error) {
	if mm.provider == nil {
		return "", nil, fmt.Errorf("no text provider configured")
	}

	result, err := mm.provider.Generate(ctx, prompt, preset, opts)
	if err != nil {
		return "", nil, err
	}

	metadata := &GenerateMetadata{
		Provider: mm.provider.Name(),
		Model:    result.Model,
	}

	text := strings.TrimSpace(result.Text)
	if text == "" {
		return "", metadata, fmt.Errorf("%s API returned empty response", metadata.Provider)
	}

	return text, metadata, nil
}

// GenerateJSON requests a JSON completion and unmarshals it into dest.
func (mm *ModelManager) GenerateJSON(ctx context.Context, prompt string, preset ModelPreset, dest any, opts *GenerateOptions) (*GenerateMetadata, error) {
	jsonOpts := GenerateOptions{}
	if opts != nil {
		jsonOpts = *opts
	}
	jsonOpts.JSONMode = true

	text, metadata, err := mm.GenerateText(ctx, prompt, preset, &jsonOpts)
	if err != nil {
		return metadata, err
	}

	cleaned := util.StripCodeFence(text)
	if err := json.Unmarshal([]byte(cleaned), dest); err != nil {
		mm.logger.Error("Failed to unmarshal JSON response",
			zap.String("provider", metadata.Provider),
			zap.Error(err),
			zap.String("response_preview", util.TruncateString(cleaned, 200)),
		)
		return metadata, fmt.Errorf("invalid JSON from %s: %w", metadata.Provider, err)
	}

	return metadata, nil
}
