package app

import (
	"context"
	"fmt"

	"github.com/kapu/ai-creative-studio-go/internal/adapter"
	"github.com/kapu/ai-creative-studio-go/internal/command"
	"github.com/kapu/ai-creative-studio-go/internal/config"
	"github.com/kapu/ai-creative-studio-go/internal/domain"
	"github.com/kapu/ai-creative-studio-go/internal/pipeline"
	"github.com/kapu/ai-creative-studio-go/internal/prompt"
	"github.com/kapu/ai-creative-studio-go/internal/service/ai"
	"github.com/kapu/ai-creative-studio-go/internal/service/media"
	"github.com/kapu/ai-creative-studio-go/internal/service/optimize"
	"github.com/kapu/ai-creative-studio-go/internal/service/session"
	"github.com/kapu/ai-creative-studio-go/internal/service/translate"
	"go.uber.org/zap"
)

// Container bundles the assembled pipeline and the terminal front-end pieces.
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	Orchestrator   *pipeline.Orchestrator
	MessageAdapter *adapter.MessageAdapter
	Formatter      *adapter.ResponseFormatter
	Registry       *command.Registry
	Dispatcher     command.Dispatcher

	closers []func()
}

// Close releases resources in reverse construction order.
func (c *Container) Close() {
	if c == nil {
		return
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// Build assembles the model clients, generators and session store. output
// receives user-facing messages from commands.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger, output func(sessionID, message string) error) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if output == nil {
		output = func(string, string) error { return nil }
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	// Session state
	store, err := buildSessionStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	closers = append(closers, func() {
		_ = store.Close()
	})

	// AI stack
	modelManager, err := ai.NewModelManager(ctx, ai.ModelManagerConfig{
		Provider:        cfg.LLM.Provider,
		GeminiBackend:   cfg.Gemini.Backend,
		GeminiAPIKey:    cfg.Gemini.APIKey,
		GeminiProject:   cfg.Gemini.Project,
		GeminiLocation:  cfg.Gemini.Location,
		OpenAIAPIKey:    cfg.OpenAI.APIKey,
		GeminiTextModel: cfg.Gemini.TextModel,
		OpenAITextModel: cfg.OpenAI.TextModel,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create model manager: %w", err)
	}

	promptBuilder := prompt.NewPromptBuilder()
	translator := translate.NewService(modelManager, promptBuilder, logger)
	optimizer := optimize.NewService(modelManager, promptBuilder, optimize.Options{
		Temperature:     ai.Float32(cfg.Optimizer.Temperature),
		MaxOutputTokens: cfg.Optimizer.MaxOutputTokens,
	}, logger)

	// Media generation
	mediaProvider := media.NewGeminiMediaProvider(modelManager.GeminiClient(), media.GeminiMediaConfig{
		ImageModel:   cfg.Gemini.ImageModel,
		VideoModel:   cfg.Gemini.VideoModel,
		PollInterval: cfg.Video.PollInterval,
	}, logger)
	fileStore := media.NewFileStore(cfg.Video.OutputDir)

	images := media.NewImageService(translator, mediaProvider, domain.ImageParams{
		Width:         cfg.Image.Width,
		Height:        cfg.Image.Height,
		GuidanceScale: cfg.Image.GuidanceScale,
		Steps:         cfg.Image.Steps,
	}, logger)
	videos := media.NewVideoService(translator, mediaProvider, fileStore, cfg.Video.Width, cfg.Video.Height, logger)

	orchestrator := pipeline.NewOrchestrator(pipeline.Dependencies{
		Optimizer:    optimizer,
		Translator:   translator,
		Images:       images,
		Videos:       videos,
		Store:        store,
		HistoryLimit: cfg.Session.HistoryLimit,
		Logger:       logger,
	})

	// Front-end
	locale := domain.ParseLocale(cfg.UI.Locale)
	messageAdapter := adapter.NewMessageAdapter("/")
	formatter := adapter.NewResponseFormatter(messageAdapter.Prefix(), locale)

	deps := &command.Dependencies{
		Pipeline:    orchestrator,
		Formatter:   formatter,
		Images:      fileStore,
		SendMessage: output,
		SendError:   output,
		Logger:      logger,
	}
	registry := command.RegisterDefaults(deps)

	logger.Info("Studio assembled",
		zap.String("text_provider", modelManager.ProviderName()),
		zap.String("session_backend", cfg.Session.Backend),
		zap.String("output_dir", fileStore.Dir()),
		zap.String("locale", locale.String()),
		zap.Int("commands", registry.Count()),
	)

	return &Container{
		Config:         cfg,
		Logger:         logger,
		Orchestrator:   orchestrator,
		MessageAdapter: messageAdapter,
		Formatter:      formatter,
		Registry:       registry,
		Dispatcher:     command.NewSequentialDispatcher(registry, nil),
		closers:        closers,
	}, nil
}

func buildSessionStore(cfg *config.Config, logger *zap.Logger) (session.Store, error) {
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		store, err := session.NewRedisStore(session.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Session.TTL,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create session store: %w", err)
		}
		return store, nil
	default:
		return session.NewMemoryStore(), nil
	}
}
