package optimize

import (
	"context"
	"strings"

	"github.com/kapu/ai-creative-studio-go/internal/constants"
	"github.com/kapu/ai-creative-studio-go/internal/prompt"
	"github.com/kapu/ai-creative-studio-go/internal/service/ai"
	"github.com/kapu/ai-creative-studio-go/internal/util"
	"github.com/kapu/ai-creative-studio-go/pkg/errors"
	"go.uber.org/zap"
)

// TextGenerator is the completion capability the optimizer relies on.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, preset ai.ModelPreset, opts *ai.GenerateOptions) (string, *ai.GenerateMetadata, error)
}

// Options tunes the optimizer. A nil Temperature uses the default; zero is a
// valid greedy setting.
type Options struct {
	Temperature     *float32
	MaxOutputTokens int
	Model           string
	Style           string
}

func DefaultOptions() Options {
	return Options{
		Temperature:     ai.Float32(constants.OptimizerDefaults.Temperature),
		MaxOutputTokens: constants.OptimizerDefaults.MaxOutputTokens,
	}
}

// Service rewrites a raw description into a more detailed generation prompt.
type Service struct {
	generator     TextGenerator
	promptBuilder *prompt.PromptBuilder
	opts          Options
	logger        *zap.Logger
}

func NewService(generator TextGenerator, builder *prompt.PromptBuilder, opts Options, logger *zap.Logger) *Service {
	if builder == nil {
		builder = prompt.DefaultPromptBuilder()
	}
	defaults := DefaultOptions()
	if opts.Temperature == nil || *opts.Temperature < 0 {
		opts.Temperature = defaults.Temperature
	}
	if opts.MaxOutputTokens <= 0 {
		opts.MaxOutputTokens = defaults.MaxOutputTokens
	}
	return &Service{
		generator:     generator,
		promptBuilder: builder,
		opts:          opts,
		logger:        logger,
	}
}

func (s *Service) Options() Options {
	return s.opts
}

func (s *Service) Optimize(ctx context.Context, rawPrompt string) (string, error) {
	raw := strings.TrimSpace(rawPrompt)
	if raw == "" {
		return "", errors.NewOptimizationError("nothing to optimize", errors.ErrEmptyInput)
	}

	data := prompt.OptimizeData{RawPrompt: raw, Style: s.opts.Style}
	instruction, err := s.promptBuilder.Render(prompt.TemplateOptimize, data)
	if err != nil {
		s.logger.Error("Failed to render optimize template, using fallback", zap.Error(err))
		instruction = prompt.FallbackOptimize(data)
	}

	genOpts := &ai.GenerateOptions{
		Model: s.opts.Model,
		Overrides: &ai.ModelOverrides{
			Temperature:     ai.Float32(*s.opts.Temperature),
			MaxOutputTokens: s.opts.MaxOutputTokens,
		},
	}

	s.logger.Debug("Optimizing prompt",
		zap.String("raw", util.TruncateString(raw, constants.LogLimits.PromptPreview)),
		zap.Float32("temperature", *s.opts.Temperature),
		zap.Int("max_tokens", s.opts.MaxOutputTokens),
	)

	text, metadata, err := s.generator.GenerateText(ctx, instruction, ai.PresetCreative, genOpts)
	if err != nil {
		s.logger.Error("Prompt optimization failed", zap.Error(err))
		return "", errors.NewOptimizationError("language model call failed", err)
	}

	optimized := util.StripQuotes(util.StripCodeFence(text))
	if optimized == "" {
		return "", errors.NewOptimizationError("language model returned an empty completion", errors.ErrNoArtifact)
	}

	fields := []zap.Field{
		zap.Int("raw_length", len([]rune(raw))),
		zap.Int("optimized_length", len([]rune(optimized))),
	}
	if metadata != nil {
		fields = append(fields, zap.String("provider", metadata.Provider), zap.String("model", metadata.Model))
	}
	s.logger.Info("Prompt optimized", fields...)

	return optimized, nil
}
