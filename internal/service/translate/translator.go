package translate

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

// JSONGenerator is the completion capability the translator relies on.
type JSONGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, preset ai.ModelPreset, dest any, opts *ai.GenerateOptions) (*ai.GenerateMetadata, error)
}

type translationResponse struct {
	DetectedLanguage string `json:"detected_language"`
	Supported        *bool  `json:"supported"`
	Translation      string `json:"translation"`
}

// Service translates arbitrary-language text, auto-detecting the source.
type Service struct {
	generator     JSONGenerator
	promptBuilder *prompt.PromptBuilder
	logger        *zap.Logger
}

func NewService(generator JSONGenerator, builder *prompt.PromptBuilder, logger *zap.Logger) *Service {
	if builder == nil {
		builder = prompt.DefaultPromptBuilder()
	}
	return &Service{
		generator:     generator,
		promptBuilder: builder,
		logger:        logger,
	}
}

// ToEnglish is Translate with the target fixed to English.
func (s *Service) ToEnglish(ctx context.Context, text string) (string, error) {
	return s.Translate(ctx, text, constants.TranslatorDefaults.TargetLanguage)
}

// Translate returns text in targetLanguage. It never falls back to the source
// text: any failure is a *errors.TranslationError.
func (s *Service) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", errors.NewTranslationError("nothing to translate", errors.ErrEmptyInput)
	}
	if targetLanguage == "" {
		targetLanguage = constants.TranslatorDefaults.TargetLanguage
	}

	data := prompt.TranslateData{
		Text:           trimmed,
		SourceLanguage: constants.TranslatorDefaults.SourceLanguage,
		TargetLanguage: targetLanguage,
	}
	promptText, err := s.promptBuilder.Render(prompt.TemplateTranslate, data)
	if err != nil {
		s.logger.Error("Failed to render translate template, using fallback", zap.Error(err))
		promptText = prompt.FallbackTranslate(data)
	}

	var resp translationResponse
	opts := &ai.GenerateOptions{
		Overrides: &ai.ModelOverrides{
			Temperature:     ai.Float32(constants.TranslatorDefaults.Temperature),
			MaxOutputTokens: constants.TranslatorDefaults.MaxOutputTokens,
		},
	}

	metadata, err := s.generator.GenerateJSON(ctx, promptText, ai.PresetPrecise, &resp, opts)
	if err != nil {
		s.logger.Error("Translation request failed",
			zap.String("target", targetLanguage),
			zap.Error(err),
		)
		return "", errors.NewTranslationError("translation service failed", err)
	}

	if resp.Supported != nil && !*resp.Supported {
		s.logger.Warn("Translation rejected: unsupported source language",
			zap.String("detected", resp.DetectedLanguage),
		)
		return "", errors.NewTranslationError("source language "+resp.DetectedLanguage+" is not supported", errors.ErrUnsupportedLanguage)
	}

	translated := util.StripQuotes(resp.Translation)
	if translated == "" {
		return "", errors.NewTranslationError("translation service returned empty text", errors.ErrNoArtifact)
	}

	fields := []zap.Field{
		zap.String("detected", resp.DetectedLanguage),
		zap.String("target", targetLanguage),
		zap.String("preview", util.TruncateString(translated, constants.LogLimits.PromptPreview)),
	}
	if metadata != nil {
		fields = append(fields, zap.String("provider", metadata.Provider), zap.String("model", metadata.Model))
	}
	s.logger.Debug("Translation completed", fields...)

	return translated, nil
}
