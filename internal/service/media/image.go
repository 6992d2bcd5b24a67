package media

import (
	"context"
	"strings"

	"github.com/kapu/ai-creative-studio-go/internal/constants"
	"github.com/kapu/ai-creative-studio-go/internal/domain"
	"github.com/kapu/ai-creative-studio-go/internal/util"
	"github.com/kapu/ai-creative-studio-go/pkg/errors"
	"go.uber.org/zap"
)

func DefaultImageParams() domain.ImageParams {
	return domain.ImageParams{
		Width:         constants.ImageDefaults.Width,
		Height:        constants.ImageDefaults.Height,
		GuidanceScale: constants.ImageDefaults.GuidanceScale,
		Steps:         constants.ImageDefaults.Steps,
	}
}

// ImageService turns a prompt in any language into a decoded still image.
type ImageService struct {
	translator Translator
	provider   Provider
	params     domain.ImageParams
	logger     *zap.Logger
}

func NewImageService(translator Translator, provider Provider, params domain.ImageParams, logger *zap.Logger) *ImageService {
	return &ImageService{
		translator: translator,
		provider:   provider,
		params:     params,
		logger:     logger,
	}
}

func (s *ImageService) Params() domain.ImageParams {
	return s.params
}

func (s *ImageService) Generate(ctx context.Context, prompt string) (*domain.GeneratedImage, error) {
	return s.GenerateWithParams(ctx, prompt, s.params)
}

func (s *ImageService) GenerateWithParams(ctx context.Context, prompt string, params domain.ImageParams) (*domain.GeneratedImage, error) {
	if err := validateImageParams(params); err != nil {
		return nil, errors.NewGenerationError(errors.StageImage, "invalid image parameters", err)
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, errors.NewGenerationError(errors.StageImage, "image prompt is empty", errors.ErrEmptyInput)
	}

	englishPrompt, err := s.translator.ToEnglish(ctx, prompt)
	if err != nil {
		return nil, errors.NewGenerationError(errors.StageImage, "prompt translation failed", err)
	}

	s.logger.Debug("Requesting image",
		zap.String("provider", s.provider.Name()),
		zap.String("prompt", util.TruncateString(englishPrompt, constants.LogLimits.PromptPreview)),
		zap.Int("width", params.Width),
		zap.Int("height", params.Height),
		zap.Float64("guidance_scale", params.GuidanceScale),
		zap.Int("steps", params.Steps),
	)

	resp, err := s.provider.GenerateImage(ctx, ImageRequest{
		Prompt:        englishPrompt,
		GuidanceScale: params.GuidanceScale,
		Steps:         params.Steps,
		Width:         params.Width,
		Height:        params.Height,
	})
	if err != nil {
		s.logger.Error("Image provider failed", zap.Error(err))
		return nil, errors.NewGenerationError(errors.StageImage, "image provider failed", err)
	}

	data, err := firstArtifact(resp)
	if err != nil {
		s.logger.Warn("Image response carried no usable artifact", zap.Error(err))
		return nil, errors.NewGenerationError(errors.StageImage, "image response carried no usable artifact", err)
	}

	img, mimeType, err := decodeImage(data)
	if err != nil {
		s.logger.Error("Image decode failed", zap.String("mime", mimeType), zap.Error(err))
		return nil, errors.NewGenerationError(errors.StageImage, "image decode failed", err)
	}

	bounds := img.Bounds()
	s.logger.Info("Image generated",
		zap.String("mime", mimeType),
		zap.Int("width", bounds.Dx()),
		zap.Int("height", bounds.Dy()),
		zap.Int("bytes", len(data)),
	)

	return &domain.GeneratedImage{
		Image:         img,
		Bytes:         data,
		MIMEType:      mimeType,
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		EnglishPrompt: englishPrompt,
	}, nil
}

func validateImageParams(params domain.ImageParams) error {
	if params.Width <= 0 {
		return errors.NewValidationError("width must be positive", "width", params.Width)
	}
	if params.Height <= 0 {
		return errors.NewValidationError("height must be positive", "height", params.Height)
	}
	if params.GuidanceScale <= 0 {
		return errors.NewValidationError("guidance scale must be positive", "guidance_scale", params.GuidanceScale)
	}
	if params.Steps <= 0 {
		return errors.NewValidationError("steps must be positive", "steps", params.Steps)
	}
	return nil
}
