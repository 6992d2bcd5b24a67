package media

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/kapu/ai-creative-studio-go/internal/constants"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

var (
	imageAspectRatios = []string{"1:1", "3:4", "4:3", "9:16", "16:9"}
	videoAspectRatios = []string{"16:9", "9:16"}
)

// GeminiMediaProvider synthesizes images with Imagen and videos with Veo.
type GeminiMediaProvider struct {
	client       *genai.Client
	imageModel   string
	videoModel   string
	pollInterval time.Duration
	logger       *zap.Logger
}

type GeminiMediaConfig struct {
	ImageModel   string
	VideoModel   string
	PollInterval time.Duration
}

func NewGeminiMediaProvider(client *genai.Client, cfg GeminiMediaConfig, logger *zap.Logger) *GeminiMediaProvider {
	if cfg.ImageModel == "" {
		cfg.ImageModel = constants.ModelDefaults.GeminiImage
	}
	if cfg.VideoModel == "" {
		cfg.VideoModel = constants.ModelDefaults.GeminiVideo
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = constants.VideoDefaults.PollInterval
	}
	return &GeminiMediaProvider{
		client:       client,
		imageModel:   cfg.ImageModel,
		videoModel:   cfg.VideoModel,
		pollInterval: cfg.PollInterval,
		logger:       logger,
	}
}

func (p *GeminiMediaProvider) Name() string {
	return "Gemini"
}

func (p *GeminiMediaProvider) GenerateImage(ctx context.Context, req ImageRequest) (*ArtifactResponse, error) {
	if p.client == nil {
		return nil, fmt.Errorf("gemini client not initialized")
	}

	guidance := float32(req.GuidanceScale)
	config := &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    nearestAspectRatio(req.Width, req.Height, imageAspectRatios),
		GuidanceScale:  &guidance,
	}

	// Imagen has no sampler step knob.
	p.logger.Debug("Calling Imagen",
		zap.String("model", p.imageModel),
		zap.String("aspect_ratio", config.AspectRatio),
		zap.Int("ignored_steps", req.Steps),
	)

	resp, err := p.client.Models.GenerateImages(ctx, p.imageModel, req.Prompt, config)
	if err != nil {
		return nil, err
	}

	out := &ArtifactResponse{}
	if resp == nil {
		return out, nil
	}
	for _, generated := range resp.GeneratedImages {
		if generated == nil {
			continue
		}
		if generated.RAIFilteredReason != "" {
			out.FilteredReasons = append(out.FilteredReasons, generated.RAIFilteredReason)
		}
		if generated.Image == nil || len(generated.Image.ImageBytes) == 0 {
			continue
		}
		out.Artifacts = append(out.Artifacts, Artifact{
			Data:     generated.Image.ImageBytes,
			MIMEType: generated.Image.MIMEType,
		})
	}

	return out, nil
}

func (p *GeminiMediaProvider) GenerateVideo(ctx context.Context, req VideoRequest) (*ArtifactResponse, error) {
	if p.client == nil {
		return nil, fmt.Errorf("gemini client not initialized")
	}

	applied := supportedVideoDuration(p.videoModel, req.DurationSeconds)
	duration := int32(applied)
	config := &genai.GenerateVideosConfig{
		NumberOfVideos:  1,
		AspectRatio:     nearestAspectRatio(req.Width, req.Height, videoAspectRatios),
		DurationSeconds: &duration,
	}
	if applied != req.DurationSeconds {
		p.logger.Info("Video duration adjusted to a length the model accepts",
			zap.String("model", p.videoModel),
			zap.Int("requested", req.DurationSeconds),
			zap.Int("applied", applied),
		)
	}

	// The Gemini API backend rejects an explicit frame rate; only Vertex accepts it.
	fpsIgnored := p.client.ClientConfig().Backend != genai.BackendVertexAI
	if fpsIgnored {
		p.logger.Warn("Frame rate is not supported by the Gemini API backend, using the model default",
			zap.Int("requested_fps", req.FPS),
		)
	} else {
		fps := int32(req.FPS)
		config.FPS = &fps
	}

	p.logger.Debug("Calling Veo",
		zap.String("model", p.videoModel),
		zap.String("aspect_ratio", config.AspectRatio),
		zap.Int("duration", req.DurationSeconds),
		zap.Int("fps", req.FPS),
	)

	operation, err := p.client.Models.GenerateVideos(ctx, p.videoModel, req.Prompt, nil, config)
	if err != nil {
		return nil, err
	}

	operation, err = p.waitForVideo(ctx, operation)
	if err != nil {
		return nil, err
	}

	out := &ArtifactResponse{FPSIgnored: fpsIgnored}
	if applied != req.DurationSeconds {
		out.DurationSeconds = applied
	}
	if operation.Response == nil {
		return out, nil
	}
	out.FilteredReasons = append(out.FilteredReasons, operation.Response.RAIMediaFilteredReasons...)

	for _, generated := range operation.Response.GeneratedVideos {
		if generated == nil || generated.Video == nil {
			continue
		}
		data := generated.Video.VideoBytes
		if len(data) == 0 && generated.Video.URI != "" {
			data, err = p.client.Files.Download(ctx, genai.NewDownloadURIFromGeneratedVideo(generated), nil)
			if err != nil {
				return nil, fmt.Errorf("download generated video: %w", err)
			}
		}
		if len(data) == 0 {
			continue
		}
		out.Artifacts = append(out.Artifacts, Artifact{
			Data:     data,
			MIMEType: generated.Video.MIMEType,
		})
	}

	return out, nil
}

// waitForVideo polls the long-running operation until it finishes or ctx ends.
func (p *GeminiMediaProvider) waitForVideo(ctx context.Context, operation *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	started := time.Now()
	for operation != nil && !operation.Done {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}

		next, err := p.client.Operations.GetVideosOperation(ctx, operation, nil)
		if err != nil {
			return nil, fmt.Errorf("poll video operation %s: %w", operation.Name, err)
		}
		operation = next
		p.logger.Debug("Video operation polled",
			zap.String("operation", operation.Name),
			zap.Bool("done", operation.Done),
			zap.Duration("elapsed", time.Since(started)),
		)
	}

	if operation == nil {
		return nil, fmt.Errorf("video operation missing")
	}
	if len(operation.Error) > 0 {
		return nil, fmt.Errorf("video operation %s failed: %v", operation.Name, operation.Error)
	}
	return operation, nil
}

// supportedVideoDuration maps a requested length onto the nearest value the
// model family accepts. Veo 3 takes 4, 6 or 8 seconds; Veo 2 takes 5 to 8.
// Unknown models receive the request unchanged.
func supportedVideoDuration(model string, requested int) int {
	name := strings.ToLower(model)
	switch {
	case strings.HasPrefix(name, "veo-3"):
		return nearestInt(requested, []int{4, 6, 8})
	case strings.HasPrefix(name, "veo-2"):
		return min(max(requested, 5), 8)
	default:
		return requested
	}
}

// nearestInt returns the closest option; ties go to the longer one.
func nearestInt(value int, options []int) int {
	best := options[0]
	for _, option := range options[1:] {
		if d, bd := abs(option-value), abs(best-value); d < bd || (d == bd && option > best) {
			best = option
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// nearestAspectRatio picks the supported ratio closest to width:height.
func nearestAspectRatio(width, height int, options []string) string {
	if len(options) == 0 {
		return ""
	}
	if width <= 0 || height <= 0 {
		return options[0]
	}

	target := math.Log(float64(width) / float64(height))
	best := options[0]
	bestDiff := math.Inf(1)
	for _, option := range options {
		var w, h float64
		if _, err := fmt.Sscanf(option, "%g:%g", &w, &h); err != nil || w <= 0 || h <= 0 {
			continue
		}
		diff := math.Abs(math.Log(w/h) - target)
		if diff < bestDiff {
			best = option
			bestDiff = diff
		}
	}
	return best
}
