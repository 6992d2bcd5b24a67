package media

import "context"

// ImageRequest is the image-synthesis call. Prompt must be English.
type ImageRequest struct {
	Prompt        string
	GuidanceScale float64
	Steps         int
	Width         int
	Height        int
}

// VideoRequest is the video-synthesis call. Prompt must be English.
type VideoRequest struct {
	Prompt          string
	DurationSeconds int
	FPS             int
	Width           int
	Height          int
}

// Artifact carries generated media either as raw bytes or as base64 text.
type Artifact struct {
	Base64   string
	Data     []byte
	MIMEType string
}

type ArtifactResponse struct {
	Artifacts []Artifact
	// FilteredReasons explains artifacts withheld by provider safety filters.
	FilteredReasons []string
	// DurationSeconds is the clip length the provider was asked for when it
	// differs from the request. Zero means the requested length was sent.
	DurationSeconds int
	// FPSIgnored reports that the backend picked its own frame rate.
	FPSIgnored bool
}

// Provider is an image and video synthesis backend.
type Provider interface {
	Name() string
	GenerateImage(ctx context.Context, req ImageRequest) (*ArtifactResponse, error)
	GenerateVideo(ctx context.Context, req VideoRequest) (*ArtifactResponse, error)
}

// Translator converts generation prompts to English before synthesis.
type Translator interface {
	ToEnglish(ctx context.Context, text string) (string, error)
}
