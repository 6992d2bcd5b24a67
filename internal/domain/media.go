package domain

import (
	"image"
	"time"
)

type ImageParams struct {
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	GuidanceScale float64 `json:"guidance_scale"`
	Steps         int     `json:"steps"`
}

type VideoParams struct {
	DurationSeconds int `json:"duration_seconds"`
	FPS             int `json:"fps"`
	Width           int `json:"width"`
	Height          int `json:"height"`
}

// GeneratedImage is a decoded still image. The caller owns it.
type GeneratedImage struct {
	Image         image.Image
	Bytes         []byte
	MIMEType      string
	Width         int
	Height        int
	EnglishPrompt string
}

// VideoHandle points at a decoded video written to durable storage.
// DurationSeconds and FPS are the values the provider honoured; FPS is zero
// when the provider chose its own frame rate.
type VideoHandle struct {
	Path            string
	MIMEType        string
	Size            int64
	DurationSeconds int
	FPS             int
	EnglishPrompt   string
}

type OptimizedResult struct {
	SessionID       string
	RawPrompt       string
	OptimizedPrompt string
	EnglishPrompt   string
	Elapsed         time.Duration
}

type ImageResult struct {
	SessionID string
	Image     *GeneratedImage
	Elapsed   time.Duration
}

type VideoResult struct {
	SessionID string
	Video     *VideoHandle
	Elapsed   time.Duration
}
