package constants

import "time"

var VideoLimits = struct {
	MinDurationSeconds int
	MaxDurationSeconds int
	MinFPS             int
	MaxFPS             int
}{
	MinDurationSeconds: 1,
	MaxDurationSeconds: 10,
	MinFPS:             12,
	MaxFPS:             60,
}

var VideoDefaults = struct {
	DurationSeconds int
	FPS             int
	Width           int
	Height          int
	PollInterval    time.Duration
}{
	DurationSeconds: 5,
	FPS:             24,
	Width:           1024,
	Height:          1024,
	PollInterval:    10 * time.Second,
}

var ImageDefaults = struct {
	GuidanceScale float64
	Steps         int
	Width         int
	Height        int
}{
	GuidanceScale: 7,
	Steps:         50,
	Width:         1024,
	Height:        1024,
}

var OptimizerDefaults = struct {
	Temperature     float32
	MaxOutputTokens int
}{
	Temperature:     0.7,
	MaxOutputTokens: 500,
}

var TranslatorDefaults = struct {
	TargetLanguage  string
	SourceLanguage  string
	Temperature     float32
	MaxOutputTokens int
}{
	TargetLanguage:  "en",
	SourceLanguage:  "auto",
	Temperature:     0.1,
	MaxOutputTokens: 2048,
}

var ModelDefaults = struct {
	GeminiText  string
	GeminiImage string
	GeminiVideo string
	OpenAIText  string
}{
	GeminiText:  "gemini-2.5-flash",
	GeminiImage: "imagen-4.0-generate-001",
	GeminiVideo: "veo-2.0-generate-001",
	OpenAIText:  "gpt-4.1-mini",
}

var SessionConfig = struct {
	KeyPrefix    string
	HistoryLimit int
	RedisTimeout time.Duration
}{
	KeyPrefix:    "studio:session:",
	HistoryLimit: 50,
	RedisTimeout: 5 * time.Second,
}

var LogLimits = struct {
	PromptPreview int
}{
	PromptPreview: 120,
}
