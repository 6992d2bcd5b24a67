package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kapu/ai-creative-studio-go/internal/constants"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"

	GeminiBackendAPI    = "gemini"
	GeminiBackendVertex = "vertex"
)

type Config struct {
	LLM       LLMConfig
	Gemini    GeminiConfig
	OpenAI    OpenAIConfig
	Optimizer OptimizerConfig
	Image     ImageConfig
	Video     VideoConfig
	Session   SessionConfig
	Redis     RedisConfig
	UI        UIConfig
	Metrics   MetricsConfig
	Logging   LoggingConfig
}

type LLMConfig struct {
	Provider string
}

// GeminiConfig selects the Gemini API (API key) or Vertex AI (project and
// location) backend. Only Vertex honours an explicit video frame rate.
type GeminiConfig struct {
	Backend    string
	APIKey     string
	Project    string
	Location   string
	TextModel  string
	ImageModel string
	VideoModel string
}

type OpenAIConfig struct {
	APIKey    string
	TextModel string
}

type OptimizerConfig struct {
	Temperature     float32
	MaxOutputTokens int
}

type ImageConfig struct {
	Width         int
	Height        int
	GuidanceScale float64
	Steps         int
}

type VideoConfig struct {
	Width        int
	Height       int
	OutputDir    string
	PollInterval time.Duration
}

type SessionConfig struct {
	Backend      string
	TTL          time.Duration
	HistoryLimit int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type UIConfig struct {
	Locale string
}

type MetricsConfig struct {
	Addr string
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		LLM: LLMConfig{
			Provider: strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini)),
		},
		Gemini: GeminiConfig{
			Backend:    strings.ToLower(getEnv("GEMINI_BACKEND", GeminiBackendAPI)),
			APIKey:     getEnv("GEMINI_API_KEY", ""),
			Project:    getEnv("GOOGLE_CLOUD_PROJECT", ""),
			Location:   getEnv("GOOGLE_CLOUD_LOCATION", "us-central1"),
			TextModel:  getEnv("GEMINI_TEXT_MODEL", constants.ModelDefaults.GeminiText),
			ImageModel: getEnv("GEMINI_IMAGE_MODEL", constants.ModelDefaults.GeminiImage),
			VideoModel: getEnv("GEMINI_VIDEO_MODEL", constants.ModelDefaults.GeminiVideo),
		},
		OpenAI: OpenAIConfig{
			APIKey:    getEnv("OPENAI_API_KEY", ""),
			TextModel: getEnv("OPENAI_TEXT_MODEL", constants.ModelDefaults.OpenAIText),
		},
		Optimizer: OptimizerConfig{
			Temperature:     float32(getEnvFloat("OPTIMIZER_TEMPERATURE", float64(constants.OptimizerDefaults.Temperature))),
			MaxOutputTokens: getEnvInt("OPTIMIZER_MAX_TOKENS", constants.OptimizerDefaults.MaxOutputTokens),
		},
		Image: ImageConfig{
			Width:         getEnvInt("IMAGE_WIDTH", constants.ImageDefaults.Width),
			Height:        getEnvInt("IMAGE_HEIGHT", constants.ImageDefaults.Height),
			GuidanceScale: getEnvFloat("IMAGE_GUIDANCE_SCALE", constants.ImageDefaults.GuidanceScale),
			Steps:         getEnvInt("IMAGE_STEPS", constants.ImageDefaults.Steps),
		},
		Video: VideoConfig{
			Width:        getEnvInt("VIDEO_WIDTH", constants.VideoDefaults.Width),
			Height:       getEnvInt("VIDEO_HEIGHT", constants.VideoDefaults.Height),
			OutputDir:    getEnv("VIDEO_OUTPUT_DIR", "output/videos"),
			PollInterval: time.Duration(getEnvInt("VIDEO_POLL_INTERVAL_SECONDS", int(constants.VideoDefaults.PollInterval/time.Second))) * time.Second,
		},
		Session: SessionConfig{
			Backend:      strings.ToLower(getEnv("SESSION_BACKEND", SessionBackendMemory)),
			TTL:          time.Duration(getEnvInt("SESSION_TTL_MINUTES", 0)) * time.Minute,
			HistoryLimit: getEnvInt("HISTORY_LIMIT", constants.SessionConfig.HistoryLimit),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		UI: UIConfig{
			Locale: getEnv("UI_LOCALE", "zh"),
		},
		Metrics: MetricsConfig{
			Addr: getEnv("METRICS_ADDR", ""),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderGemini:
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=openai")
		}
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.LLM.Provider)
	}
	// image and video synthesis always go through Gemini
	switch c.Gemini.Backend {
	case GeminiBackendAPI:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required")
		}
	case GeminiBackendVertex:
		if c.Gemini.Project == "" || c.Gemini.Location == "" {
			return fmt.Errorf("GOOGLE_CLOUD_PROJECT and GOOGLE_CLOUD_LOCATION are required when GEMINI_BACKEND=vertex")
		}
	default:
		return fmt.Errorf("unsupported GEMINI_BACKEND %q", c.Gemini.Backend)
	}
	if c.Optimizer.Temperature < 0 || c.Optimizer.Temperature > 2 {
		return fmt.Errorf("OPTIMIZER_TEMPERATURE must be between 0 and 2")
	}
	switch c.Session.Backend {
	case SessionBackendMemory, SessionBackendRedis:
	default:
		return fmt.Errorf("unsupported SESSION_BACKEND %q", c.Session.Backend)
	}
	if c.Image.Width <= 0 || c.Image.Height <= 0 {
		return fmt.Errorf("IMAGE_WIDTH and IMAGE_HEIGHT must be positive")
	}
	if c.Video.Width <= 0 || c.Video.Height <= 0 {
		return fmt.Errorf("VIDEO_WIDTH and VIDEO_HEIGHT must be positive")
	}
	if c.Video.OutputDir == "" {
		return fmt.Errorf("VIDEO_OUTPUT_DIR is required")
	}
	if c.Video.PollInterval <= 0 {
		return fmt.Errorf("VIDEO_POLL_INTERVAL_SECONDS must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
