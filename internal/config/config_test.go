package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LLM_PROVIDER", "GEMINI_API_KEY", "OPENAI_API_KEY", "SESSION_BACKEND",
		"GEMINI_BACKEND", "GOOGLE_CLOUD_PROJECT", "GOOGLE_CLOUD_LOCATION",
		"OPTIMIZER_TEMPERATURE", "OPTIMIZER_MAX_TOKENS", "IMAGE_WIDTH", "IMAGE_HEIGHT",
		"VIDEO_POLL_INTERVAL_SECONDS", "VIDEO_OUTPUT_DIR", "SESSION_TTL_MINUTES",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.LLM.Provider != ProviderGemini {
		t.Fatalf("expected gemini provider, got %s", cfg.LLM.Provider)
	}
	if cfg.Optimizer.Temperature != 0.7 || cfg.Optimizer.MaxOutputTokens != 500 {
		t.Fatalf("unexpected optimizer defaults: %+v", cfg.Optimizer)
	}
	if cfg.Image.Width != 1024 || cfg.Image.Height != 1024 || cfg.Image.GuidanceScale != 7 || cfg.Image.Steps != 50 {
		t.Fatalf("unexpected image defaults: %+v", cfg.Image)
	}
	if cfg.Video.PollInterval != 10*time.Second {
		t.Fatalf("unexpected poll interval: %v", cfg.Video.PollInterval)
	}
	if cfg.Session.Backend != SessionBackendMemory || cfg.Session.TTL != 0 {
		t.Fatalf("unexpected session defaults: %+v", cfg.Session)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("OPTIMIZER_TEMPERATURE", "0.3")
	t.Setenv("IMAGE_WIDTH", "768")
	t.Setenv("SESSION_TTL_MINUTES", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Optimizer.Temperature != float32(0.3) {
		t.Fatalf("expected temperature override, got %v", cfg.Optimizer.Temperature)
	}
	if cfg.Image.Width != 768 {
		t.Fatalf("expected width override, got %d", cfg.Image.Width)
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Fatalf("expected ttl override, got %v", cfg.Session.TTL)
	}
}

func TestLoadKeepsZeroTemperature(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("OPTIMIZER_TEMPERATURE", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Optimizer.Temperature != 0 {
		t.Fatalf("expected greedy temperature, got %v", cfg.Optimizer.Temperature)
	}
}

func TestLoadVertexBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_BACKEND", "vertex")

	if _, err := Load(); err == nil {
		t.Fatalf("expected vertex without project to fail")
	}

	t.Setenv("GOOGLE_CLOUD_PROJECT", "studio-project")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected vertex config to load without an API key, got %v", err)
	}
	if cfg.Gemini.Backend != GeminiBackendVertex || cfg.Gemini.Project != "studio-project" || cfg.Gemini.Location != "us-central1" {
		t.Fatalf("unexpected gemini config: %+v", cfg.Gemini)
	}

	t.Setenv("GEMINI_BACKEND", "bedrock")
	if _, err := Load(); err == nil {
		t.Fatalf("expected unknown backend to fail")
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	clearEnv(t)

	if _, err := Load(); err == nil {
		t.Fatalf("expected missing GEMINI_API_KEY to fail")
	}

	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("LLM_PROVIDER", "openai")
	if _, err := Load(); err == nil {
		t.Fatalf("expected openai provider without key to fail")
	}

	t.Setenv("LLM_PROVIDER", "claude")
	if _, err := Load(); err == nil {
		t.Fatalf("expected unknown provider to fail")
	}

	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("SESSION_BACKEND", "postgres")
	if _, err := Load(); err == nil {
		t.Fatalf("expected unknown session backend to fail")
	}
}
