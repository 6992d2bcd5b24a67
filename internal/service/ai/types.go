package ai

// ModelPreset represents the model usage preset
type ModelPreset string

const (
	PresetCreative ModelPreset = "creative"
	PresetPrecise  ModelPreset = "precise"
)

// ModelConfig holds model configuration
type ModelConfig struct {
	Temperature      float32
	TopP             float32
	TopK             int
	MaxOutputTokens  int
	ResponseMimeType string // "application/json" or "text/plain"
}

// GenerateMetadata contains metadata about the generation
type GenerateMetadata struct {
	Provider string
	Model    string
}

// ModelOverrides replaces preset values for a single call. Nil Temperature and
// non-positive numeric fields keep the preset value; an explicit zero
// temperature selects greedy decoding.
type ModelOverrides struct {
	Temperature     *float32
	TopP            float32
	TopK            int
	MaxOutputTokens int
}

// GenerateOptions holds options for AI generation
type GenerateOptions struct {
	Model     string
	JSONMode  bool
	Overrides *ModelOverrides
}

// Float32 returns a pointer to v.
func Float32(v float32) *float32 {
	return &v
}

// GetPresetConfig returns the configuration for a preset
func GetPresetConfig(preset ModelPreset) ModelConfig {
	switch preset {
	case PresetCreative:
		return ModelConfig{
			Temperature:     0.7,
			TopP:            0.95,
			TopK:            40,
			MaxOutputTokens: 500,
		}
	case PresetPrecise:
		return ModelConfig{
			Temperature:     0.1,
			TopP:            0.9,
			TopK:            20,
			MaxOutputTokens: 2048,
		}
	default:
		return GetPresetConfig(PresetPrecise)
	}
}

// resolveConfig applies per-call overrides on top of the preset.
func resolveConfig(preset ModelPreset, opts *GenerateOptions) ModelConfig {
	config := GetPresetConfig(preset)

	if opts != nil && opts.Overrides != nil {
		if t := opts.Overrides.Temperature; t != nil && *t >= 0 {
			config.Temperature = *t
		}
		if opts.Overrides.TopP > 0 {
			config.TopP = opts.Overrides.TopP
		}
		if opts.Overrides.TopK > 0 {
			config.TopK = opts.Overrides.TopK
		}
		if opts.Overrides.MaxOutputTokens > 0 {
			config.MaxOutputTokens = opts.Overrides.MaxOutputTokens
		}
	}

	if opts != nil && opts.JSONMode {
		config.ResponseMimeType = "application/json"
	}

	return config
}
