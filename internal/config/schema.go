package config

// ScannerConfig holds the prompt contract with the analysis and image models
type ScannerConfig struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Avatar   AvatarConfig   `yaml:"avatar"`
}

type AnalysisConfig struct {
	SystemPrompt     string      `yaml:"system_prompt"`
	UserPrompt       string      `yaml:"user_prompt"`
	WebSearch        bool        `yaml:"web_search"`
	StructuredOutput bool        `yaml:"structured_output"`
	Model            ModelConfig `yaml:"model"`
}

type ModelConfig struct {
	MaxTokens int `yaml:"max_tokens"`
	// nil leaves the provider default in place; 0 is a valid setting
	Temperature *float64 `yaml:"temperature"`
}

// AvatarConfig drives the fallback portrait generated for profiles without a usable image
type AvatarConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Prompt         string `yaml:"prompt"`
	Workers        int    `yaml:"workers"`
	DiagnosisLimit int    `yaml:"diagnosis_limit"`
}
