package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "configs/scanner.yaml"

//go:embed scanner.yaml
var defaultScannerYAML []byte

// DefaultScannerConfig returns the built-in prompts and knobs.
func DefaultScannerConfig() *ScannerConfig {
	var cfg ScannerConfig
	if err := yaml.Unmarshal(defaultScannerYAML, &cfg); err != nil {
		panic(fmt.Sprintf("embedded scanner config is invalid: %v", err))
	}
	applyDefaults(&cfg)
	return &cfg
}

// LoadScannerConfig overlays the YAML file at SCANNER_CONFIG_PATH (or configs/scanner.yaml)
// on top of the built-in defaults. A missing default file is not an error.
func LoadScannerConfig() (*ScannerConfig, error) {
	path := os.Getenv("SCANNER_CONFIG_PATH")
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	cfg := DefaultScannerConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML %s: %w", path, err)
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyDefaults(cfg *ScannerConfig) {
	if cfg.Analysis.Model.MaxTokens == 0 {
		cfg.Analysis.Model.MaxTokens = 8192
	}
	if cfg.Avatar.Workers <= 0 {
		cfg.Avatar.Workers = 4
	}
	if cfg.Avatar.DiagnosisLimit <= 0 {
		cfg.Avatar.DiagnosisLimit = 100
	}
}

func (c *ScannerConfig) Validate() error {
	if strings.TrimSpace(c.Analysis.SystemPrompt) == "" {
		return errors.New("analysis.system_prompt is empty")
	}
	if !strings.Contains(c.Analysis.UserPrompt, "{{.Protocol}}") {
		return errors.New("analysis.user_prompt must reference {{.Protocol}}")
	}
	if t := c.Analysis.Model.Temperature; t != nil && (*t < 0 || *t > 2) {
		return fmt.Errorf("analysis.model.temperature %f out of range [0, 2]", *t)
	}
	if c.Avatar.Enabled && strings.TrimSpace(c.Avatar.Prompt) == "" {
		return errors.New("avatar.prompt is empty while avatar generation is enabled")
	}
	return nil
}
