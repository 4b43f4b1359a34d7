package setup

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/0xilhan/Cult-scaner-v1/internal/config"
	"github.com/0xilhan/Cult-scaner-v1/internal/llm"
	"github.com/0xilhan/Cult-scaner-v1/internal/llm/bedrock"
	"github.com/0xilhan/Cult-scaner-v1/internal/llm/gemini"
	"github.com/0xilhan/Cult-scaner-v1/internal/scanner"
	"github.com/0xilhan/Cult-scaner-v1/internal/session"
	"github.com/rs/zerolog"
)

const (
	ProviderGemini  = "gemini"
	ProviderBedrock = "bedrock"
)

type Config struct {
	Provider            string
	GeminiAPIKey        string
	GeminiTextModel     string
	GeminiImageModel    string
	AWSRegion           string
	BedrockModelID      string
	BedrockImageModelID string
	DisableAvatars      bool
	LogLevel            string
	APIPort             string
	StreamProvider      string
	RedisAddr           string
	RedisPassword       string
	RedisMaxRetries     int
	RequestStream       string
	ReplyStream         string
	ConsumerGroup       string
	ConsumerName        string
}

type Dependencies struct {
	Scanner *scanner.Scanner
	Tracker *session.Tracker
	Logger  *zerolog.Logger
}

func LoadConfig() *Config {
	hostname, _ := os.Hostname()

	return &Config{
		Provider:            strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini)),
		GeminiAPIKey:        getEnv("GEMINI_API_KEY", os.Getenv("API_KEY")),
		GeminiTextModel:     getEnv("GEMINI_TEXT_MODEL", gemini.DefaultTextModel),
		GeminiImageModel:    getEnv("GEMINI_IMAGE_MODEL", gemini.DefaultImageModel),
		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		BedrockModelID:      getEnv("BEDROCK_MODEL_ID", ""),
		BedrockImageModelID: getEnv("BEDROCK_IMAGE_MODEL_ID", ""),
		DisableAvatars:      getEnvBool("DISABLE_AVATARS", false),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		APIPort:             getEnv("CULTSCAN_API_PORT", "18080"),
		StreamProvider:      getEnv("STREAM_PROVIDER", "redis"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RedisMaxRetries:     getEnvInt("REDIS_MAX_RETRIES", 5),
		RequestStream:       getEnv("SCAN_REQUEST_STREAM", "scan-requests"),
		ReplyStream:         getEnv("SCAN_REPLY_STREAM", "scan-outcomes"),
		ConsumerGroup:       getEnv("SCAN_CONSUMER_GROUP", "scan-workers"),
		ConsumerName:        getEnv("HOSTNAME", hostname),
	}
}

func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	researcher, illustrator, err := createProviders(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s provider: %w", cfg.Provider, err)
	}

	// Prompts and model knobs from YAML
	scannerConfig, err := config.LoadScannerConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load scanner config: %w", err)
	}
	if cfg.DisableAvatars {
		scannerConfig.Avatar.Enabled = false
	}

	// The credential is only checked when a scan starts, so a service can boot without it
	if err := researcher.Ready(); err != nil {
		logger.Warn().Err(err).Str("provider", cfg.Provider).Msg("LLM provider is not ready")
	}

	s, err := scanner.NewScanner(researcher, illustrator, scannerConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create scanner: %w", err)
	}

	return &Dependencies{
		Scanner: s,
		Tracker: session.NewTracker(s, logger),
		Logger:  logger,
	}, nil
}

func createProviders(ctx context.Context, cfg *Config) (llm.Researcher, llm.Illustrator, error) {
	switch cfg.Provider {
	case ProviderGemini, "":
		client := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiTextModel, cfg.GeminiImageModel)
		return client, client, nil
	case ProviderBedrock:
		client, err := bedrock.NewClient(ctx, cfg.AWSRegion, cfg.BedrockModelID, cfg.BedrockImageModelID)
		if err != nil {
			return nil, nil, err
		}
		if cfg.BedrockImageModelID == "" {
			return client, nil, nil
		}
		return client, client, nil
	default:
		return nil, nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		value = defaultValue
	}

	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		value = defaultValue
	}

	return value
}
