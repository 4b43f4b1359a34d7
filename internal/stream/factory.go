package stream

import (
	"context"
	"fmt"

	red "github.com/0xilhan/Cult-scaner-v1/internal/redis"
	"github.com/0xilhan/Cult-scaner-v1/internal/session"
	"github.com/0xilhan/Cult-scaner-v1/internal/stream/redis"
	"github.com/rs/zerolog"
)

type StreamConfig struct {
	Provider    string // only redis for now
	RedisConfig *redis.RedisStreamConfig
}

func NewStreamConsumer(
	ctx context.Context,
	cfg *StreamConfig,
	scanner session.Scanner,
	logger *zerolog.Logger,
) (StreamConsumer, error) {

	// If provider is empty, fallback to the default configuration.
	provider := cfg.Provider
	if provider == "" {
		provider = "redis"
	}

	switch provider {
	case "redis":
		if cfg.RedisConfig == nil {
			return nil, fmt.Errorf("redis config required")
		}

		client, err := red.Connect(ctx, red.Options{
			Addr:       cfg.RedisConfig.RedisAddr,
			Password:   cfg.RedisConfig.RedisPassword,
			MaxRetries: cfg.RedisConfig.MaxRetries,
		}, logger)
		if err != nil {
			return nil, err
		}

		return redis.NewConsumer(client, cfg.RedisConfig, scanner, logger), nil

	default:
		return nil, fmt.Errorf("unsupported stream provider: %s", cfg.Provider)
	}
}
