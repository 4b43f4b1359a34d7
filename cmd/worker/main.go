package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/0xilhan/Cult-scaner-v1/internal/setup"
	"github.com/0xilhan/Cult-scaner-v1/internal/setup/logger"
	"github.com/0xilhan/Cult-scaner-v1/internal/stream"
	"github.com/0xilhan/Cult-scaner-v1/internal/stream/redis"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	cfg := setup.LoadConfig()

	// Workers run unattended, log JSON
	l := logger.New(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	deps, err := setup.Wire(ctx, cfg, &l)
	if err != nil {
		l.Fatal().Err(err).Msg("Unable to load dependencies")
	}

	redisCfg := redis.NewRedisStreamConfig(
		cfg.RedisAddr,
		cfg.RedisPassword,
		cfg.RequestStream,
		cfg.ReplyStream,
		cfg.ConsumerGroup,
		cfg.ConsumerName,
	)
	redisCfg.MaxRetries = cfg.RedisMaxRetries

	streamCfg := &stream.StreamConfig{
		Provider:    cfg.StreamProvider,
		RedisConfig: redisCfg,
	}

	consumer, err := stream.NewStreamConsumer(ctx, streamCfg, deps.Scanner, &l)
	if err != nil {
		l.Fatal().Err(err).Msg("Failed to create stream consumer")
	}

	if err := consumer.Setup(ctx); err != nil {
		l.Fatal().Err(err).Msg("Failed to setup consumer")
	}

	go func() {
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			l.Error().Err(err).Msg("Consumer stopped with error")
		}
	}()

	<-ctx.Done()
	l.Info().Msg("Shutting down...")

	_ = consumer.Stop()
	l.Info().Msg("Cult Scanner worker stopped")
}
