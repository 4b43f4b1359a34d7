package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/0xilhan/Cult-scaner-v1/internal/models"
	red "github.com/0xilhan/Cult-scaner-v1/internal/redis"
	"github.com/0xilhan/Cult-scaner-v1/internal/stream/redis"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	protocol := flag.String("p", "", "Protocol to scan")
	data := flag.String("d", "", "Inline JSON ScanRequest (overrides -p)")
	stream := flag.String("stream", "scan-requests", "Stream name")
	flag.Parse()

	if *data == "" && *protocol == "" {
		fmt.Fprintln(os.Stderr, "Usage: producer -p <protocol> | producer -d '<json>'")
		flag.PrintDefaults()
		os.Exit(1)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := run(*protocol, *data, *stream); err != nil {
		log.Error().Err(err).Msg("producer failed")
		os.Exit(1)
	}
}

func run(protocol, data, stream string) error {
	_ = godotenv.Load()

	req := models.ScanRequest{Protocol: protocol}
	if data != "" {
		if err := json.Unmarshal([]byte(data), &req); err != nil {
			return err
		}
	}

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	ctx := context.Background()
	client, err := red.Connect(ctx, red.Options{
		Addr:       addr,
		Password:   os.Getenv("REDIS_PASSWORD"),
		MaxRetries: 3,
	}, &log.Logger)
	if err != nil {
		return err
	}
	defer client.Close()

	id, err := redis.PublishRequest(ctx, client, stream, req)
	if err != nil {
		return err
	}

	log.Info().Str("stream", stream).Str("id", id).Str("protocol", req.Protocol).Msg("Published successfully!")
	return nil
}
