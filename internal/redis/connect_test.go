package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestConnect_Unreachable(t *testing.T) {
	logger := zerolog.Nop()

	// Nothing listens on port 1
	client, err := Connect(context.Background(), Options{
		Addr:       "127.0.0.1:1",
		MaxRetries: 2,
		Backoff:    time.Millisecond,
	}, &logger)

	if err == nil {
		t.Fatal("Expected connection error")
	}
	if client != nil {
		t.Error("Expected nil client on failure")
	}
}

func TestConnect_CancelledDuringBackoff(t *testing.T) {
	logger := zerolog.Nop()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := Connect(ctx, Options{
		Addr:       "127.0.0.1:1",
		MaxRetries: 5,
		Backoff:    time.Minute,
	}, &logger)

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected context deadline error, got %v", err)
	}
}
