package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/0xilhan/Cult-scaner-v1/internal/models"
	"github.com/0xilhan/Cult-scaner-v1/internal/session"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// PayloadField is the stream entry field carrying the JSON document.
const PayloadField = "payload"

// streamClient is the subset of *redis.Client the consumer needs.
type streamClient interface {
	XGroupCreateMkStream(ctx context.Context, stream, group, start string) *redis.StatusCmd
	XReadGroup(ctx context.Context, a *redis.XReadGroupArgs) *redis.XStreamSliceCmd
	XAck(ctx context.Context, stream, group string, ids ...string) *redis.IntCmd
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

type Consumer struct {
	client       streamClient
	stream       string
	replyStream  string
	groupID      string
	consumerName string
	scanner      session.Scanner
	logger       *zerolog.Logger
}

func NewConsumer(client streamClient, cfg *RedisStreamConfig, scanner session.Scanner, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		client:       client,
		stream:       cfg.Stream,
		replyStream:  cfg.ReplyStream,
		groupID:      cfg.Group,
		consumerName: cfg.ConsumerName,
		scanner:      scanner,
		logger:       logger,
	}
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.groupID, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.stream).
		Str("reply_stream", c.replyStream).
		Str("group", c.groupID).
		Str("consumer", c.consumerName).
		Msg("Consumer started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		msgs, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.groupID,
			Consumer: c.consumerName,
			Streams:  []string{c.stream, ">"},
			Count:    1,
			Block:    2 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				// timeout, no message -> loop again
				continue
			}

			if ctx.Err() != nil {
				return ctx.Err() // context cancelled during block
			}

			c.logger.Error().Err(err).Msg("Failed to read from stream")
			continue
		}

		for _, s := range msgs {
			for _, msg := range s.Messages {
				c.process(ctx, msg)
			}
		}
	}
}

func (c *Consumer) Stop() error {
	// No-op
	return nil
}

func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	c.logger.Info().Str("id", msg.ID).Msg("Message received")

	req, err := DecodeRequest(msg)
	if err != nil && !errors.Is(err, models.ErrEmptyQuery) {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to decode message")
		c.ack(ctx, msg.ID) // bad message, ACK to skip it
		return
	}

	var result *models.Result
	if err == nil {
		result, err = c.scanner.Scan(ctx, req.Protocol)
	}
	outcome := NewOutcome(req, result, err)

	if err != nil {
		c.logger.Error().
			Err(err).
			Str("id", msg.ID).
			Str("protocol", req.Protocol).
			Msg("Scan failed")
	} else {
		c.logger.Info().
			Str("id", msg.ID).
			Str("protocol", result.Protocol).
			Int("profiles", len(result.Profiles)).
			Msg("Scan complete")
	}

	if err := c.publish(ctx, outcome); err != nil {
		// Leave the message pending so it can be claimed again
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to publish outcome")
		return
	}

	c.ack(ctx, msg.ID)
}

func (c *Consumer) publish(ctx context.Context, outcome models.ScanOutcome) error {
	payload, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("failed to encode outcome: %w", err)
	}

	return c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: c.replyStream,
		Values: map[string]any{PayloadField: string(payload)},
	}).Err()
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.stream, c.groupID, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to ACK message")
	}
}

// DecodeRequest reads a ScanRequest from the payload field of a stream entry.
// A message without request_id takes the stream entry ID. A payload that decodes but fails
// validation returns the request together with the validation error.
func DecodeRequest(msg redis.XMessage) (models.ScanRequest, error) {
	var req models.ScanRequest

	payload, ok := msg.Values[PayloadField].(string)
	if !ok {
		return req, fmt.Errorf("missing %s field", PayloadField)
	}

	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return req, fmt.Errorf("invalid payload: %w", err)
	}

	if req.RequestID == "" {
		req.RequestID = msg.ID
	}

	if err := req.Validate(); err != nil {
		return req, err
	}
	return req, nil
}

// NewOutcome builds the reply message for one scan.
func NewOutcome(req models.ScanRequest, result *models.Result, err error) models.ScanOutcome {
	outcome := models.ScanOutcome{
		RequestID:  req.RequestID,
		Protocol:   req.Protocol,
		FinishedAt: time.Now().UTC(),
	}

	if err != nil {
		outcome.Status = models.ScanStatusError
		outcome.Error = err.Error()
		return outcome
	}

	outcome.Status = models.ScanStatusSuccess
	outcome.Result = result
	return outcome
}

// PublishRequest appends a scan request to stream and returns the entry ID.
func PublishRequest(ctx context.Context, client streamClient, stream string, req models.ScanRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	return client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{PayloadField: string(payload)},
	}).Result()
}
