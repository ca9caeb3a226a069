package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"northpole/wishhub/internal/model"
	"northpole/wishhub/internal/repository"
)

// Notifier receives fire-and-forget (user, wish id) events for external
// indexers. Delivery failures must not fail the originating operation;
// the service logs and moves on.
type Notifier interface {
	WishAdded(ctx context.Context, user string, wishID uint32) error
	WishFulfilled(ctx context.Context, user string, wishID uint32) error
}

type eventPayload struct {
	Kind   model.EventKind `json:"kind"`
	UserID string          `json:"user_id"`
	WishID uint32          `json:"wish_id"`
}

// redisNotifier publishes JSON payloads on a pub/sub channel.
type redisNotifier struct {
	client  *redis.Client
	channel string
}

func NewRedisNotifier(client *redis.Client, channel string) Notifier {
	return &redisNotifier{client: client, channel: channel}
}

func (n *redisNotifier) publish(ctx context.Context, kind model.EventKind, user string, wishID uint32) error {
	raw, err := json.Marshal(eventPayload{Kind: kind, UserID: user, WishID: wishID})
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return n.client.Publish(ctx, n.channel, raw).Err()
}

func (n *redisNotifier) WishAdded(ctx context.Context, user string, wishID uint32) error {
	return n.publish(ctx, model.EventWishAdded, user, wishID)
}

func (n *redisNotifier) WishFulfilled(ctx context.Context, user string, wishID uint32) error {
	return n.publish(ctx, model.EventWishFulfilled, user, wishID)
}

// eventLogNotifier appends events to the postgres event log.
type eventLogNotifier struct {
	events repository.EventLogRepository
}

func NewEventLogNotifier(events repository.EventLogRepository) Notifier {
	return &eventLogNotifier{events: events}
}

func (n *eventLogNotifier) WishAdded(ctx context.Context, user string, wishID uint32) error {
	return n.events.Append(ctx, &model.WishEvent{Kind: model.EventWishAdded, UserID: user, WishID: wishID})
}

func (n *eventLogNotifier) WishFulfilled(ctx context.Context, user string, wishID uint32) error {
	return n.events.Append(ctx, &model.WishEvent{Kind: model.EventWishFulfilled, UserID: user, WishID: wishID})
}

// zapNotifier is the sink for memory mode: events only hit the log.
type zapNotifier struct {
	logger *zap.Logger
}

func NewZapNotifier(logger *zap.Logger) Notifier {
	return &zapNotifier{logger: logger}
}

func (n *zapNotifier) WishAdded(_ context.Context, user string, wishID uint32) error {
	n.logger.Info("wish added", zap.String("user", user), zap.Uint32("wish_id", wishID))
	return nil
}

func (n *zapNotifier) WishFulfilled(_ context.Context, user string, wishID uint32) error {
	n.logger.Info("wish fulfilled", zap.String("user", user), zap.Uint32("wish_id", wishID))
	return nil
}

// multiNotifier fans an event out to every sink, returning the first
// error after all sinks were attempted.
type multiNotifier struct {
	sinks []Notifier
}

func NewMultiNotifier(sinks ...Notifier) Notifier {
	return &multiNotifier{sinks: sinks}
}

func (n *multiNotifier) WishAdded(ctx context.Context, user string, wishID uint32) error {
	var first error
	for _, sink := range n.sinks {
		if err := sink.WishAdded(ctx, user, wishID); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (n *multiNotifier) WishFulfilled(ctx context.Context, user string, wishID uint32) error {
	var first error
	for _, sink := range n.sinks {
		if err := sink.WishFulfilled(ctx, user, wishID); err != nil && first == nil {
			first = err
		}
	}
	return first
}
