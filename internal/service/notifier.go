package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Notification is the payload handed to the notification collaborator.
// Delivery is owned by the notification subsystem of the surrounding
// platform; this core only decides when to emit one.
type Notification struct {
	UserID  uint                   `json:"user_id"`
	Type    string                 `json:"type"`
	Title   string                 `json:"title"`
	Body    string                 `json:"body"`
	Link    string                 `json:"link"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// Notification types emitted by the judging core.
const (
	NotificationTypeInvitation = "hackathon.invitation"
	NotificationTypeWinner     = "hackathon.award_won"
)

// Notifier dispatches notifications to the platform's delivery layer.
// Implementations must be safe to call fire-and-forget: a dispatch failure
// must never fail the primary operation.
type Notifier interface {
	Notify(ctx context.Context, notification Notification)
}

type notificationEvent struct {
	Source       string       `json:"source"`
	Notification Notification `json:"notification"`
	SentAt       time.Time    `json:"sent_at"`
}

type eventNotifier struct {
	redis        *redis.Client
	redisChannel string
	nats         *nats.Conn
	natsSubject  string
	logger       zerolog.Logger
	nodeID       string
}

// NewEventNotifier builds a Notifier that publishes notification events to
// redis pub/sub and NATS. Either transport may be nil; publishing to none is
// a logged no-op, which keeps the memory-backend deployment self-contained.
func NewEventNotifier(redisClient *redis.Client, natsConn *nats.Conn, channelBase string, logger zerolog.Logger) Notifier {
	channel := ""
	subject := ""
	if channelBase != "" {
		channel = channelBase + ":notifications"
		subject = channelBase + ".notifications"
	}

	return &eventNotifier{
		redis:        redisClient,
		redisChannel: channel,
		nats:         natsConn,
		natsSubject:  subject,
		logger:       logger.With().Str("component", "event_notifier").Logger(),
		nodeID:       uuid.NewString(),
	}
}

func (n *eventNotifier) Notify(ctx context.Context, notification Notification) {
	event := notificationEvent{
		Source:       n.nodeID,
		Notification: notification,
		SentAt:       time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Warn().Err(err).Msg("failed to encode notification event")
		return
	}

	if n.redis != nil && n.redisChannel != "" {
		if err := n.redis.Publish(ctx, n.redisChannel, payload).Err(); err != nil {
			n.logger.Warn().Err(err).Uint("user_id", notification.UserID).Msg("failed to publish notification to redis")
		}
	}

	if n.nats != nil && n.natsSubject != "" {
		if err := n.nats.Publish(n.natsSubject, payload); err != nil {
			n.logger.Warn().Err(err).Uint("user_id", notification.UserID).Msg("failed to publish notification to nats")
		}
	}
}
