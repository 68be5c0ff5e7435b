package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// RoomProvisioner asks the chat subsystem to ensure a companion room exists
// for a hackathon. Room lifecycle and message delivery belong to the chat
// collaborator; this core only raises the provisioning request.
type RoomProvisioner interface {
	EnsureRoom(ctx context.Context, hackathonID uint, name string)
}

type roomEvent struct {
	RoomID      string    `json:"room_id"`
	HackathonID uint      `json:"hackathon_id"`
	Name        string    `json:"name"`
	RequestedAt time.Time `json:"requested_at"`
}

type eventRoomProvisioner struct {
	nats    *nats.Conn
	subject string
	logger  zerolog.Logger
}

// NewEventRoomProvisioner builds a RoomProvisioner publishing ensure-room
// events over NATS. A nil connection turns provisioning into a logged no-op.
func NewEventRoomProvisioner(natsConn *nats.Conn, channelBase string, logger zerolog.Logger) RoomProvisioner {
	subject := ""
	if channelBase != "" {
		subject = channelBase + ".rooms.ensure"
	}

	return &eventRoomProvisioner{
		nats:    natsConn,
		subject: subject,
		logger:  logger.With().Str("component", "room_provisioner").Logger(),
	}
}

func (p *eventRoomProvisioner) EnsureRoom(ctx context.Context, hackathonID uint, name string) {
	if p.nats == nil || p.subject == "" {
		p.logger.Debug().Uint("hackathon_id", hackathonID).Msg("room provisioning skipped, no broker configured")
		return
	}

	event := roomEvent{
		RoomID:      fmt.Sprintf("hackathon:%d", hackathonID),
		HackathonID: hackathonID,
		Name:        name,
		RequestedAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn().Err(err).Msg("failed to encode room event")
		return
	}

	if err := p.nats.Publish(p.subject, payload); err != nil {
		p.logger.Warn().Err(err).Uint("hackathon_id", hackathonID).Msg("failed to publish room provisioning event")
	}
}
