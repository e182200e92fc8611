package notify

import (
	"context"
	"encoding/json"

	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/entity"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type envelope struct {
	UserId       uuid.UUID           `json:"userId"`
	Notification entity.Notification `json:"notification"`
}

// RedisSink fans messages out over a pub/sub channel so a user connected to
// any instance receives them. Channels still live in the local hub.
type RedisSink struct {
	client  *redis.Client
	channel string
	local   *Hub
}

func NewRedisSink(client *redis.Client, channel string, local *Hub) *RedisSink {
	return &RedisSink{client: client, channel: channel, local: local}
}

func (s *RedisSink) Register(userId uuid.UUID, ch Channel) func() {
	return s.local.Register(userId, ch)
}

func (s *RedisSink) Send(ctx context.Context, userId uuid.UUID, n entity.Notification) error {
	payload, err := json.Marshal(envelope{UserId: userId, Notification: n})
	if err != nil {
		return errors.Wrap(err, "failed to encode notification")
	}

	if err := s.client.Publish(ctx, s.channel, payload).Err(); err != nil {
		log.Warn().Err(err).Str("channel", s.channel).Msg("publish failed, delivering locally")
		return s.local.Send(ctx, userId, n)
	}

	return nil
}

// Run delivers published messages to the local hub until ctx is done.
func (s *RedisSink) Run(ctx context.Context) error {
	sub := s.client.Subscribe(ctx, s.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return errors.Wrapf(err, "failed to subscribe to %s", s.channel)
	}
	log.Info().Str("channel", s.channel).Msg("notification subscriber started")

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			s.dispatch(ctx, msg.Payload)
		}
	}
}

func (s *RedisSink) dispatch(ctx context.Context, payload string) {
	var e envelope
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		log.Warn().Err(err).Msg("malformed notification on channel")
		return
	}

	if err := s.local.Send(ctx, e.UserId, e.Notification); err != nil {
		log.Warn().Err(err).Str("user_id", e.UserId.String()).Msg("notification delivery failed")
	}
}
