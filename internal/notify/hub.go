package notify

import (
	"context"
	"sync"

	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/entity"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type registration struct {
	ch Channel
}

// Hub keeps the latest channel per user in process.
type Hub struct {
	mu       sync.RWMutex
	channels map[uuid.UUID]*registration
}

func NewHub() *Hub {
	return &Hub{channels: make(map[uuid.UUID]*registration)}
}

func (h *Hub) Register(userId uuid.UUID, ch Channel) func() {
	reg := &registration{ch: ch}

	h.mu.Lock()
	h.channels[userId] = reg
	h.mu.Unlock()

	log.Debug().Str("user_id", userId.String()).Msg("notification channel registered")

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if h.channels[userId] == reg {
				delete(h.channels, userId)
			}
		})
	}
}

// Send drops the message when the user has no channel.
func (h *Hub) Send(ctx context.Context, userId uuid.UUID, n entity.Notification) error {
	h.mu.RLock()
	reg, ok := h.channels[userId]
	h.mu.RUnlock()

	if !ok {
		log.Debug().Str("user_id", userId.String()).Str("type", n.Type).Msg("user not connected, notification dropped")
		return nil
	}

	return errors.Wrap(reg.ch.Deliver(ctx, n), "failed to deliver notification")
}

// Connected reports whether the user has a live channel on this instance.
func (h *Hub) Connected(userId uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, ok := h.channels[userId]
	return ok
}
