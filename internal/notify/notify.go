// Package notify delivers best-effort messages to users that are currently
// connected. Nothing is stored and nothing is retried.
package notify

import (
	"context"

	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/entity"
	"github.com/google/uuid"
)

// Channel is one live connection of a user.
type Channel interface {
	Deliver(ctx context.Context, n entity.Notification) error
}

type Sink interface {
	// Register makes ch the user's current channel. The returned func
	// removes it again, unless a newer channel replaced it meanwhile.
	Register(userId uuid.UUID, ch Channel) (unregister func())
	Send(ctx context.Context, userId uuid.UUID, n entity.Notification) error
}

// ChannelFunc adapts a plain function to Channel.
type ChannelFunc func(ctx context.Context, n entity.Notification) error

func (f ChannelFunc) Deliver(ctx context.Context, n entity.Notification) error {
	return f(ctx, n)
}
