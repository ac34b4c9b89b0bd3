package consumer

import (
	"context"

	"github.com/BarkinBalci/launch-tracker/internal/domain"
)

// Envelope wraps a confirmed launch with acknowledgment callbacks
type Envelope struct {
	Confirmation *domain.Confirmation
	ack          func(context.Context) error
	nack         func(context.Context) error
}

// NewEnvelope creates a new message envelope
func NewEnvelope(c *domain.Confirmation, ack, nack func(context.Context) error) *Envelope {
	return &Envelope{
		Confirmation: c,
		ack:          ack,
		nack:         nack,
	}
}

// Ack acknowledges that the launch outcome was handled
func (e *Envelope) Ack(ctx context.Context) error {
	if e.ack != nil {
		return e.ack(ctx)
	}
	return nil
}

// Nack leaves the message for redelivery
func (e *Envelope) Nack(ctx context.Context) error {
	if e.nack != nil {
		return e.nack(ctx)
	}
	return nil
}
