package consumer

import (
	"github.com/BarkinBalci/launch-tracker/internal/domain"
)

// MessageParser defines the interface for parsing raw message bytes into confirmations
type MessageParser interface {
	Parse(body []byte) (*domain.Confirmation, error)
}
