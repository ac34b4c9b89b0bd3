package consumer

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/BarkinBalci/launch-tracker/internal/domain"
)

// JSONConfirmationParser implements MessageParser for JSON-encoded confirmations
type JSONConfirmationParser struct{}

// NewJSONConfirmationParser creates a new JSON confirmation parser
func NewJSONConfirmationParser() *JSONConfirmationParser {
	return &JSONConfirmationParser{}
}

// Parse parses a JSON message body into a Confirmation
func (p *JSONConfirmationParser) Parse(body []byte) (*domain.Confirmation, error) {
	var c domain.Confirmation
	if err := json.Unmarshal(body, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message body: %w", err)
	}

	switch {
	case c.JobID == "":
		return nil, errors.New("missing job_id")
	case c.Record.Date == "":
		return nil, errors.New("missing record date")
	case c.Record.Retailer == "":
		return nil, errors.New("missing record retailer")
	case c.ChannelID == "":
		return nil, errors.New("missing channel_id")
	}

	return &c, nil
}
