package bot

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/BarkinBalci/launch-tracker/internal/domain"
)

// Notifier reports launch outcomes in the announcement's thread
type Notifier struct {
	api SlackAPI
	log *zap.Logger
}

// NewNotifier creates a new Slack notifier
func NewNotifier(api SlackAPI, log *zap.Logger) *Notifier {
	return &Notifier{
		api: api,
		log: log,
	}
}

// Logged replaces the confirmation prompt with the approver credit.
func (n *Notifier) Logged(ctx context.Context, c domain.Confirmation) error {
	_, _, _, err := n.api.UpdateMessageContext(ctx, c.ChannelID, c.MessageTS,
		slack.MsgOptionText(loggedFallback, false),
		slack.MsgOptionBlocks(loggedBlocks(c.ApproverID, c.Record.Retailer)...))
	if err != nil {
		return fmt.Errorf("failed to update prompt: %w", err)
	}
	return nil
}

// Failed posts a failure reply in the thread. The prompt is left in place.
func (n *Notifier) Failed(ctx context.Context, c domain.Confirmation, cause error) error {
	n.log.Debug("Reporting failed launch",
		zap.String("job_id", c.JobID),
		zap.String("channel", c.ChannelID),
		zap.Error(cause))

	_, _, err := n.api.PostMessageContext(ctx, c.ChannelID,
		slack.MsgOptionText(failedText, false),
		slack.MsgOptionTS(c.ThreadTS))
	if err != nil {
		return fmt.Errorf("failed to post failure reply: %w", err)
	}
	return nil
}
