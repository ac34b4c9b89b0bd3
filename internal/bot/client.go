// Package bot detects launch announcements in Slack and turns a human
// confirmation into a launch job.
package bot

import (
	"context"

	"github.com/slack-go/slack"
)

// SlackAPI is the subset of *slack.Client the bot uses
type SlackAPI interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	UpdateMessageContext(ctx context.Context, channelID, timestamp string, options ...slack.MsgOption) (string, string, string, error)
	DeleteMessageContext(ctx context.Context, channel, messageTimestamp string) (string, string, error)
	GetUserInfoContext(ctx context.Context, user string) (*slack.User, error)
	GetPermalinkContext(ctx context.Context, params *slack.PermalinkParameters) (string, error)
}

var _ SlackAPI = (*slack.Client)(nil)
