package bot

import (
	"context"
	"time"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
	"go.uber.org/zap"

	"github.com/BarkinBalci/launch-tracker/internal/dispatch"
	"github.com/BarkinBalci/launch-tracker/internal/domain"
	"github.com/BarkinBalci/launch-tracker/internal/parser"
	"github.com/BarkinBalci/launch-tracker/internal/service"
)

// Bot reacts to launch announcements and to the buttons of its own prompts
type Bot struct {
	api        SlackAPI
	parser     *parser.Parser
	dispatcher dispatch.Dispatcher
	notifier   service.Notifier
	now        func() time.Time
	log        *zap.Logger
}

// NewBot creates a new bot. notifier reports dispatch failures.
func NewBot(api SlackAPI, p *parser.Parser, dispatcher dispatch.Dispatcher, notifier service.Notifier, log *zap.Logger) *Bot {
	return &Bot{
		api:        api,
		parser:     p,
		dispatcher: dispatcher,
		notifier:   notifier,
		now:        time.Now,
		log:        log,
	}
}

// Serve handles socket mode events until ctx is done or events closes.
// Every request is acked before it is handled.
func (b *Bot) Serve(ctx context.Context, events <-chan socketmode.Event, ack func(socketmode.Request)) {
	for {
		select {
		case <-ctx.Done():
			b.log.Info("Bot shutting down")
			return
		case evt, ok := <-events:
			if !ok {
				b.log.Info("Bot event channel closed")
				return
			}
			b.handleEvent(ctx, evt, ack)
		}
	}
}

func (b *Bot) handleEvent(ctx context.Context, evt socketmode.Event, ack func(socketmode.Request)) {
	switch evt.Type {
	case socketmode.EventTypeConnecting:
		b.log.Info("Connecting to Slack")
	case socketmode.EventTypeConnected:
		b.log.Info("Connected to Slack")
	case socketmode.EventTypeConnectionError:
		b.log.Warn("Slack connection error, retrying")
	case socketmode.EventTypeEventsAPI:
		if evt.Request != nil {
			ack(*evt.Request)
		}
		apiEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
		if !ok || apiEvent.Type != slackevents.CallbackEvent {
			return
		}
		if msg, ok := apiEvent.InnerEvent.Data.(*slackevents.MessageEvent); ok {
			if err := b.HandleMessage(ctx, msg); err != nil {
				b.log.Error("Failed to handle message", zap.String("channel", msg.Channel), zap.Error(err))
			}
		}
	case socketmode.EventTypeInteractive:
		if evt.Request != nil {
			ack(*evt.Request)
		}
		callback, ok := evt.Data.(slack.InteractionCallback)
		if !ok {
			return
		}
		if err := b.HandleInteraction(ctx, callback); err != nil {
			b.log.Error("Failed to handle interaction",
				zap.String("user", callback.User.ID),
				zap.Error(err))
		}
	default:
		if evt.Request != nil {
			ack(*evt.Request)
		}
	}
}

// HandleMessage replies to a launch announcement with a confirmation prompt.
// Bot messages and edits are ignored.
func (b *Bot) HandleMessage(ctx context.Context, msg *slackevents.MessageEvent) error {
	if msg.BotID != "" || msg.SubType != "" || msg.User == "" {
		return nil
	}
	if !parser.IsLaunchAnnouncement(msg.Text) {
		return nil
	}

	detection := b.parser.Parse(msg.Text)

	_, ts, err := b.api.PostMessageContext(ctx, msg.Channel,
		slack.MsgOptionText(promptFallback, false),
		slack.MsgOptionBlocks(promptBlocks(detection, msg.User)...),
		slack.MsgOptionTS(msg.TimeStamp))
	if err != nil {
		return err
	}

	b.log.Info("Launch detected",
		zap.String("channel", msg.Channel),
		zap.String("retailer", detection.Retailer),
		zap.String("tranche", detection.Tranche),
		zap.String("page_count", detection.PageCount),
		zap.String("prompt_ts", ts))

	return nil
}

// HandleInteraction routes block actions of the confirmation prompt.
func (b *Bot) HandleInteraction(ctx context.Context, callback slack.InteractionCallback) error {
	if callback.Type != slack.InteractionTypeBlockActions {
		return nil
	}
	for _, action := range callback.ActionCallback.BlockActions {
		switch action.ActionID {
		case ActionConfirm:
			return b.confirm(ctx, callback, action.Value)
		case ActionIgnore:
			return b.ignore(ctx, callback)
		}
	}
	return nil
}

func (b *Bot) confirm(ctx context.Context, callback slack.InteractionCallback, raw string) error {
	value, err := parseButtonValue(raw)
	if err != nil {
		b.log.Warn("Dropping confirmation", zap.Error(err))
		return nil
	}

	channelID := callback.Channel.ID
	threadTS := callback.Message.ThreadTimestamp
	if threadTS == "" {
		threadTS = callback.Message.Timestamp
	}
	approverID := callback.User.ID

	c := domain.Confirmation{
		Record: domain.NewLaunchRecord(b.now(),
			value.Retailer,
			value.Tranche,
			value.PageCount,
			b.approverName(ctx, approverID),
			b.permalink(ctx, channelID, threadTS)),
		ApproverID: approverID,
		ChannelID:  channelID,
		MessageTS:  callback.Message.Timestamp,
		ThreadTS:   threadTS,
	}

	jobID, err := b.dispatcher.Dispatch(ctx, c)
	if err != nil {
		b.log.Error("Failed to dispatch launch",
			zap.String("retailer", value.Retailer),
			zap.Error(err))
		return b.notifier.Failed(ctx, c, err)
	}

	b.log.Info("Launch confirmed",
		zap.String("job_id", jobID),
		zap.String("retailer", value.Retailer),
		zap.String("approver_id", approverID),
		zap.String("poster_id", value.PosterID))

	return nil
}

func (b *Bot) ignore(ctx context.Context, callback slack.InteractionCallback) error {
	_, _, err := b.api.DeleteMessageContext(ctx, callback.Channel.ID, callback.Message.Timestamp)
	if err != nil {
		return err
	}
	b.log.Info("Launch prompt ignored",
		zap.String("channel", callback.Channel.ID),
		zap.String("user", callback.User.ID))
	return nil
}

// approverName prefers the real name, then the user name, then the id.
func (b *Bot) approverName(ctx context.Context, userID string) string {
	user, err := b.api.GetUserInfoContext(ctx, userID)
	if err != nil {
		b.log.Warn("Failed to look up approver", zap.String("user", userID), zap.Error(err))
		return userID
	}
	switch {
	case user.RealName != "":
		return user.RealName
	case user.Profile.RealName != "":
		return user.Profile.RealName
	case user.Name != "":
		return user.Name
	}
	return userID
}

func (b *Bot) permalink(ctx context.Context, channelID, ts string) string {
	link, err := b.api.GetPermalinkContext(ctx, &slack.PermalinkParameters{Channel: channelID, Ts: ts})
	if err != nil || link == "" {
		b.log.Warn("Failed to get permalink", zap.String("channel", channelID), zap.Error(err))
		return domain.LinkUnavailable
	}
	return link
}
