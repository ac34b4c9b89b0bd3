package bot

import (
	"fmt"
	"strings"

	"github.com/slack-go/slack"

	"github.com/BarkinBalci/launch-tracker/internal/parser"
)

// Interactive component ids.
const (
	ActionConfirm = "confirm_launch"
	ActionIgnore  = "ignore_launch"
)

const (
	promptFallback = "Prod launch detected"
	loggedFallback = "Logged!"
	failedText     = "❌ Failed to log launch. Please check bot logs."
)

// buttonValue carries the detection through the confirm button.
type buttonValue struct {
	Retailer  string
	Tranche   string
	PageCount string
	PosterID  string
}

func (v buttonValue) String() string {
	return strings.Join([]string{v.Retailer, v.Tranche, v.PageCount, v.PosterID}, "|")
}

func parseButtonValue(s string) (buttonValue, error) {
	parts := strings.Split(s, "|")
	if len(parts) != 4 {
		return buttonValue{}, fmt.Errorf("malformed button value %q: expected 4 fields, got %d", s, len(parts))
	}
	if parts[0] == "" {
		return buttonValue{}, fmt.Errorf("malformed button value %q: empty retailer", s)
	}
	return buttonValue{Retailer: parts[0], Tranche: parts[1], PageCount: parts[2], PosterID: parts[3]}, nil
}

func promptBlocks(d parser.Detection, posterID string) []slack.Block {
	value := buttonValue{Retailer: d.Retailer, Tranche: d.Tranche, PageCount: d.PageCount, PosterID: posterID}

	confirm := slack.NewButtonBlockElement(ActionConfirm, value.String(),
		slack.NewTextBlockObject(slack.PlainTextType, "✅ Confirm & Log", true, false)).
		WithStyle(slack.StylePrimary)
	ignore := slack.NewButtonBlockElement(ActionIgnore, "",
		slack.NewTextBlockObject(slack.PlainTextType, "❌ Ignore", true, false)).
		WithStyle(slack.StyleDanger)

	return []slack.Block{
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, "🚀 *Prod Launch Detected!*", false, false), nil, nil),
		slack.NewSectionBlock(nil, []*slack.TextBlockObject{
			slack.NewTextBlockObject(slack.MarkdownType, "*Retailer:*\n"+d.Retailer, false, false),
			slack.NewTextBlockObject(slack.MarkdownType, "*Tranche:*\n"+d.Tranche, false, false),
			slack.NewTextBlockObject(slack.MarkdownType, "*Page Count:*\n"+d.PageCount, false, false),
		}, nil),
		slack.NewActionBlock("", confirm, ignore),
	}
}

func loggedBlocks(approverID, retailerName string) []slack.Block {
	text := fmt.Sprintf("✅ *Logged* by <@%s> for %s", approverID, retailerName)
	return []slack.Block{
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil),
	}
}
