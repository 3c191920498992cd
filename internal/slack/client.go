// internal/slack/client.go
package slack

import (
	"context"
	"encoding/base64"
	"fmt"

	slackapi "github.com/slack-go/slack"
)

// Outcome is the normalized result of one delivery attempt. Ordinary
// delivery failures (bad channel, revoked token, provider error, timeout)
// come back as Sent=false with a reason, never as an error: the dispatcher's
// per-item isolation depends on that.
type Outcome struct {
	Sent      bool
	MessageTS string // Slack message timestamp, set on success
	Reason    string // human-readable error, set on failure
}

func Success(ts string) Outcome { return Outcome{Sent: true, MessageTS: ts} }
func Failure(reason string) Outcome {
	return Outcome{Sent: false, Reason: reason}
}

// Deliverer posts one reminder message to a channel using a bot credential.
type Deliverer interface {
	Deliver(ctx context.Context, botToken, channelID, title, body string) Outcome
}

// Client delivers via the Slack Web API. A fresh API client is built per
// call because every reminder may belong to a different workspace and so
// carry a different bot token.
type Client struct{}

func NewClient() *Client { return &Client{} }

func (c *Client) Deliver(ctx context.Context, botToken, channelID, title, body string) Outcome {
	token, err := DecodeToken(botToken)
	if err != nil {
		return Failure("invalid bot token: " + err.Error())
	}

	api := slackapi.New(token)
	_, ts, err := api.PostMessageContext(ctx, channelID,
		slackapi.MsgOptionText(FormatMessage(title, body), false),
		slackapi.MsgOptionUsername("Reminder Bot"),
		slackapi.MsgOptionIconEmoji(":alarm_clock:"),
	)
	if err != nil {
		return Failure(fmt.Sprintf("slack api error: %v", err))
	}

	return Success(ts)
}

// FormatMessage renders the posted text: bold title, body on the next line.
func FormatMessage(title, body string) string {
	return fmt.Sprintf("*%s*\n%s", title, body)
}

// DecodeToken reverses the base64 encoding applied when the connection was
// stored by the OAuth flow.
func DecodeToken(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// EncodeToken is the storage-side counterpart, used by the seeder.
func EncodeToken(token string) string {
	return base64.StdEncoding.EncodeToString([]byte(token))
}

var _ Deliverer = (*Client)(nil)
