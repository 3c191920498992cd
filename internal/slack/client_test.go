package slack_test

import (
	"testing"

	"github.com/slackping/slackping-backend/internal/slack"
)

func TestFormatMessage(t *testing.T) {
	got := slack.FormatMessage("Standup", "Daily sync in 5 minutes")
	want := "*Standup*\nDaily sync in 5 minutes"
	if got != want {
		t.Errorf("FormatMessage = %q, want %q", got, want)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token := "xoxb-1234-abcd"
	decoded, err := slack.DecodeToken(slack.EncodeToken(token))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != token {
		t.Errorf("round trip = %q, want %q", decoded, token)
	}
}

func TestDecodeTokenRejectsGarbage(t *testing.T) {
	if _, err := slack.DecodeToken("not base64!!"); err == nil {
		t.Error("expected error for malformed token")
	}
}
