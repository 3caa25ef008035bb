// Package notify posts run summaries to a chat channel.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/slack-go/slack"

	"github.com/matzehuels/bumpkit/pkg/corpus"
)

// maxFailures caps the failure lines attached to one message.
const maxFailures = 10

// Message is a run summary.
type Message struct {
	Summary  string
	Failures []string
}

// Notifier delivers messages.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// FromReport summarizes a corpus pass.
func FromReport(r *corpus.Report) Message {
	return FromReports(r)
}

// FromReports summarizes passes run by one command in a single message,
// one summary line per pass. Nil reports are ignored.
func FromReports(reports ...*corpus.Report) Message {
	var msg Message
	var lines []string
	for _, r := range reports {
		if r == nil {
			continue
		}
		lines = append(lines, r.Summary())
		for _, f := range r.Failures() {
			msg.Failures = append(msg.Failures, fmt.Sprintf("%s: %s: %v", r.Step, f.Path, f.Err))
		}
	}
	msg.Summary = strings.Join(lines, "\n")
	return msg
}

// Nop discards messages.
type Nop struct{}

// Notify does nothing.
func (Nop) Notify(context.Context, Message) error { return nil }

// Slack posts to an incoming webhook.
type Slack struct {
	webhookURL string
	client     *http.Client
}

// NewSlack creates a notifier for webhookURL. A nil client uses
// http.DefaultClient.
func NewSlack(webhookURL string, client *http.Client) *Slack {
	if client == nil {
		client = http.DefaultClient
	}
	return &Slack{webhookURL: webhookURL, client: client}
}

// Notify posts msg. Failures beyond the first ten are counted, not
// listed.
func (s *Slack) Notify(ctx context.Context, msg Message) error {
	wh := &slack.WebhookMessage{Text: msg.Summary}
	if n := len(msg.Failures); n > 0 {
		lines := msg.Failures
		if n > maxFailures {
			lines = append(lines[:maxFailures:maxFailures], fmt.Sprintf("... and %d more", n-maxFailures))
		}
		wh.Attachments = []slack.Attachment{{
			Color: "danger",
			Title: fmt.Sprintf("%d failed records", n),
			Text:  strings.Join(lines, "\n"),
		}}
	}
	if err := slack.PostWebhookCustomHTTPContext(ctx, s.webhookURL, s.client, wh); err != nil {
		return fmt.Errorf("post slack webhook: %w", err)
	}
	return nil
}
