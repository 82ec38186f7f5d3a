package slack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/playtime-placeholders/internal/metrics"
	"github.com/mauv0809/playtime-placeholders/internal/notifier"
	"github.com/mauv0809/playtime-placeholders/internal/text"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// ErrNotConfigured is returned when posting without a bot token or channel.
var ErrNotConfigured = errors.New("slack client or channel ID is not configured")

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier. Without a token the Notifier can still
// format slash command responses but cannot post.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	var api slackClient
	if token != "" {
		api = slack.New(token)
	}
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}
	if s.api == nil || s.channelID == "" {
		log.Warn("Slack client or channel ID is not configured. Skipping notification.")
		return "", "", ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackMessagesFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackMessagesSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendLeaderboard(ctx context.Context, board notifier.Leaderboard, dryRun bool) error {
	msg := s.formatLeaderboard(board)
	_, _, err := s.sendMessage(ctx, msg, dryRun)
	return err
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(board notifier.Leaderboard) (any, error) {
	return s.formatLeaderboard(board), nil
}

// FormatUnavailableResponse formats an ephemeral message explaining why the
// leaderboard could not be shown.
func (s *Notifier) FormatUnavailableResponse(reason string) (any, error) {
	return s.formatUnavailable(reason), nil
}

// formatLeaderboard creates the Slack message for the playtime leaderboard using Block Kit.
func (s *Notifier) formatLeaderboard(board notifier.Leaderboard) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	header := strings.TrimSpace(text.Strip(board.Header))
	if header == "" {
		header = "Top playtime"
	}
	headerText := slack.NewTextBlockObject("plain_text", "⏱️ "+header+" ⏱️", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(board.Rows) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "Nobody has played yet.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	// Player Ranks
	for i, row := range board.Rows {
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = "🥇 "
		case 2:
			medal = "🥈 "
		case 3:
			medal = "🥉 "
		}
		rowText := medal + text.Strip(row)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", rowText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatUnavailable(reason string) slack.Message {
	msg := slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("Sorry, the leaderboard is unavailable right now: _%s_", reason), false, false), nil, nil),
	)
	msg.ResponseType = slack.ResponseTypeEphemeral
	return msg
}
