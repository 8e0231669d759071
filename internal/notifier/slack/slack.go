package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jsvane/pingpong/internal/metrics"
	"github.com/jsvane/pingpong/internal/notifier"
	"github.com/jsvane/pingpong/internal/pubsub"
	"github.com/jsvane/pingpong/internal/standings"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
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

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendResultNotification(result *pubsub.MatchResultMessage, dryRun bool) error {
	msg := s.formatResultNotification(result)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendLeaderboard(rows []standings.Row, dryRun bool) error {
	msg := s.formatLeaderboard(rows)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatLeaderboardResponse formats a leaderboard message for callers that
// post the message themselves.
func (s *Notifier) FormatLeaderboardResponse(rows []standings.Row) (any, error) {
	return s.formatLeaderboard(rows), nil
}

// formatResultNotification creates the Slack message for a submitted match using Block Kit.
func (s *Notifier) formatResultNotification(result *pubsub.MatchResultMessage) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏓 Match result! 🏓", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	matchLabel := fmt.Sprintf("%s vs %s on %s", result.PlayerOneName, result.PlayerTwoName, result.MatchDate)
	if result.Ordinal > 1 {
		matchLabel = fmt.Sprintf("%s (match %d of the day)", matchLabel, result.Ordinal)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", matchLabel, false, false), nil, nil))

	resultHeaderText := fmt.Sprintf("Result: %s won! 🏆", result.WinnerName)
	var resultsFields []*slack.TextBlockObject
	for i, set := range result.Sets {
		resultsFields = append(resultsFields, slack.NewTextBlockObject("plain_text", fmt.Sprintf("Set %d: %s", i+1, set), true, false))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", resultHeaderText, true, false), resultsFields, nil))

	ratingsText := fmt.Sprintf("New ratings: %s %.2f | %s %.2f",
		result.PlayerOneName, result.PlayerOneRating, result.PlayerTwoName, result.PlayerTwoRating)
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", ratingsText, false, false)))

	return slack.NewBlockMessage(blocks...)
}

// formatLeaderboard creates the Slack message for the standings table using Block Kit.
func (s *Notifier) formatLeaderboard(rows []standings.Row) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏓 Leaderboard 🏓", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(rows) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No matches recorded yet.", false, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	var lines []string
	for i, row := range rows {
		rank := fmt.Sprintf("%d.", i+1)
		switch i {
		case 0:
			rank = "🥇"
		case 1:
			rank = "🥈"
		case 2:
			rank = "🥉"
		}
		lines = append(lines, fmt.Sprintf("%s %s: %d-%d (%.1f%%), rating %.2f",
			rank, row.DisplayName, row.Wins, row.Losses, row.WinPercentage*100, row.Rating))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), false, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}
