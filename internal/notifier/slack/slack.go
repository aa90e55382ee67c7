package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"

	"github.com/rallyhq/courtplan/internal/metrics"
	"github.com/rallyhq/courtplan/internal/notifier"
	"github.com/rallyhq/courtplan/internal/schedule"
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

// SendCommitNotification announces a committed schedule in the channel.
func (s *Notifier) SendCommitNotification(tournamentName string, plan *schedule.TournamentSchedule, version int64, dryRun bool) error {
	msg := s.formatCommitNotification(tournamentName, plan, version)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// SendFeasibilityWarning flags a computed plan whose health report is not clean.
func (s *Notifier) SendFeasibilityWarning(tournamentName string, plan *schedule.TournamentSchedule, dryRun bool) error {
	msg := s.formatFeasibilityWarning(tournamentName, plan)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// formatCommitNotification creates the Slack message for a committed schedule using Block Kit.
func (s *Notifier) formatCommitNotification(tournamentName string, plan *schedule.TournamentSchedule, version int64) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header - The Header block itself provides bolding. No asterisks needed.
	headerText := slack.NewTextBlockObject("plain_text", "Schedule committed!", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("%s\nMatches: %d\nTotal span: %s\nVersion: %d",
		tournamentName, plan.TotalMatches, plan.TotalDuration, version)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	// Per-day summary
	var dayLines []string
	for _, day := range plan.Days {
		line := fmt.Sprintf("Day %d", day.DayNumber)
		if day.Date != "" {
			line += " (" + day.Date + ")"
		}
		line += fmt.Sprintf(": %d matches on %d courts", len(day.Matches), day.RequiredCourts)
		dayLines = append(dayLines, line)
	}
	if len(dayLines) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(dayLines, "\n"), true, false), nil, nil))
	}

	if len(plan.Warnings) > 0 {
		contextText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("Committed with %d warnings.", len(plan.Warnings)), true, false)
		blocks = append(blocks, slack.NewContextBlock("", contextText))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatFeasibilityWarning creates the Slack message for an unhealthy plan using Block Kit.
func (s *Notifier) formatFeasibilityWarning(tournamentName string, plan *schedule.TournamentSchedule) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "Schedule needs attention", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	summary := fmt.Sprintf("%s: %d warnings", tournamentName, len(plan.Warnings))
	if !plan.Feasible {
		summary = fmt.Sprintf("%s: NOT feasible, %d team conflicts", tournamentName, len(plan.TeamConflicts))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", summary, true, false), nil, nil))

	// Cap the list so a pathological plan does not blow the block limit.
	warnings := plan.Warnings
	if len(warnings) > 10 {
		warnings = warnings[:10]
	}
	if len(warnings) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(warnings, "\n"), true, false), nil, nil))
	}
	if len(plan.Warnings) > 10 {
		contextText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("...and %d more.", len(plan.Warnings)-10), true, false)
		blocks = append(blocks, slack.NewContextBlock("", contextText))
	}

	return slack.NewBlockMessage(blocks...)
}
