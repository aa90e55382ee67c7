package slack

import (
	"context"
	"errors"
	"testing"

	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rallyhq/courtplan/internal/metrics"
	"github.com/rallyhq/courtplan/internal/schedule"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func testPlan(t *testing.T) *schedule.TournamentSchedule {
	t.Helper()

	templates := []schedule.MatchTemplate{
		{MatchNumber: 1, MatchCode: "A1", Team1: "Falcons", Team2: "Otters", DayNumber: 1, ExecutionPriority: 1},
		{MatchNumber: 2, MatchCode: "A2", Team1: "Herons", Team2: "Kestrels", DayNumber: 1, ExecutionPriority: 2},
	}
	plan, err := schedule.Build(templates, schedule.Settings{
		CourtCount:           1,
		MatchDurationMinutes: 15,
		BreakDurationMinutes: 5,
		DayStartTime:         schedule.MustParseClock("09:00"),
	})
	require.NoError(t, err)
	return plan
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, true)
	require.NoError(t, err)
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	postMessageCalled := false
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

func TestSendCommitNotification(t *testing.T) {
	api := &mockSlackAPI{}
	notifier := NewNotifierWithAPI(api, "C123", metrics.NewMock())

	err := notifier.SendCommitNotification("Summer Open", testPlan(t), 3, false)
	require.NoError(t, err)
}

func TestFormatCommitNotificationBlocks(t *testing.T) {
	notifier := NewNotifierWithAPI(nil, "C123", metrics.NewMock())
	plan := testPlan(t)

	msg := notifier.formatCommitNotification("Summer Open", plan, 1)

	require.NotEmpty(t, msg.Blocks.BlockSet)
	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok, "first block should be a header")
	assert.Equal(t, "Schedule committed!", header.Text.Text)

	section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok, "second block should be a section")
	assert.Contains(t, section.Text.Text, "Summer Open")
	assert.Contains(t, section.Text.Text, "Matches: 2")
}

func TestFormatFeasibilityWarningInfeasiblePlan(t *testing.T) {
	notifier := NewNotifierWithAPI(nil, "C123", metrics.NewMock())

	plan := testPlan(t)
	plan.Feasible = false
	plan.TeamConflicts = []schedule.TeamConflict{{Team: "Falcons"}}
	plan.Warnings = []string{"time conflict: Falcons double booked"}

	msg := notifier.formatFeasibilityWarning("Summer Open", plan)

	require.NotEmpty(t, msg.Blocks.BlockSet)
	section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, section.Text.Text, "NOT feasible")
}
