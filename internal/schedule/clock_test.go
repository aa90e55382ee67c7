package schedule_test

import (
	"encoding/json"
	"testing"

	"github.com/rallyhq/courtplan/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"09:05", 545},
		{"23:59", 1439},
	}
	for _, tc := range tests {
		c, err := schedule.ParseClock(tc.input)
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.want, int(c))
		assert.Equal(t, tc.input, c.String())
	}
}

func TestParseClockRejectsMalformedInput(t *testing.T) {
	bad := []string{"", "9:00", "09:5", "24:00", "12:60", "12-30", "12:3a", "1200"}
	for _, input := range bad {
		_, err := schedule.ParseClock(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestClockJSONRoundTrip(t *testing.T) {
	c := schedule.MustParseClock("14:30")

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, `"14:30"`, string(data))

	var back schedule.Clock
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, c, back)

	assert.Error(t, json.Unmarshal([]byte(`"25:00"`), &back))
	assert.Error(t, json.Unmarshal([]byte(`1430`), &back))
}

func TestMinutesFormatting(t *testing.T) {
	assert.Equal(t, "0:00", schedule.Minutes(0).String())
	assert.Equal(t, "0:45", schedule.Minutes(45).String())
	assert.Equal(t, "1:15", schedule.Minutes(75).String())
	assert.Equal(t, "10:05", schedule.Minutes(605).String())
}

func TestMinutesJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(schedule.Minutes(75))
	require.NoError(t, err)
	assert.Equal(t, `"1:15"`, string(data))

	var back schedule.Minutes
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, schedule.Minutes(75), back)
}

func TestMustParseClockPanicsOnBadInput(t *testing.T) {
	assert.Panics(t, func() { schedule.MustParseClock("not-a-time") })
}
