package bracket_test

import (
	"testing"

	"github.com/rallyhq/courtplan/internal/bracket"
	"github.com/rallyhq/courtplan/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResults() map[string]bracket.Result {
	return map[string]bracket.Result{
		"M5": {MatchCode: "M5", Winner: "Falcons", Loser: "Otters"},
		"A3": {MatchCode: "A3", Winner: "Herons"},
	}
}

func TestResolvePlaceholder(t *testing.T) {
	results := testResults()

	name, err := bracket.ResolvePlaceholder("winner of M5", results)
	require.NoError(t, err)
	assert.Equal(t, "Falcons", name)

	name, err = bracket.ResolvePlaceholder("loser of M5", results)
	require.NoError(t, err)
	assert.Equal(t, "Otters", name)

	// Case and surrounding whitespace do not matter.
	name, err = bracket.ResolvePlaceholder("  Winner of M5 ", results)
	require.NoError(t, err)
	assert.Equal(t, "Falcons", name)
}

func TestResolvePlaceholderLiteralPassthrough(t *testing.T) {
	name, err := bracket.ResolvePlaceholder("Falcons", testResults())
	require.NoError(t, err)
	assert.Equal(t, "Falcons", name)

	// Only the exact "X of Y" grammar is treated as a placeholder.
	name, err = bracket.ResolvePlaceholder("Winners FC", testResults())
	require.NoError(t, err)
	assert.Equal(t, "Winners FC", name)
}

func TestResolvePlaceholderMissingResult(t *testing.T) {
	_, err := bracket.ResolvePlaceholder("winner of M9", testResults())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "M9")

	// A3 has a winner but no recorded loser.
	_, err = bracket.ResolvePlaceholder("loser of A3", testResults())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no loser")
}

func TestResolveTemplates(t *testing.T) {
	templates := []schedule.MatchTemplate{
		{MatchNumber: 1, MatchCode: "F1", Team1: "winner of M5", Team2: "winner of A3", DayNumber: 2},
		{MatchNumber: 2, MatchCode: "F2", Team1: "loser of M5", Team2: "Kestrels", DayNumber: 2},
	}

	resolved, err := bracket.ResolveTemplates(templates, testResults())
	require.NoError(t, err)

	assert.Equal(t, "Falcons", resolved[0].Team1)
	assert.Equal(t, "Herons", resolved[0].Team2)
	assert.Equal(t, "Otters", resolved[1].Team1)
	assert.Equal(t, "Kestrels", resolved[1].Team2)

	// The caller's slice keeps its placeholders.
	assert.Equal(t, "winner of M5", templates[0].Team1)
}

func TestResolveTemplatesNamesFailingMatch(t *testing.T) {
	templates := []schedule.MatchTemplate{
		{MatchNumber: 1, MatchCode: "F1", Team1: "winner of M9", Team2: "Kestrels", DayNumber: 2},
	}

	_, err := bracket.ResolveTemplates(templates, testResults())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "match F1")
}
