package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSlot_FirstRoundReadsStoredTeams(t *testing.T) {
	b := newTestBracket(t)
	m, ok := b.Graph().FindByID("R32-02")
	require.True(t, ok)

	assert.Equal(t, m.Team1ID, b.ResolveSlot("R32-02", 1))
	assert.Equal(t, m.Team2ID, b.ResolveSlot("R32-02", 2))
}

func TestResolveSlot_WinnerFlowsIntoNextRound(t *testing.T) {
	b := newTestBracket(t)

	// R32-01 feeds slot 1 of R16-01; its winner must surface there.
	team := b.ResolveSlot("R32-01", 1)
	require.NotNil(t, team)
	require.NoError(t, b.RecordWinner("R32-01", *team))

	got := b.ResolveSlot("R16-01", 1)
	require.NotNil(t, got)
	assert.Equal(t, *team, *got)

	// R32-02 feeds slot 2 of R16-01 and has no pick yet.
	assert.Nil(t, b.ResolveSlot("R16-01", 2))
}

func TestResolveSlot_UnrecordedFeederYieldsNil(t *testing.T) {
	b := newTestBracket(t)

	assert.Nil(t, b.ResolveSlot("R16-05", 1))
	assert.Nil(t, b.ResolveSlot("QF-01", 2))
	assert.Nil(t, b.ResolveSlot("F-01", 1))
}

func TestResolveSlot_NeverErrors(t *testing.T) {
	b := newTestBracket(t)

	assert.Nil(t, b.ResolveSlot("nope", 1))
	assert.Nil(t, b.ResolveSlot("R32-01", 0))
	assert.Nil(t, b.ResolveSlot("R32-01", 3))
}

func TestResolveSlot_ThirdPlaceReadsSemifinalLosers(t *testing.T) {
	b := newTestBracket(t)

	// Nothing resolved yet: the bronze match is fully open.
	assert.Nil(t, b.ResolveSlot("TP-01", 1))
	assert.Nil(t, b.ResolveSlot("TP-01", 2))

	pickThrough(t, b, RoundOf32, RoundOf16, Quarters)

	sf1t1 := b.ResolveSlot("SF-01", 1)
	sf1t2 := b.ResolveSlot("SF-01", 2)
	require.NotNil(t, sf1t1)
	require.NotNil(t, sf1t2)

	// Only one semifinal decided: only the matching bronze slot resolves.
	require.NoError(t, b.RecordWinner("SF-01", *sf1t1))
	got := b.ResolveSlot("TP-01", 1)
	require.NotNil(t, got)
	assert.Equal(t, *sf1t2, *got, "bronze slot 1 must hold the first semifinal's loser")
	assert.Nil(t, b.ResolveSlot("TP-01", 2))

	sf2t2 := b.ResolveSlot("SF-02", 2)
	require.NotNil(t, sf2t2)
	require.NoError(t, b.RecordWinner("SF-02", *sf2t2))
	got = b.ResolveSlot("TP-01", 2)
	require.NotNil(t, got)
	assert.Equal(t, *b.ResolveSlot("SF-02", 1), *got, "bronze slot 2 must hold the second semifinal's loser")
}

func TestSummary_ReconstructsEveryRound(t *testing.T) {
	b := newTestBracket(t)
	pickThrough(t, b, RoundOf32, RoundOf16)

	summary := b.Summary()
	require.Len(t, summary, 6)

	assert.Equal(t, RoundOf32, summary[0].Round)
	assert.Len(t, summary[0].Matches, 16)
	for _, v := range summary[0].Matches {
		require.NotNil(t, v.WinnerID)
	}

	assert.Equal(t, Quarters, summary[2].Round)
	for _, v := range summary[2].Matches {
		assert.NotNil(t, v.Team1ID, "quarterfinals are resolvable after R16 picks")
		assert.Nil(t, v.WinnerID)
	}

	assert.Equal(t, ThirdPlace, summary[5].Round)
	require.Len(t, summary[5].Matches, 1)
	assert.Nil(t, summary[5].Matches[0].Team1ID)
}
