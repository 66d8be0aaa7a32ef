package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requirePicksValid asserts the store invariant: every recorded winner is one
// of its match's currently resolvable occupants.
func requirePicksValid(t *testing.T, b *Bracket) {
	t.Helper()
	for matchID, winnerID := range b.Picks() {
		t1 := b.ResolveSlot(matchID, 1)
		t2 := b.ResolveSlot(matchID, 2)
		valid := (t1 != nil && *t1 == winnerID) || (t2 != nil && *t2 == winnerID)
		require.True(t, valid, "pick %s=%s no longer matches slots", matchID, winnerID)
	}
}

func TestRecordWinner_Idempotent(t *testing.T) {
	b := newTestBracket(t)
	pickThrough(t, b, RoundOf32, RoundOf16)
	before := b.Picks()

	team := b.ResolveSlot("R32-05", 1)
	require.NotNil(t, team)
	require.NoError(t, b.RecordWinner("R32-05", *team))

	assert.Equal(t, before, b.Picks(), "re-recording the same winner must change nothing")
}

func TestRecordWinner_RejectsNonOccupant(t *testing.T) {
	b := newTestBracket(t)

	err := b.RecordWinner("R32-01", "L4")
	require.ErrorIs(t, err, ErrInvalidWinner)

	err = b.RecordWinner("R16-01", "A1") // feeder undecided, slot unresolved
	require.ErrorIs(t, err, ErrInvalidWinner)

	err = b.RecordWinner("R99-01", "A1")
	require.ErrorIs(t, err, ErrMatchNotFound)

	assert.Empty(t, b.Picks())
}

func TestRecordWinner_CascadeClearsDownstreamChain(t *testing.T) {
	b := newTestBracket(t)
	pickThrough(t, b, RoundOf32, RoundOf16, Quarters, Semis)
	final := b.ResolveSlot("F-01", 1)
	require.NotNil(t, final)
	require.NoError(t, b.RecordWinner("F-01", *final))
	require.True(t, b.Complete())

	// Flip the very first match to its other occupant.
	other := b.ResolveSlot("R32-01", 2)
	require.NotNil(t, other)
	require.NoError(t, b.RecordWinner("R32-01", *other))

	// Everything downstream of R32-01 is gone.
	for _, id := range []string{"R16-01", "QF-01", "SF-01", "F-01"} {
		_, picked := b.Winner(id)
		assert.False(t, picked, "stale pick for %s survived the cascade", id)
	}

	// Matches not reachable from R32-01 keep their picks.
	for _, id := range []string{"R32-16", "R16-08", "QF-04", "SF-02"} {
		_, picked := b.Winner(id)
		assert.True(t, picked, "pick for %s should be untouched", id)
	}

	requirePicksValid(t, b)
}

func TestRecordWinner_CascadeStopsAtFirstUnpickedMatch(t *testing.T) {
	b := newTestBracket(t)
	pickThrough(t, b, RoundOf32)

	// Pick only the first round-of-16 match; quarters onward stay open.
	team := b.ResolveSlot("R16-01", 1)
	require.NotNil(t, team)
	require.NoError(t, b.RecordWinner("R16-01", *team))

	other := b.ResolveSlot("R32-02", 2)
	require.NotNil(t, other)
	require.NoError(t, b.RecordWinner("R32-02", *other))

	_, picked := b.Winner("R16-01")
	assert.False(t, picked)
	assert.Len(t, b.Picks(), 16, "one changed pick, one cascade deletion")
	requirePicksValid(t, b)
}

func TestRecordWinner_InvariantHoldsAcrossSequences(t *testing.T) {
	b := newTestBracket(t)
	pickThrough(t, b, RoundOf32, RoundOf16, Quarters, Semis)
	requirePicksValid(t, b)

	// Re-decide matches at several depths, checking after each mutation.
	for _, matchID := range []string{"SF-02", "QF-01", "R32-09", "R16-03", "R32-01"} {
		other := b.ResolveSlot(matchID, 2)
		require.NotNil(t, other, "slot 2 of %s", matchID)
		require.NoError(t, b.RecordWinner(matchID, *other))
		requirePicksValid(t, b)
	}
}

func TestRecordWinner_SemifinalChangeClearsFinalAndBronze(t *testing.T) {
	b := newTestBracket(t)
	pickThrough(t, b, RoundOf32, RoundOf16, Quarters, Semis)

	final := b.ResolveSlot("F-01", 1)
	require.NotNil(t, final)
	require.NoError(t, b.RecordWinner("F-01", *final))

	bronze := b.ResolveSlot("TP-01", 1)
	require.NotNil(t, bronze)
	require.NoError(t, b.RecordWinner("TP-01", *bronze))

	sf2Before, _ := b.Winner("SF-02")

	// Flip the first semifinal: its old loser becomes the winner.
	loser := b.ResolveSlot("TP-01", 1)
	require.NotNil(t, loser)
	require.NoError(t, b.RecordWinner("SF-01", *loser))

	_, finalPicked := b.Winner("F-01")
	assert.False(t, finalPicked, "final pick must not survive a semifinal change")

	_, bronzePicked := b.Winner("TP-01")
	assert.False(t, bronzePicked, "bronze pick referenced the old loser and must be cleared")

	sf2After, ok := b.Winner("SF-02")
	require.True(t, ok, "the other semifinal must keep its pick")
	assert.Equal(t, sf2Before, sf2After)
	requirePicksValid(t, b)
}

func TestRecordWinner_BronzePickSurvivesWhenStillALoser(t *testing.T) {
	b := newTestBracket(t)
	pickThrough(t, b, RoundOf32, RoundOf16, Quarters, Semis)

	// Pick the second semifinal's loser as bronze winner, then flip the
	// first semifinal: the picked team still loses its semifinal, so the
	// bronze pick stays.
	bronze := b.ResolveSlot("TP-01", 2)
	require.NotNil(t, bronze)
	require.NoError(t, b.RecordWinner("TP-01", *bronze))

	sf1Loser := b.ResolveSlot("TP-01", 1)
	require.NotNil(t, sf1Loser)
	require.NoError(t, b.RecordWinner("SF-01", *sf1Loser))

	got, ok := b.Winner("TP-01")
	require.True(t, ok, "bronze pick still matches a semifinal loser")
	assert.Equal(t, *bronze, got)
	requirePicksValid(t, b)
}

func TestRecordWinner_UpstreamCascadeInvalidatesBronze(t *testing.T) {
	b := newTestBracket(t)
	pickThrough(t, b, RoundOf32, RoundOf16, Quarters, Semis)

	bronze := b.ResolveSlot("TP-01", 1)
	require.NotNil(t, bronze)
	require.NoError(t, b.RecordWinner("TP-01", *bronze))

	// A quarterfinal flip clears SF-01 through the cascade, leaving the
	// bronze occupants unresolved; the bronze pick must go too.
	other := b.ResolveSlot("QF-01", 2)
	require.NotNil(t, other)
	require.NoError(t, b.RecordWinner("QF-01", *other))

	_, picked := b.Winner("TP-01")
	assert.False(t, picked)
	requirePicksValid(t, b)
}

func TestRecordWinner_FinalIsTerminal(t *testing.T) {
	b := newTestBracket(t)
	pickThrough(t, b, RoundOf32, RoundOf16, Quarters, Semis)

	champion := b.ResolveSlot("F-01", 2)
	require.NotNil(t, champion)
	require.NoError(t, b.RecordWinner("F-01", *champion))

	got, ok := b.Champion()
	require.True(t, ok)
	assert.Equal(t, *champion, got)
	assert.True(t, b.Complete())
}

func TestClearPicks(t *testing.T) {
	b := newTestBracket(t)
	pickThrough(t, b, RoundOf32, RoundOf16)

	b.ClearPicks()
	assert.Empty(t, b.Picks())
	assert.Nil(t, b.ResolveSlot("R16-01", 1))
	// The seeded first round is untouched by a restart.
	assert.NotNil(t, b.ResolveSlot("R32-01", 1))
}

func TestRestore_RoundTripsCompleteBracket(t *testing.T) {
	b := newTestBracket(t)
	pickThrough(t, b, RoundOf32, RoundOf16, Quarters, Semis)

	final := b.ResolveSlot("F-01", 1)
	require.NotNil(t, final)
	require.NoError(t, b.RecordWinner("F-01", *final))
	bronze := b.ResolveSlot("TP-01", 2)
	require.NotNil(t, bronze)
	require.NoError(t, b.RecordWinner("TP-01", *bronze))

	saved := b.Picks()

	restored, err := New(fullStandings(), defaultThirds())
	require.NoError(t, err)
	restored.Restore(saved)

	assert.Equal(t, saved, restored.Picks())
	assert.Equal(t, b.Summary(), restored.Summary())
}

func TestRestore_SkipsPicksThatNoLongerFit(t *testing.T) {
	b := newTestBracket(t)

	stale := PickStore{
		"R32-01": "Z9", // never seeded anywhere
		"F-01":   "A1", // upstream undecided
	}
	b.Restore(stale)
	assert.Empty(t, b.Picks())
}
