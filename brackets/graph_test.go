package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGraph_RoundReduction(t *testing.T) {
	g := newTestBracket(t).Graph()

	wantCounts := map[Round]int{
		RoundOf32:  16,
		RoundOf16:  8,
		Quarters:   4,
		Semis:      2,
		Final:      1,
		ThirdPlace: 1,
	}
	for round, want := range wantCounts {
		assert.Len(t, g.RoundMatches(round), want, "round %s", round)
	}
	assert.Len(t, g.All(), 32)
}

func TestNewGraph_ConvergesOnFinal(t *testing.T) {
	g := newTestBracket(t).Graph()

	for _, m := range g.All() {
		switch m.Round {
		case Final, ThirdPlace:
			assert.Nil(t, m.NextID, "%s must not advance anywhere", m.ID)
		default:
			require.NotNil(t, m.NextID, "%s must feed a later match", m.ID)
			_, ok := g.FindByID(*m.NextID)
			assert.True(t, ok, "%s feeds unknown match %s", m.ID, *m.NextID)
		}
	}

	// Every chain from the first round terminates at the final.
	for _, m := range g.RoundMatches(RoundOf32) {
		hops := 0
		for m.NextID != nil {
			next, ok := g.FindByID(*m.NextID)
			require.True(t, ok)
			m = next
			hops++
			require.LessOrEqual(t, hops, len(KnockoutRounds), "cycle detected")
		}
		assert.Equal(t, MatchID(Final, 1), m.ID)
	}
}

func TestGraph_Feeders(t *testing.T) {
	g := newTestBracket(t).Graph()

	for _, m := range g.All() {
		feeders := g.Feeders(m.ID)
		switch m.Round {
		case RoundOf32, ThirdPlace:
			assert.Empty(t, feeders, "%s must have no NextID feeders", m.ID)
		default:
			require.Len(t, feeders, 2, "match %s", m.ID)
			assert.Less(t, feeders[0].Order, feeders[1].Order, "feeders of %s out of slot order", m.ID)
			assert.Equal(t, m.ID, *feeders[0].NextID)
			assert.Equal(t, m.ID, *feeders[1].NextID)
		}
	}

	// Spot check: R32 matches 3 and 4 feed the second round-of-16 match.
	feeders := g.Feeders(MatchID(RoundOf16, 2))
	assert.Equal(t, MatchID(RoundOf32, 3), feeders[0].ID)
	assert.Equal(t, MatchID(RoundOf32, 4), feeders[1].ID)
}

func TestGraph_FindByID(t *testing.T) {
	g := newTestBracket(t).Graph()

	m, ok := g.FindByID("QF-03")
	require.True(t, ok)
	assert.Equal(t, Quarters, m.Round)
	assert.Equal(t, 3, m.Order)

	_, ok = g.FindByID("R64-01")
	assert.False(t, ok)
}

func TestGraph_Semifinals(t *testing.T) {
	g := newTestBracket(t).Graph()
	sfs := g.Semifinals()
	assert.Equal(t, "SF-01", sfs[0].ID)
	assert.Equal(t, "SF-02", sfs[1].ID)
}

func TestNewGraph_RejectsShortFirstRound(t *testing.T) {
	_, err := NewGraph(BuildRoundOf32(fullStandings(), defaultThirds())[:10])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 16 first-round matches")
}
