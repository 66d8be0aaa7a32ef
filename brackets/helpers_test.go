package brackets

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// fullStandings builds a complete group stage: teams "A1".."L4", index in the
// slice equal to finishing position.
func fullStandings() GroupStandings {
	standings := make(GroupStandings, len(Groups))
	for _, g := range Groups {
		order := make([]string, TeamsPerGroup)
		for pos := 0; pos < TeamsPerGroup; pos++ {
			order[pos] = fmt.Sprintf("%s%d", g, pos+1)
		}
		standings[g] = order
	}
	return standings
}

// defaultThirds qualifies the third-place finishers of groups A through H.
func defaultThirds() []string {
	return []string{"A3", "B3", "C3", "D3", "E3", "F3", "G3", "H3"}
}

func newTestBracket(t *testing.T) *Bracket {
	t.Helper()
	b, err := New(fullStandings(), defaultThirds())
	require.NoError(t, err)
	return b
}

// pickThrough records slot-1 occupants as winners for every match of the
// given rounds, in order, so later rounds become resolvable.
func pickThrough(t *testing.T, b *Bracket, rounds ...Round) {
	t.Helper()
	for _, round := range rounds {
		for _, m := range b.Graph().RoundMatches(round) {
			team := b.ResolveSlot(m.ID, 1)
			require.NotNil(t, team, "slot 1 of %s should be resolvable", m.ID)
			require.NoError(t, b.RecordWinner(m.ID, *team))
		}
	}
}

func teamGroup(teamID string) string {
	return teamID[:1]
}
