package brackets

import "fmt"

// Round identifiers, ordered from the first knockout round to the final.
type Round string

const (
	RoundOf32  Round = "R32"
	RoundOf16  Round = "R16"
	Quarters   Round = "QF"
	Semis      Round = "SF"
	Final      Round = "F"
	ThirdPlace Round = "TP"
)

// KnockoutRounds lists the rounds connected by the NextID relation, in play
// order. The third-place match sits outside this chain (loser-fed).
var KnockoutRounds = []Round{RoundOf32, RoundOf16, Quarters, Semis, Final}

// MatchesInRound returns how many matches a round holds for a 32-team bracket.
func MatchesInRound(r Round) int {
	switch r {
	case RoundOf32:
		return 16
	case RoundOf16:
		return 8
	case Quarters:
		return 4
	case Semis:
		return 2
	case Final, ThirdPlace:
		return 1
	}
	return 0
}

// MatchID builds the stable identifier for a match, e.g. "R32-07" or "SF-02".
func MatchID(r Round, order int) string {
	return fmt.Sprintf("%s-%02d", r, order)
}

// Match is one node of the bracket arena. Team1ID/Team2ID are populated only
// for round-of-32 matches; every later round's occupants are computed through
// SlotResolver, never stored. NextID is a plain id reference (nil only for the
// final and the third-place match).
type Match struct {
	ID      string  `json:"id"`
	Round   Round   `json:"round"`
	Order   int     `json:"order"`
	Team1ID *string `json:"team1_id,omitempty"`
	Team2ID *string `json:"team2_id,omitempty"`
	NextID  *string `json:"next_match_id,omitempty"`
}

// IsFirstRound reports whether the match carries its teams directly.
func (m *Match) IsFirstRound() bool {
	return m.Round == RoundOf32
}
