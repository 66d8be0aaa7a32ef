package brackets

import "fmt"

// Graph owns every Match of one tournament edition. It is built once from the
// seeded round of 32 and is read-only afterwards; no match holds a pointer to
// another, all links go through ids resolved against the arena.
type Graph struct {
	matches map[string]*Match
	order   []string            // ids in round-major, order-minor sequence
	feeders map[string][]*Match // nextID -> feeder matches, ordered by Order
}

// NewGraph wires the full knockout stage from an already seeded first round.
// Matches numbered 2k-1 and 2k in one round feed match k of the next round;
// the two semifinals additionally feed the third-place match through the
// loser relation, which is not expressed via NextID.
func NewGraph(firstRound []*Match) (*Graph, error) {
	if len(firstRound) != MatchesInRound(RoundOf32) {
		return nil, fmt.Errorf("expected %d first-round matches, got %d", MatchesInRound(RoundOf32), len(firstRound))
	}

	g := &Graph{
		matches: make(map[string]*Match),
		feeders: make(map[string][]*Match),
	}

	for _, m := range firstRound {
		if err := g.add(m); err != nil {
			return nil, err
		}
	}

	for i := 1; i < len(KnockoutRounds); i++ {
		round := KnockoutRounds[i]
		for order := 1; order <= MatchesInRound(round); order++ {
			m := &Match{
				ID:    MatchID(round, order),
				Round: round,
				Order: order,
			}
			if round != Final {
				next := nextID(round, order)
				m.NextID = &next
			}
			if err := g.add(m); err != nil {
				return nil, err
			}
		}
	}

	// The bronze match has no NextID and no NextID-feeders; its occupants are
	// the semifinal losers, resolved specially.
	if err := g.add(&Match{ID: MatchID(ThirdPlace, 1), Round: ThirdPlace, Order: 1}); err != nil {
		return nil, err
	}

	for _, id := range g.order {
		m := g.matches[id]
		if m.NextID == nil {
			continue
		}
		g.feeders[*m.NextID] = append(g.feeders[*m.NextID], m)
	}
	for id, fs := range g.feeders {
		if len(fs) != 2 {
			return nil, fmt.Errorf("match %s has %d feeders, want 2", id, len(fs))
		}
		if fs[0].Order > fs[1].Order {
			fs[0], fs[1] = fs[1], fs[0]
		}
	}

	return g, nil
}

// nextID computes the id of the match the winner of (round, order) advances
// into: matches 2k-1 and 2k feed match k.
func nextID(round Round, order int) string {
	next := roundAfter(round)
	return MatchID(next, (order+1)/2)
}

func roundAfter(r Round) Round {
	for i, round := range KnockoutRounds {
		if round == r && i+1 < len(KnockoutRounds) {
			return KnockoutRounds[i+1]
		}
	}
	return Final
}

func (g *Graph) add(m *Match) error {
	if _, exists := g.matches[m.ID]; exists {
		return fmt.Errorf("duplicate match id %s", m.ID)
	}
	g.matches[m.ID] = m
	g.order = append(g.order, m.ID)
	return nil
}

// FindByID looks a match up by id; ok is false when the id is unknown.
func (g *Graph) FindByID(id string) (*Match, bool) {
	m, ok := g.matches[id]
	return m, ok
}

// Feeders returns the matches whose NextID points at id, first-listed feeder
// first. Round-of-32 matches and the third-place match have none.
func (g *Graph) Feeders(id string) []*Match {
	return g.feeders[id]
}

// Semifinals returns the two semifinal matches in order; they double as the
// loser-feeders of the third-place match.
func (g *Graph) Semifinals() [2]*Match {
	return [2]*Match{
		g.matches[MatchID(Semis, 1)],
		g.matches[MatchID(Semis, 2)],
	}
}

// RoundMatches returns the matches of one round in bracket order.
func (g *Graph) RoundMatches(r Round) []*Match {
	out := make([]*Match, 0, MatchesInRound(r))
	for _, id := range g.order {
		if m := g.matches[id]; m.Round == r {
			out = append(out, m)
		}
	}
	return out
}

// All returns every match (knockout chain plus third place) in bracket order.
func (g *Graph) All() []*Match {
	out := make([]*Match, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.matches[id])
	}
	return out
}
