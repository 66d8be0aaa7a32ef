package brackets

import (
	"errors"
	"fmt"
)

var (
	ErrMatchNotFound = errors.New("match not found in bracket")
	ErrInvalidWinner = errors.New("team is not a current occupant of this match")
)

// Bracket couples the immutable match graph of one tournament edition with
// one user's pick store. All mutation goes through RecordWinner so the
// downstream cascade runs as part of every change and the store can never
// hold a pick whose team is no longer a legal occupant of its match.
type Bracket struct {
	graph *Graph
	picks PickStore
}

// New builds a Bracket from group-stage standings and the wildcard picks.
// Inputs are assumed well-formed (see ValidateInputs); incomplete standings
// merely leave slots unresolved.
func New(standings GroupStandings, thirdPlacePicks []string) (*Bracket, error) {
	graph, err := NewGraph(BuildRoundOf32(standings, thirdPlacePicks))
	if err != nil {
		return nil, err
	}
	return &Bracket{graph: graph, picks: make(PickStore)}, nil
}

// Graph exposes the read-only match arena.
func (b *Bracket) Graph() *Graph {
	return b.graph
}

// Picks returns a copy of the current pick store.
func (b *Bracket) Picks() PickStore {
	return b.picks.Clone()
}

// ResolveSlot reports the current occupant of a match slot, nil when open.
func (b *Bracket) ResolveSlot(matchID string, slot int) *string {
	return ResolveSlot(b.graph, b.picks, matchID, slot)
}

// Winner returns the recorded winner for a match, if any.
func (b *Bracket) Winner(matchID string) (string, bool) {
	return b.picks.Winner(matchID)
}

// RecordWinner stores winnerID as the winner of matchID. Re-recording the
// same winner is a no-op. Any other change deletes every recorded pick
// downstream of the match (their slot composition is now stale) and then
// re-validates the third-place pick against the current semifinal losers.
func (b *Bracket) RecordWinner(matchID, winnerID string) error {
	m, ok := b.graph.FindByID(matchID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}
	if current, ok := b.picks.Winner(matchID); ok && current == winnerID {
		return nil
	}
	if !b.occupies(matchID, winnerID) {
		return fmt.Errorf("%w: %s in %s", ErrInvalidWinner, winnerID, matchID)
	}

	b.picks[matchID] = winnerID
	b.cascade(m)
	b.revalidateThirdPlace()
	return nil
}

func (b *Bracket) occupies(matchID, teamID string) bool {
	for slot := 1; slot <= 2; slot++ {
		if t := b.ResolveSlot(matchID, slot); t != nil && *t == teamID {
			return true
		}
	}
	return false
}

// cascade walks the NextID chain forward from m, erasing recorded picks.
// It stops at the final or at the first downstream match with nothing to
// clear; anything further was derived from an already-cleared pick.
func (b *Bracket) cascade(m *Match) {
	for m.NextID != nil {
		next, ok := b.graph.FindByID(*m.NextID)
		if !ok {
			return
		}
		if _, picked := b.picks.Winner(next.ID); !picked {
			return
		}
		delete(b.picks, next.ID)
		m = next
	}
}

// revalidateThirdPlace clears the bronze-match pick unless the picked team is
// still one of the current semifinal losers. Purely a function of state; it
// runs after every mutation rather than only on semifinal changes, so a
// cascade that clears a semifinal upstream invalidates the bronze pick too.
func (b *Bracket) revalidateThirdPlace() {
	tpID := MatchID(ThirdPlace, 1)
	picked, ok := b.picks.Winner(tpID)
	if !ok {
		return
	}
	for slot := 1; slot <= 2; slot++ {
		if t := b.ResolveSlot(tpID, slot); t != nil && *t == picked {
			return
		}
	}
	delete(b.picks, tpID)
}

// ClearPicks restarts the game, leaving standings and graph untouched.
func (b *Bracket) ClearPicks() {
	b.picks = make(PickStore)
}

// Complete reports whether a champion has been recorded.
func (b *Bracket) Complete() bool {
	_, ok := b.picks.Winner(MatchID(Final, 1))
	return ok
}

// Champion returns the recorded winner of the final, if any.
func (b *Bracket) Champion() (string, bool) {
	return b.picks.Winner(MatchID(Final, 1))
}

// Restore replays a serialized pick set onto a fresh bracket. Picks are
// applied in round order so every upstream decision is in place before the
// matches it feeds; picks that no longer fit the graph are skipped rather
// than surfaced, matching the cascade's delete-not-reconcile stance.
func (b *Bracket) Restore(picks PickStore) {
	b.ClearPicks()
	for _, round := range KnockoutRounds {
		for _, m := range b.graph.RoundMatches(round) {
			if w, ok := picks.Winner(m.ID); ok {
				_ = b.RecordWinner(m.ID, w)
			}
		}
	}
	tpID := MatchID(ThirdPlace, 1)
	if w, ok := picks.Winner(tpID); ok {
		_ = b.RecordWinner(tpID, w)
	}
}
