package brackets

// MatchView is the render-ready snapshot of one match: resolved occupants
// plus the recorded winner. Nil team ids render as awaiting.
type MatchView struct {
	ID       string  `json:"id"`
	Round    Round   `json:"round"`
	Order    int     `json:"order"`
	Team1ID  *string `json:"team1_id"`
	Team2ID  *string `json:"team2_id"`
	WinnerID *string `json:"winner_id"`
	NextID   *string `json:"next_match_id,omitempty"`
}

// RoundSummary groups the views of one round in bracket order.
type RoundSummary struct {
	Round   Round       `json:"round"`
	Matches []MatchView `json:"matches"`
}

// View snapshots a single match.
func (b *Bracket) View(matchID string) (MatchView, bool) {
	m, ok := b.graph.FindByID(matchID)
	if !ok {
		return MatchView{}, false
	}
	return b.view(m), true
}

func (b *Bracket) view(m *Match) MatchView {
	v := MatchView{
		ID:      m.ID,
		Round:   m.Round,
		Order:   m.Order,
		Team1ID: b.ResolveSlot(m.ID, 1),
		Team2ID: b.ResolveSlot(m.ID, 2),
		NextID:  m.NextID,
	}
	if w, ok := b.Winner(m.ID); ok {
		v.WinnerID = &w
	}
	return v
}

// Summary reconstructs every round's pairings and winners for display,
// knockout chain first, third-place match last.
func (b *Bracket) Summary() []RoundSummary {
	out := make([]RoundSummary, 0, len(KnockoutRounds)+1)
	for _, round := range KnockoutRounds {
		rs := RoundSummary{Round: round}
		for _, m := range b.graph.RoundMatches(round) {
			rs.Matches = append(rs.Matches, b.view(m))
		}
		out = append(out, rs)
	}
	tp := RoundSummary{Round: ThirdPlace}
	for _, m := range b.graph.RoundMatches(ThirdPlace) {
		tp.Matches = append(tp.Matches, b.view(m))
	}
	return append(out, tp)
}
