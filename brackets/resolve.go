package brackets

// PickStore is the sparse record of user decisions: match id to the team id
// chosen as that match's winner. It is the only mutable state of the core.
type PickStore map[string]string

// Winner returns the recorded winner for a match, if any.
func (p PickStore) Winner(matchID string) (string, bool) {
	w, ok := p[matchID]
	return w, ok
}

// Clone returns an independent copy of the store.
func (p PickStore) Clone() PickStore {
	out := make(PickStore, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// ResolveSlot returns the team currently eligible to occupy slot 1 or 2 of a
// match, or nil when it is undetermined. First-round matches carry their
// teams directly; the third-place match reads the loser of the corresponding
// semifinal; every other match reads the recorded winner of the feeder whose
// NextID points at it. Resolution is a single hop (picks store terminal team
// ids, never match references) and never fails: absent data yields nil.
func ResolveSlot(g *Graph, picks PickStore, matchID string, slot int) *string {
	if slot != 1 && slot != 2 {
		return nil
	}
	m, ok := g.FindByID(matchID)
	if !ok {
		return nil
	}

	if m.IsFirstRound() {
		if slot == 1 {
			return m.Team1ID
		}
		return m.Team2ID
	}

	if m.Round == ThirdPlace {
		return semifinalLoser(g, picks, g.Semifinals()[slot-1])
	}

	feeders := g.Feeders(matchID)
	if len(feeders) < slot {
		return nil
	}
	if w, ok := picks.Winner(feeders[slot-1].ID); ok {
		return &w
	}
	return nil
}

// semifinalLoser returns whichever resolved occupant of a semifinal is not
// its recorded winner, or nil while the semifinal's own slots or winner are
// still open.
func semifinalLoser(g *Graph, picks PickStore, sf *Match) *string {
	w, ok := picks.Winner(sf.ID)
	if !ok {
		return nil
	}
	t1 := ResolveSlot(g, picks, sf.ID, 1)
	t2 := ResolveSlot(g, picks, sf.ID, 2)
	if t1 == nil || t2 == nil {
		return nil
	}
	if *t1 == w {
		return t2
	}
	if *t2 == w {
		return t1
	}
	return nil
}
