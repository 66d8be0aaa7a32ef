package brackets

import (
	"fmt"
	"sort"
)

// GroupStandings maps a group letter ("A".."L") to the ordered finishing
// positions of its four teams: index 0 is the group winner, 1 the runner-up,
// 2 and 3 the non-advancing placings. Produced by the group-stage feature and
// consumed read-only here.
type GroupStandings map[string][]string

// Groups of the tournament edition, in bracket-table order.
var Groups = []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"}

const (
	TeamsPerGroup   = 4
	ThirdPlaceSlots = 8
)

// seed addresses one slot of a first-round match: a group position (winner or
// runner-up of a specific group) or one of the eight wildcard third-place slots.
type seed struct {
	group string // "" for a third-place slot
	pos   int    // 0 = winner, 1 = runner-up
	third int    // 1-based third-place slot, 0 otherwise
}

func winner(group string) seed { return seed{group: group, pos: 0} }
func runner(group string) seed { return seed{group: group, pos: 1} }
func third(slot int) seed      { return seed{third: slot} }

// seedingTable fixes the round-of-32 pairings. Eight matches host a group
// winner against a wildcard slot, four pair the remaining winners with
// runners-up and four pair runners-up with each other. The layout spreads the
// groups so that two teams from the same group cannot meet before the
// quarterfinals through the fixed pairs; wildcard collisions with the hosting
// winner's own group are handled when slots are filled.
var seedingTable = [16][2]seed{
	{winner("A"), third(1)},
	{runner("C"), runner("F")},
	{winner("C"), third(2)},
	{winner("D"), runner("B")},
	{winner("E"), third(3)},
	{runner("A"), runner("I")},
	{winner("G"), runner("H")},
	{winner("I"), third(4)},
	{winner("B"), third(5)},
	{runner("D"), runner("E")},
	{winner("F"), third(6)},
	{winner("H"), runner("G")},
	{winner("J"), third(7)},
	{runner("K"), runner("J")},
	{winner("L"), third(8)},
	{winner("K"), runner("L")},
}

// thirdSlotHosts records which group's winner hosts each wildcard slot, in
// slot order. Used to dodge same-group pairings when assigning qualifiers.
var thirdSlotHosts = [ThirdPlaceSlots]string{"A", "C", "E", "I", "B", "F", "J", "L"}

// BuildRoundOf32 derives the sixteen first-round matches from the group-stage
// standings and the set of wildcard (best third-place) qualifiers. Missing
// standings entries leave the corresponding slot nil, rendered as awaiting;
// the function is total over well-formed input and never fails at runtime
// once the inputs have passed validation.
func BuildRoundOf32(standings GroupStandings, thirdPlacePicks []string) []*Match {
	thirds := assignThirdSlots(standings, thirdPlacePicks)

	matches := make([]*Match, 0, len(seedingTable))
	for i, pair := range seedingTable {
		order := i + 1
		next := nextID(RoundOf32, order)
		m := &Match{
			ID:     MatchID(RoundOf32, order),
			Round:  RoundOf32,
			Order:  order,
			NextID: &next,
		}
		m.Team1ID = resolveSeed(pair[0], standings, thirds)
		m.Team2ID = resolveSeed(pair[1], standings, thirds)
		matches = append(matches, m)
	}
	return matches
}

func resolveSeed(s seed, standings GroupStandings, thirds [ThirdPlaceSlots]*string) *string {
	if s.third > 0 {
		return thirds[s.third-1]
	}
	group := standings[s.group]
	if s.pos >= len(group) || group[s.pos] == "" {
		return nil
	}
	id := group[s.pos]
	return &id
}

// assignThirdSlots orders the wildcard qualifiers by their group letter and
// deals them into the eight slots. When a qualifier would land in the slot
// hosted by its own group's winner it swaps with the neighbouring slot, so
// the fixed table's no-same-group goal survives any qualifier combination.
func assignThirdSlots(standings GroupStandings, picks []string) [ThirdPlaceSlots]*string {
	type qualifier struct {
		teamID string
		group  string
	}

	quals := make([]qualifier, 0, len(picks))
	for _, teamID := range picks {
		if group, ok := thirdPlaceGroup(standings, teamID); ok {
			quals = append(quals, qualifier{teamID: teamID, group: group})
		}
	}
	sort.Slice(quals, func(i, j int) bool { return quals[i].group < quals[j].group })

	var slots [ThirdPlaceSlots]*string
	for i := range quals {
		if i >= ThirdPlaceSlots {
			break
		}
		slots[i] = &quals[i].teamID
	}

	for i := 0; i < ThirdPlaceSlots; i++ {
		if slots[i] == nil {
			continue
		}
		group, _ := thirdPlaceGroup(standings, *slots[i])
		if group != thirdSlotHosts[i] {
			continue
		}
		j := i + 1
		if j >= ThirdPlaceSlots {
			j = i - 1
		}
		slots[i], slots[j] = slots[j], slots[i]
	}
	return slots
}

// thirdPlaceGroup finds the group in which teamID finished third.
func thirdPlaceGroup(standings GroupStandings, teamID string) (string, bool) {
	for _, group := range Groups {
		order := standings[group]
		if len(order) > 2 && order[2] == teamID {
			return group, true
		}
	}
	return "", false
}

// ValidateInputs checks the shape of the bracket inputs: twelve groups of four
// distinct placings and at most eight wildcard picks, each a third-place
// finisher in some group. Malformed data is a configuration error surfaced
// here, before any graph is built.
func ValidateInputs(standings GroupStandings, thirdPlacePicks []string) error {
	if len(standings) != len(Groups) {
		return fmt.Errorf("expected %d groups, got %d", len(Groups), len(standings))
	}
	for _, group := range Groups {
		order, ok := standings[group]
		if !ok {
			return fmt.Errorf("group %s missing from standings", group)
		}
		if len(order) != TeamsPerGroup {
			return fmt.Errorf("group %s has %d placings, want %d", group, len(order), TeamsPerGroup)
		}
	}
	if len(thirdPlacePicks) > ThirdPlaceSlots {
		return fmt.Errorf("at most %d third-place qualifiers allowed, got %d", ThirdPlaceSlots, len(thirdPlacePicks))
	}
	seen := make(map[string]struct{}, len(thirdPlacePicks))
	for _, teamID := range thirdPlacePicks {
		if _, dup := seen[teamID]; dup {
			return fmt.Errorf("third-place qualifier %s listed twice", teamID)
		}
		seen[teamID] = struct{}{}
		if _, ok := thirdPlaceGroup(standings, teamID); !ok {
			return fmt.Errorf("team %s is not a third-place finisher in any group", teamID)
		}
	}
	return nil
}
