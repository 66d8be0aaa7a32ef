package models

import (
	"time"

	"github.com/jamalben22/stadiumport/brackets"
)

// Prediction is the persisted record of one finished bracket play-through.
// The three maps are the complete externally-visible state: feeding them back
// through the seeding and replaying the picks reproduces an identical bracket.
type Prediction struct {
	ID       int    `json:"-" db:"id"`
	PublicID string `json:"public_id" db:"public_id"`
	Name     string `json:"name" db:"name"`
	Email    string `json:"-" db:"email"`

	GroupStandings  brackets.GroupStandings `json:"group_standings" db:"group_standings"`
	ThirdPlacePicks []string                `json:"third_place_picks" db:"third_place_picks"`
	KnockoutPicks   brackets.PickStore      `json:"knockout_picks" db:"knockout_picks"`

	ChampionID string    `json:"champion_id" db:"champion_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
