package models

// Team is an immutable reference entity of the tournament edition: a short
// code id plus display metadata for the fan site. Loaded once at startup and
// never mutated by the bracket core.
type Team struct {
	ID     string `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	Region string `json:"region" db:"region"`
	Group  string `json:"group" db:"group_letter"`

	PrimaryColor   string `json:"primary_color" db:"primary_color"`
	SecondaryColor string `json:"secondary_color" db:"secondary_color"`

	FlagKey *string `json:"-" db:"flag_key"`
	FlagURL *string `json:"flag_url,omitempty" db:"-"`
}
