package services

import "errors"

// Shared errors used across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and game rules
	ErrValidationFailed    = errors.New("validation failed")
	ErrStandingsInvalid    = errors.New("group standings are malformed")
	ErrThirdPicksInvalid   = errors.New("third-place qualifiers are invalid")
	ErrBracketIncomplete   = errors.New("bracket has no champion yet")
	ErrPredictionNameEmpty = errors.New("prediction name is required")
	ErrEmailInvalid        = errors.New("email address is invalid")
	ErrMessageEmpty        = errors.New("message body is required")

	// Conflicts
	ErrPredictionNameConflict = errors.New("prediction name is already in use")

	// Authentication / authorization
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation = errors.New("operation not allowed for the current user")

	// Entity-specific lookups
	ErrSessionNotFound    = errors.New("bracket session not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrPredictionNotFound = errors.New("prediction not found")
)
