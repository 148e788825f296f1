package level

import "errors"

// Next level validation failures. Callers discriminate them with errors.Is.
var (
	ErrMinimumLevelExceeded              = errors.New("minimum level exceeded")
	ErrMaximumLevelExceeded              = errors.New("maximum level exceeded")
	ErrNegativeNextLevelProperty         = errors.New("negative next level property")
	ErrTooHighNextLevelPropertyIncrement = errors.New("too high next level property increment")
	ErrInvalidNextLevelPropertiesSum     = errors.New("invalid next level properties sum")
)

// Construction precondition failures.
var (
	ErrMissingProfession           = errors.New("profession must not be nil")
	ErrInvalidFirstLevelProperties = errors.New("invalid first level properties")
)

// Aggregate failures.
var (
	ErrMissingCharacter           = errors.New("character id must not be empty")
	ErrMissingLevel               = errors.New("level must not be nil")
	ErrMultiProfessionsProhibited = errors.New("multiple professions are prohibited")
	ErrInvalidNextLevelRank       = errors.New("invalid next level rank")
	ErrLevelAlreadyOwned          = errors.New("level already belongs to profession levels")
	ErrLevelNotOwned              = errors.New("level does not belong to profession levels")
	ErrLevelAlreadyPersisted      = errors.New("level already persisted")
)
