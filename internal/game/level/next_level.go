package level

import (
	"fmt"
	"time"

	"github.com/cory-johannsen/proflevels/internal/game/property"
)

const (
	// MaxNextLevelPropertyIncrement caps the delta of any single property at a next level.
	MaxNextLevelPropertyIncrement = 1
	// NextLevelPropertiesSum is the exact total every next level must spend.
	NextLevelPropertiesSum = 2
)

// NextLevel is a level of rank 2 to 21 gained after the first level.
type NextLevel struct {
	record
	levels *ProfessionLevels
}

// ValidateNextLevel checks rank and increments against the next level rules.
// Rules are checked in a fixed order and the first violation is returned:
// rank floor, rank ceiling, then per property (canonical order) the negative
// and cap checks, and finally the exact sum.
//
// Postcondition: Returns nil or an error wrapping exactly one of ErrMinimumLevelExceeded,
// ErrMaximumLevelExceeded, ErrNegativeNextLevelProperty,
// ErrTooHighNextLevelPropertyIncrement, ErrInvalidNextLevelPropertiesSum.
func ValidateNextLevel(rank Rank, increments property.Increments) error {
	if rank < MinimumNextLevel {
		return fmt.Errorf("%w: next level can not be lesser than %d, got %d",
			ErrMinimumLevelExceeded, MinimumNextLevel, rank)
	}
	if rank > MaximumNextLevel {
		return fmt.Errorf("%w: level can not be greater than %d, got %d",
			ErrMaximumLevelExceeded, MaximumNextLevel, rank)
	}
	for _, code := range property.All() {
		if err := validatePropertyIncrement(increments.Of(code)); err != nil {
			return err
		}
	}
	if sum := increments.Sum(); sum != NextLevelPropertiesSum {
		return fmt.Errorf("%w: sum of next level property increments has to be %d, got %d",
			ErrInvalidNextLevelPropertiesSum, NextLevelPropertiesSum, sum)
	}
	return nil
}

func validatePropertyIncrement(inc property.Increment) error {
	if inc.Value() < 0 {
		return fmt.Errorf("%w: %s increment can not be negative, got %d",
			ErrNegativeNextLevelProperty, inc.Code(), inc.Value())
	}
	if inc.Value() > MaxNextLevelPropertyIncrement {
		return fmt.Errorf("%w: %s increment has to be at most %d, got %d",
			ErrTooHighNextLevelPropertyIncrement, inc.Code(), MaxNextLevelPropertyIncrement, inc.Value())
	}
	return nil
}

// NewNextLevel validates and builds a next level of prof.
// A zero at is replaced with clock's current time; a nil clock uses the system clock.
//
// Postcondition: Returns a NextLevel with no owner and no id, or a validation error.
// A nil prof, or a nil pointer held in prof, yields ErrMissingProfession.
// No NextLevel is returned alongside an error.
func NewNextLevel(clock Clock, prof Profession, rank Rank, increments property.Increments, at time.Time) (*NextLevel, error) {
	if missingProfession(prof) {
		return nil, ErrMissingProfession
	}
	if err := ValidateNextLevel(rank, increments); err != nil {
		return nil, err
	}
	return &NextLevel{record: record{
		profession:  prof,
		rank:        rank,
		increments:  increments,
		leveledUpAt: leveledUpAt(clock, at),
	}}, nil
}

// RestoreNextLevel rebuilds a persisted next level, re-running every validation rule.
//
// Precondition: id > 0.
func RestoreNextLevel(id int64, prof Profession, rank Rank, increments property.Increments, at time.Time) (*NextLevel, error) {
	nl, err := NewNextLevel(SystemClock(), prof, rank, increments, at)
	if err != nil {
		return nil, err
	}
	nl.id = id
	return nl, nil
}

// ProfessionLevels returns the owning aggregate, or nil before the level has been added to one.
func (n *NextLevel) ProfessionLevels() *ProfessionLevels {
	return n.levels
}
