// Package level defines profession levels, the rules a level up must satisfy,
// and the ProfessionLevels aggregate holding a character's level history.
package level

import (
	"fmt"
	"reflect"
	"time"

	"github.com/cory-johannsen/proflevels/internal/game/profession"
	"github.com/cory-johannsen/proflevels/internal/game/property"
)

// Profession is the capability a level needs from its profession.
type Profession interface {
	Code() profession.Code
	IsPrimaryProperty(code property.Code) bool
	PrimaryProperties() []property.Code
}

// Level is the read surface shared by first and next levels.
type Level interface {
	ID() int64
	IsPersisted() bool
	Profession() Profession
	Rank() Rank
	IsFirstLevel() bool
	IsNextLevel() bool
	Increments() property.Increments
	BasePropertyIncrement(code property.Code) (property.Increment, bool)
	IsPrimaryProperty(code property.Code) bool
	LeveledUpAt() time.Time
}

// record holds the state common to both level variants. Only id changes after construction,
// once, when the level is stored.
type record struct {
	id          int64
	profession  Profession
	rank        Rank
	increments  property.Increments
	leveledUpAt time.Time
}

// ID returns the storage identifier; zero means the level has not been persisted.
func (r *record) ID() int64 { return r.id }

// IsPersisted reports whether the level carries a storage identifier.
func (r *record) IsPersisted() bool { return r.id != 0 }

func (r *record) Profession() Profession { return r.profession }

func (r *record) Rank() Rank { return r.rank }

func (r *record) IsFirstLevel() bool { return r.rank.IsFirstLevel() }

func (r *record) IsNextLevel() bool { return r.rank.IsNextLevel() }

func (r *record) Increments() property.Increments { return r.increments }

func (r *record) LeveledUpAt() time.Time { return r.leveledUpAt }

// BasePropertyIncrement returns the increment for code; ok is false for an unknown code.
func (r *record) BasePropertyIncrement(code property.Code) (property.Increment, bool) {
	if !code.Valid() {
		return property.Increment{}, false
	}
	return r.increments.Of(code), true
}

func (r *record) StrengthIncrement() property.Increment { return r.increments.Of(property.Strength) }

func (r *record) AgilityIncrement() property.Increment { return r.increments.Of(property.Agility) }

func (r *record) KnackIncrement() property.Increment { return r.increments.Of(property.Knack) }

func (r *record) WillIncrement() property.Increment { return r.increments.Of(property.Will) }

func (r *record) IntelligenceIncrement() property.Increment {
	return r.increments.Of(property.Intelligence)
}

func (r *record) CharismaIncrement() property.Increment { return r.increments.Of(property.Charisma) }

// IsPrimaryProperty delegates to the level's profession.
func (r *record) IsPrimaryProperty(code property.Code) bool {
	return r.profession.IsPrimaryProperty(code)
}

// FirstLevel is the rank 1 level a character starts a profession with.
// Its increments are derived from the profession: one point to each primary property.
type FirstLevel struct {
	record
}

// NewFirstLevel builds the first level of prof.
// A zero leveledUpAt is replaced with clock's current time.
//
// Postcondition: Returns a rank 1 FirstLevel, or ErrMissingProfession when prof is nil
// or a nil pointer.
func NewFirstLevel(clock Clock, prof Profession, at time.Time) (*FirstLevel, error) {
	if missingProfession(prof) {
		return nil, ErrMissingProfession
	}
	return &FirstLevel{record: record{
		profession:  prof,
		rank:        FirstLevelRank,
		increments:  property.FromCodes(prof.PrimaryProperties()...),
		leveledUpAt: leveledUpAt(clock, at),
	}}, nil
}

// RestoreFirstLevel rebuilds a persisted first level, checking that the stored
// increments still match what prof grants.
//
// Precondition: id > 0; prof must be non-nil.
// Postcondition: Returns the FirstLevel or an error wrapping ErrInvalidFirstLevelProperties.
func RestoreFirstLevel(id int64, prof Profession, increments property.Increments, at time.Time) (*FirstLevel, error) {
	fl, err := NewFirstLevel(SystemClock(), prof, at)
	if err != nil {
		return nil, err
	}
	if fl.increments != increments {
		return nil, fmt.Errorf("%w: %s first level grants %+v, got %+v",
			ErrInvalidFirstLevelProperties, prof.Code(), fl.increments, increments)
	}
	fl.id = id
	return fl, nil
}

// missingProfession reports whether prof is nil, including a nil pointer stored in the interface.
func missingProfession(prof Profession) bool {
	if prof == nil {
		return true
	}
	v := reflect.ValueOf(prof)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
