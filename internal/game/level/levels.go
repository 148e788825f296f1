package level

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/proflevels/internal/game/property"
)

// ProfessionLevels is the ordered level history of one character's profession.
//
// Invariant: first is non-nil; next[i] has rank i+2 and the profession of first;
// every next level back-references this aggregate.
type ProfessionLevels struct {
	id          int64
	characterID uuid.UUID
	first       *FirstLevel
	next        []*NextLevel
}

// NewProfessionLevels starts a level history for characterID with its first level.
//
// Precondition: characterID must not be uuid.Nil; first must be non-nil.
// Postcondition: Returns an aggregate at rank 1 or a non-nil error.
func NewProfessionLevels(characterID uuid.UUID, first *FirstLevel) (*ProfessionLevels, error) {
	if characterID == uuid.Nil {
		return nil, ErrMissingCharacter
	}
	if first == nil {
		return nil, fmt.Errorf("%w: first level is required", ErrMissingLevel)
	}
	return &ProfessionLevels{characterID: characterID, first: first}, nil
}

// RestoreProfessionLevels rebuilds a persisted aggregate, replaying next levels through AddNextLevel.
//
// Precondition: id > 0; next must be ordered by rank.
func RestoreProfessionLevels(id int64, characterID uuid.UUID, first *FirstLevel, next ...*NextLevel) (*ProfessionLevels, error) {
	pl, err := NewProfessionLevels(characterID, first)
	if err != nil {
		return nil, err
	}
	pl.id = id
	for _, n := range next {
		if err := pl.AddNextLevel(n); err != nil {
			return nil, err
		}
	}
	return pl, nil
}

// AddNextLevel appends n to the history and makes this aggregate its owner.
//
// Precondition: n must be non-nil and not owned by any aggregate.
// Postcondition: On success n.ProfessionLevels() == pl and CurrentRank() == n.Rank().
// Returns ErrMultiProfessionsProhibited when n's profession differs from the first level's,
// ErrInvalidNextLevelRank when n does not directly follow the current rank,
// ErrLevelAlreadyOwned when n already has an owner.
func (pl *ProfessionLevels) AddNextLevel(n *NextLevel) error {
	if n == nil {
		return ErrMissingLevel
	}
	if n.levels != nil {
		return ErrLevelAlreadyOwned
	}
	if got, want := n.profession.Code(), pl.first.profession.Code(); got != want {
		return fmt.Errorf("%w: character is %s, next level is %s", ErrMultiProfessionsProhibited, want, got)
	}
	if want := pl.CurrentRank() + 1; n.rank != want {
		return fmt.Errorf("%w: expected %d, got %d", ErrInvalidNextLevelRank, want, n.rank)
	}
	pl.next = append(pl.next, n)
	n.levels = pl
	return nil
}

// MarkPersisted records id as the storage identifier of n, a level already added to pl.
//
// Precondition: id > 0.
// Postcondition: n.ID() == id and n stays in pl's history. Returns ErrLevelNotOwned when n
// belongs to another aggregate or none, ErrLevelAlreadyPersisted when n already has an id.
func (pl *ProfessionLevels) MarkPersisted(n *NextLevel, id int64) error {
	if n == nil {
		return ErrMissingLevel
	}
	if n.levels != pl {
		return ErrLevelNotOwned
	}
	if n.IsPersisted() {
		return fmt.Errorf("%w: rank %d has id %d", ErrLevelAlreadyPersisted, n.rank, n.id)
	}
	n.id = id
	return nil
}

// ID returns the storage identifier; zero means the aggregate has not been persisted.
func (pl *ProfessionLevels) ID() int64 { return pl.id }

// IsPersisted reports whether the aggregate carries a storage identifier.
func (pl *ProfessionLevels) IsPersisted() bool { return pl.id != 0 }

// CharacterID returns the owning character.
func (pl *ProfessionLevels) CharacterID() uuid.UUID { return pl.characterID }

// Profession returns the profession every level of this history shares.
func (pl *ProfessionLevels) Profession() Profession { return pl.first.profession }

// FirstLevel returns the rank 1 level.
func (pl *ProfessionLevels) FirstLevel() *FirstLevel { return pl.first }

// NextLevels returns the next levels ordered by rank.
func (pl *ProfessionLevels) NextLevels() []*NextLevel {
	out := make([]*NextLevel, len(pl.next))
	copy(out, pl.next)
	return out
}

// Levels returns every level ordered by rank, first level first.
func (pl *ProfessionLevels) Levels() []Level {
	out := make([]Level, 0, len(pl.next)+1)
	out = append(out, pl.first)
	for _, n := range pl.next {
		out = append(out, n)
	}
	return out
}

// CurrentLevel returns the highest level reached.
func (pl *ProfessionLevels) CurrentLevel() Level {
	if len(pl.next) == 0 {
		return pl.first
	}
	return pl.next[len(pl.next)-1]
}

// CurrentRank returns the rank of CurrentLevel.
func (pl *ProfessionLevels) CurrentRank() Rank {
	return pl.CurrentLevel().Rank()
}

// PropertyIncrementSummary returns the total increment of code across all levels.
func (pl *ProfessionLevels) PropertyIncrementSummary(code property.Code) int {
	total := pl.first.increments.Get(code)
	for _, n := range pl.next {
		total += n.increments.Get(code)
	}
	return total
}

// Summary returns PropertyIncrementSummary for every property.
func (pl *ProfessionLevels) Summary() property.Increments {
	var sum property.Increments
	for _, c := range property.All() {
		sum = sum.With(c, pl.PropertyIncrementSummary(c))
	}
	return sum
}
