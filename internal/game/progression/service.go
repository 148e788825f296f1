// Package progression records level ups for characters by combining the level rules
// with a store for level histories.
package progression

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/proflevels/internal/game/level"
	"github.com/cory-johannsen/proflevels/internal/game/profession"
	"github.com/cory-johannsen/proflevels/internal/game/property"
)

// ErrUnknownProfession is returned when a profession code is not in the catalogue.
var ErrUnknownProfession = errors.New("unknown profession")

// Store persists level histories.
type Store interface {
	Create(ctx context.Context, pl *level.ProfessionLevels) (*level.ProfessionLevels, error)
	AppendNextLevel(ctx context.Context, pl *level.ProfessionLevels, nl *level.NextLevel) (*level.NextLevel, error)
	GetByCharacter(ctx context.Context, characterID uuid.UUID) (*level.ProfessionLevels, error)
}

// Summary describes where a character's profession stands.
type Summary struct {
	CharacterID uuid.UUID
	Profession  profession.Code
	Rank        level.Rank
	Levels      int
	Increments  property.Increments
}

// String renders the summary as a single human-readable line.
func (s Summary) String() string {
	parts := make([]string, 0, len(property.All()))
	for _, c := range property.All() {
		parts = append(parts, fmt.Sprintf("%s+%d", c.Abbrev(), s.Increments.Get(c)))
	}
	return fmt.Sprintf("%s %s rank %d: %s", s.CharacterID, s.Profession, s.Rank, strings.Join(parts, " "))
}

// Service records first levels and level ups.
type Service struct {
	store       Store
	factory     *level.Factory
	professions *profession.Registry
	logger      *zap.Logger
}

// NewService creates a Service.
//
// Precondition: all arguments must be non-nil.
func NewService(store Store, factory *level.Factory, professions *profession.Registry, logger *zap.Logger) *Service {
	return &Service{store: store, factory: factory, professions: professions, logger: logger}
}

// Begin starts characterID in the profession identified by code.
// A zero at uses the factory clock.
//
// Postcondition: Returns the stored rank 1 history, ErrUnknownProfession, or a store error.
func (s *Service) Begin(ctx context.Context, characterID uuid.UUID, code profession.Code, at time.Time) (*level.ProfessionLevels, error) {
	prof, ok := s.professions.Profession(code)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfession, code)
	}
	first, err := s.factory.FirstLevel(prof, at)
	if err != nil {
		return nil, err
	}
	pl, err := level.NewProfessionLevels(characterID, first)
	if err != nil {
		return nil, err
	}
	stored, err := s.store.Create(ctx, pl)
	if err != nil {
		return nil, fmt.Errorf("storing first level: %w", err)
	}
	s.logger.Info("profession started",
		zap.String("character_id", characterID.String()),
		zap.String("profession", string(code)),
	)
	return stored, nil
}

// LevelUp adds the next rank to characterID's history with the given increments.
// A zero at uses the factory clock.
//
// Postcondition: Returns the stored NextLevel, or the first violated level rule
// (see level.ValidateNextLevel), or a store error.
func (s *Service) LevelUp(ctx context.Context, characterID uuid.UUID, increments property.Increments, at time.Time) (*level.NextLevel, error) {
	pl, err := s.store.GetByCharacter(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("loading profession levels: %w", err)
	}
	rank := pl.CurrentRank() + 1
	nl, err := s.factory.NextLevel(pl.Profession(), rank, increments, at)
	if err != nil {
		return nil, err
	}
	if err := pl.AddNextLevel(nl); err != nil {
		return nil, err
	}
	stored, err := s.store.AppendNextLevel(ctx, pl, nl)
	if err != nil {
		return nil, fmt.Errorf("storing next level: %w", err)
	}
	s.logger.Info("level up recorded",
		zap.String("character_id", characterID.String()),
		zap.Int("rank", rank.Value()),
	)
	return stored, nil
}

// Summary reports the current rank and accumulated increments of characterID.
func (s *Service) Summary(ctx context.Context, characterID uuid.UUID) (Summary, error) {
	pl, err := s.store.GetByCharacter(ctx, characterID)
	if err != nil {
		return Summary{}, fmt.Errorf("loading profession levels: %w", err)
	}
	return Summary{
		CharacterID: characterID,
		Profession:  pl.Profession().Code(),
		Rank:        pl.CurrentRank(),
		Levels:      len(pl.Levels()),
		Increments:  pl.Summary(),
	}, nil
}
