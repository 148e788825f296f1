package level

import (
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/proflevels/internal/game/property"
)

// Factory builds levels with a shared clock and logs every outcome.
// Accepted levels are logged at debug level, rejected ones at warn level with the violated rule.
type Factory struct {
	clock  Clock
	logger *zap.Logger
}

// NewFactory creates a Factory.
//
// Precondition: logger must be non-nil. A nil clock uses SystemClock.
func NewFactory(clock Clock, logger *zap.Logger) *Factory {
	if clock == nil {
		clock = SystemClock()
	}
	return &Factory{clock: clock, logger: logger}
}

// Clock returns the clock used for defaulted timestamps.
func (f *Factory) Clock() Clock { return f.clock }

// FirstLevel builds the first level of prof.
func (f *Factory) FirstLevel(prof Profession, at time.Time) (*FirstLevel, error) {
	fl, err := NewFirstLevel(f.clock, prof, at)
	if err != nil {
		f.logger.Warn("first level rejected", zap.Error(err))
		return nil, err
	}
	f.logger.Debug("first level built",
		zap.String("profession", string(prof.Code())),
		zap.Time("leveled_up_at", fl.LeveledUpAt()),
	)
	return fl, nil
}

// NextLevel validates and builds a next level of prof.
//
// Postcondition: Same as NewNextLevel; the outcome is logged.
func (f *Factory) NextLevel(prof Profession, rank Rank, increments property.Increments, at time.Time) (*NextLevel, error) {
	nl, err := NewNextLevel(f.clock, prof, rank, increments, at)
	if err != nil {
		f.logger.Warn("next level rejected",
			zap.Int("rank", rank.Value()),
			zap.Int("increments_sum", increments.Sum()),
			zap.Error(err),
		)
		return nil, err
	}
	f.logger.Debug("next level built",
		zap.String("profession", string(prof.Code())),
		zap.Int("rank", rank.Value()),
		zap.Int("strength", increments.Strength),
		zap.Int("agility", increments.Agility),
		zap.Int("knack", increments.Knack),
		zap.Int("will", increments.Will),
		zap.Int("intelligence", increments.Intelligence),
		zap.Int("charisma", increments.Charisma),
		zap.Time("leveled_up_at", nl.LeveledUpAt()),
	)
	return nl, nil
}
