package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/proflevels/internal/game/level"
	"github.com/cory-johannsen/proflevels/internal/game/profession"
	"github.com/cory-johannsen/proflevels/internal/game/property"
	"github.com/cory-johannsen/proflevels/internal/storage/postgres"
	"github.com/cory-johannsen/proflevels/internal/testutil"
)

// Postgres stores microseconds; keep test timestamps at that resolution.
var startedAt = time.Date(2017, time.May, 1, 12, 0, 0, 0, time.UTC)

func setupRepo(t *testing.T) (*postgres.ProfessionLevelsRepository, *profession.Registry) {
	t.Helper()
	reg := profession.DefaultRegistry()
	return postgres.NewProfessionLevelsRepository(testutil.NewMigratedPool(t), reg), reg
}

func makeAggregate(t *testing.T, reg *profession.Registry, code profession.Code, levelUps int) *level.ProfessionLevels {
	t.Helper()
	prof, ok := reg.Profession(code)
	require.True(t, ok)
	first, err := level.NewFirstLevel(nil, prof, startedAt)
	require.NoError(t, err)
	pl, err := level.NewProfessionLevels(uuid.New(), first)
	require.NoError(t, err)
	for i := 0; i < levelUps; i++ {
		nl, err := level.NewNextLevel(nil, prof, pl.CurrentRank()+1,
			property.FromCodes(prof.PrimaryProperties()...), startedAt.Add(time.Duration(i+1)*time.Hour))
		require.NoError(t, err)
		require.NoError(t, pl.AddNextLevel(nl))
	}
	return pl
}

func TestProfessionLevelsRepository_CreateAndGet(t *testing.T) {
	repo, reg := setupRepo(t)
	ctx := context.Background()

	pl := makeAggregate(t, reg, profession.Wizard, 3)
	created, err := repo.Create(ctx, pl)
	require.NoError(t, err)

	assert.True(t, created.IsPersisted())
	assert.Equal(t, pl.CharacterID(), created.CharacterID())
	assert.Equal(t, level.Rank(4), created.CurrentRank())
	for _, l := range created.Levels() {
		assert.True(t, l.IsPersisted(), "rank %d", l.Rank())
	}

	loaded, err := repo.GetByCharacter(ctx, pl.CharacterID())
	require.NoError(t, err)
	assert.Equal(t, created.ID(), loaded.ID())
	assert.Equal(t, profession.Wizard, loaded.Profession().Code())
	assert.Equal(t, pl.Summary(), loaded.Summary())
	require.Len(t, loaded.NextLevels(), 3)
	assert.True(t, startedAt.Add(3*time.Hour).Equal(loaded.NextLevels()[2].LeveledUpAt()))
	assert.Same(t, loaded, loaded.NextLevels()[0].ProfessionLevels())
}

func TestProfessionLevelsRepository_CreateDuplicateCharacter(t *testing.T) {
	repo, reg := setupRepo(t)
	ctx := context.Background()

	pl := makeAggregate(t, reg, profession.Fighter, 0)
	_, err := repo.Create(ctx, pl)
	require.NoError(t, err)

	_, err = repo.Create(ctx, pl)
	assert.ErrorIs(t, err, postgres.ErrProfessionLevelsExist)
}

func TestProfessionLevelsRepository_GetUnknownCharacter(t *testing.T) {
	repo, _ := setupRepo(t)
	_, err := repo.GetByCharacter(context.Background(), uuid.New())
	assert.ErrorIs(t, err, postgres.ErrProfessionLevelsNotFound)
}

func TestProfessionLevelsRepository_AppendNextLevel(t *testing.T) {
	repo, reg := setupRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, makeAggregate(t, reg, profession.Priest, 1))
	require.NoError(t, err)

	nl, err := level.NewNextLevel(nil, created.Profession(), 3, property.Increments{Will: 1, Charisma: 1}, startedAt)
	require.NoError(t, err)
	require.NoError(t, created.AddNextLevel(nl))

	stored, err := repo.AppendNextLevel(ctx, created, nl)
	require.NoError(t, err)
	assert.Same(t, nl, stored)
	assert.Same(t, created, stored.ProfessionLevels())
	assert.True(t, stored.IsPersisted())
	assert.Equal(t, level.Rank(3), stored.Rank())
	assert.True(t, created.CurrentLevel().IsPersisted())
	assert.Same(t, stored, created.CurrentLevel())

	loaded, err := repo.GetByCharacter(ctx, created.CharacterID())
	require.NoError(t, err)
	assert.Equal(t, level.Rank(3), loaded.CurrentRank())
	assert.Equal(t, 3, loaded.PropertyIncrementSummary(property.Charisma))
}

func TestProfessionLevelsRepository_AppendNextLevelDuplicateRank(t *testing.T) {
	repo, reg := setupRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, makeAggregate(t, reg, profession.Thief, 0))
	require.NoError(t, err)
	// A second in-memory copy of the same history races the first one to rank 2.
	racing, err := repo.GetByCharacter(ctx, created.CharacterID())
	require.NoError(t, err)

	for _, pl := range []*level.ProfessionLevels{created, racing} {
		nl, err := level.NewNextLevel(nil, pl.Profession(), 2, property.Increments{Agility: 1, Knack: 1}, startedAt)
		require.NoError(t, err)
		require.NoError(t, pl.AddNextLevel(nl))
		_, err = repo.AppendNextLevel(ctx, pl, nl)
		if pl == racing {
			assert.ErrorIs(t, err, postgres.ErrLevelRankTaken)
		} else {
			require.NoError(t, err)
		}
	}
}

func TestProfessionLevelsRepository_AppendPreconditions(t *testing.T) {
	repo, reg := setupRepo(t)
	ctx := context.Background()

	unsaved := makeAggregate(t, reg, profession.Ranger, 1)
	_, err := repo.AppendNextLevel(ctx, unsaved, unsaved.NextLevels()[0])
	assert.ErrorIs(t, err, postgres.ErrNotPersisted)

	created, err := repo.Create(ctx, makeAggregate(t, reg, profession.Ranger, 0))
	require.NoError(t, err)
	detached, err := level.NewNextLevel(nil, created.Profession(), 2, property.Increments{Strength: 1, Knack: 1}, startedAt)
	require.NoError(t, err)
	_, err = repo.AppendNextLevel(ctx, created, detached)
	assert.ErrorIs(t, err, postgres.ErrLevelNotAttached)
}

func TestProfessionLevelsRepository_Delete(t *testing.T) {
	repo, reg := setupRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, makeAggregate(t, reg, profession.Theurgist, 2))
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, created.CharacterID()))

	_, err = repo.GetByCharacter(ctx, created.CharacterID())
	assert.ErrorIs(t, err, postgres.ErrProfessionLevelsNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, created.CharacterID()), postgres.ErrProfessionLevelsNotFound)
}

// Property: any stored history loads back with the same rank and summary.
func TestProperty_ProfessionLevelsRepository_RoundTrip(t *testing.T) {
	repo, reg := setupRepo(t)
	ctx := context.Background()

	rapid.Check(t, func(rt *rapid.T) {
		code := rapid.SampledFrom(profession.Codes()).Draw(rt, "profession")
		levelUps := rapid.IntRange(0, 20).Draw(rt, "levelUps")
		prof, _ := reg.Profession(code)

		first, err := level.NewFirstLevel(nil, prof, startedAt)
		if err != nil {
			rt.Fatal(err)
		}
		pl, err := level.NewProfessionLevels(uuid.New(), first)
		if err != nil {
			rt.Fatal(err)
		}
		props := property.All()
		for i := 0; i < levelUps; i++ {
			a := rapid.IntRange(0, len(props)-1).Draw(rt, "a")
			b := rapid.IntRange(0, len(props)-1).Filter(func(b int) bool { return b != a }).Draw(rt, "b")
			nl, err := level.NewNextLevel(nil, prof, pl.CurrentRank()+1, property.FromCodes(props[a], props[b]), startedAt)
			if err != nil {
				rt.Fatal(err)
			}
			if err := pl.AddNextLevel(nl); err != nil {
				rt.Fatal(err)
			}
		}

		if _, err := repo.Create(ctx, pl); err != nil {
			rt.Fatal(err)
		}
		loaded, err := repo.GetByCharacter(ctx, pl.CharacterID())
		if err != nil {
			rt.Fatal(err)
		}
		if loaded.CurrentRank() != pl.CurrentRank() || loaded.Summary() != pl.Summary() {
			rt.Fatalf("round trip mismatch: rank %d/%d summary %+v/%+v",
				loaded.CurrentRank(), pl.CurrentRank(), loaded.Summary(), pl.Summary())
		}
	})
}
