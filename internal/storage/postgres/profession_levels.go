package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/proflevels/internal/game/level"
	"github.com/cory-johannsen/proflevels/internal/game/profession"
	"github.com/cory-johannsen/proflevels/internal/game/property"
)

// ErrProfessionLevelsNotFound is returned when a character has no stored level history.
var ErrProfessionLevelsNotFound = errors.New("profession levels not found")

// ErrProfessionLevelsExist is returned when creating a level history for a character that already has one.
var ErrProfessionLevelsExist = errors.New("profession levels already exist for character")

// ErrLevelRankTaken is returned when a level with the same rank is already stored for the character.
var ErrLevelRankTaken = errors.New("level rank already taken")

// ErrNotPersisted is returned when appending to an aggregate that has no storage identifier.
var ErrNotPersisted = errors.New("profession levels not persisted")

// ErrLevelNotAttached is returned when appending a level that is not owned by the given aggregate.
var ErrLevelNotAttached = errors.New("level does not belong to profession levels")

// ErrCorruptLevels is returned when stored rows no longer form a valid level history.
var ErrCorruptLevels = errors.New("stored profession levels are corrupt")

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// levelRow is one profession_level row.
type levelRow struct {
	id          int64
	profession  string
	rank        int
	increments  property.Increments
	leveledUpAt time.Time
}

// ProfessionLevelsRepository maps ProfessionLevels aggregates to the profession_levels
// and profession_level tables.
type ProfessionLevelsRepository struct {
	db          *pgxpool.Pool
	professions *profession.Registry
}

// NewProfessionLevelsRepository creates a ProfessionLevelsRepository backed by the given pool.
// Stored profession codes are resolved through professions.
//
// Precondition: db must be a valid, open connection pool; professions must be non-nil.
func NewProfessionLevelsRepository(db *pgxpool.Pool, professions *profession.Registry) *ProfessionLevelsRepository {
	return &ProfessionLevelsRepository{db: db, professions: professions}
}

// Create inserts pl and all of its levels in a single transaction.
//
// Precondition: pl must be non-nil and not yet persisted.
// Postcondition: Returns the stored aggregate with every id set, or ErrProfessionLevelsExist
// when the character already has a level history.
func (r *ProfessionLevelsRepository) Create(ctx context.Context, pl *level.ProfessionLevels) (*level.ProfessionLevels, error) {
	var out *level.ProfessionLevels
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var id int64
		err := tx.QueryRow(ctx, `
			INSERT INTO profession_levels (character_id, profession)
			VALUES ($1, $2)
			RETURNING id`,
			pl.CharacterID(), string(pl.Profession().Code()),
		).Scan(&id)
		if err != nil {
			if isDuplicateKeyError(err) {
				return ErrProfessionLevelsExist
			}
			return fmt.Errorf("inserting profession levels: %w", err)
		}

		levels := pl.Levels()
		rows := make([]levelRow, 0, len(levels))
		for _, l := range levels {
			row, err := insertLevel(ctx, tx, id, l)
			if err != nil {
				return err
			}
			rows = append(rows, row)
		}

		out, err = r.restore(id, pl.CharacterID(), rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AppendNextLevel stores nl as the newest level of pl.
//
// Precondition: pl must be persisted; nl must have been added to pl with AddNextLevel.
// Postcondition: Returns nl, still owned by pl, with its id set, or ErrLevelRankTaken on a duplicate rank.
func (r *ProfessionLevelsRepository) AppendNextLevel(ctx context.Context, pl *level.ProfessionLevels, nl *level.NextLevel) (*level.NextLevel, error) {
	if !pl.IsPersisted() {
		return nil, ErrNotPersisted
	}
	if nl.ProfessionLevels() != pl {
		return nil, ErrLevelNotAttached
	}
	row, err := insertLevel(ctx, r.db, pl.ID(), nl)
	if err != nil {
		return nil, err
	}
	if err := pl.MarkPersisted(nl, row.id); err != nil {
		return nil, err
	}
	return nl, nil
}

// GetByCharacter loads the level history of characterID, re-validating every stored level.
//
// Postcondition: Returns the aggregate, ErrProfessionLevelsNotFound, or an error wrapping ErrCorruptLevels.
func (r *ProfessionLevelsRepository) GetByCharacter(ctx context.Context, characterID uuid.UUID) (*level.ProfessionLevels, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		SELECT id FROM profession_levels WHERE character_id = $1`,
		characterID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfessionLevelsNotFound
		}
		return nil, fmt.Errorf("querying profession levels: %w", err)
	}

	dbRows, err := r.db.Query(ctx, `
		SELECT id, profession, level_rank,
		       strength, agility, knack, will, intelligence, charisma,
		       leveled_up_at
		FROM profession_level WHERE profession_levels_id = $1 ORDER BY level_rank ASC`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("listing profession level rows: %w", err)
	}
	defer dbRows.Close()

	rows := make([]levelRow, 0)
	for dbRows.Next() {
		var lr levelRow
		if err := dbRows.Scan(
			&lr.id, &lr.profession, &lr.rank,
			&lr.increments.Strength, &lr.increments.Agility, &lr.increments.Knack,
			&lr.increments.Will, &lr.increments.Intelligence, &lr.increments.Charisma,
			&lr.leveledUpAt,
		); err != nil {
			return nil, fmt.Errorf("scanning profession level row: %w", err)
		}
		rows = append(rows, lr)
	}
	if err := dbRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profession level rows: %w", err)
	}

	return r.restore(id, characterID, rows)
}

// Delete removes the level history of characterID.
//
// Postcondition: Returns nil on success, ErrProfessionLevelsNotFound if nothing was deleted.
func (r *ProfessionLevelsRepository) Delete(ctx context.Context, characterID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM profession_levels WHERE character_id = $1`, characterID)
	if err != nil {
		return fmt.Errorf("deleting profession levels: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfessionLevelsNotFound
	}
	return nil
}

func insertLevel(ctx context.Context, q querier, ownerID int64, l level.Level) (levelRow, error) {
	in := l.Increments()
	row := levelRow{
		profession: string(l.Profession().Code()),
		rank:       l.Rank().Value(),
		increments: in,
	}
	err := q.QueryRow(ctx, `
		INSERT INTO profession_level
			(profession_levels_id, profession, level_rank,
			 strength, agility, knack, will, intelligence, charisma,
			 leveled_up_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id, leveled_up_at`,
		ownerID, row.profession, row.rank,
		in.Strength, in.Agility, in.Knack, in.Will, in.Intelligence, in.Charisma,
		l.LeveledUpAt(),
	).Scan(&row.id, &row.leveledUpAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return levelRow{}, ErrLevelRankTaken
		}
		if isForeignKeyError(err) {
			return levelRow{}, ErrProfessionLevelsNotFound
		}
		return levelRow{}, fmt.Errorf("inserting profession level: %w", err)
	}
	return row, nil
}

func (r *ProfessionLevelsRepository) restore(id int64, characterID uuid.UUID, rows []levelRow) (*level.ProfessionLevels, error) {
	if len(rows) == 0 || rows[0].rank != int(level.FirstLevelRank) {
		return nil, fmt.Errorf("%w: profession levels %d have no first level", ErrCorruptLevels, id)
	}

	firstProf, err := r.lookup(rows[0].profession)
	if err != nil {
		return nil, err
	}
	first, err := level.RestoreFirstLevel(rows[0].id, firstProf, rows[0].increments, rows[0].leveledUpAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptLevels, err)
	}

	next := make([]*level.NextLevel, 0, len(rows)-1)
	for _, row := range rows[1:] {
		prof, err := r.lookup(row.profession)
		if err != nil {
			return nil, err
		}
		nl, err := level.RestoreNextLevel(row.id, prof, level.Rank(row.rank), row.increments, row.leveledUpAt)
		if err != nil {
			return nil, fmt.Errorf("%w: level %d: %v", ErrCorruptLevels, row.id, err)
		}
		next = append(next, nl)
	}

	pl, err := level.RestoreProfessionLevels(id, characterID, first, next...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptLevels, err)
	}
	return pl, nil
}

func (r *ProfessionLevelsRepository) lookup(raw string) (*profession.Profession, error) {
	code, err := profession.ParseCode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptLevels, err)
	}
	p, ok := r.professions.Profession(code)
	if !ok {
		return nil, fmt.Errorf("%w: profession %q is not registered", ErrCorruptLevels, code)
	}
	return p, nil
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	return sqlState(err) == "23505"
}

// isForeignKeyError checks if a pgx error is a foreign key violation.
func isForeignKeyError(err error) bool {
	return sqlState(err) == "23503"
}

func sqlState(err error) string {
	// pgx wraps PostgreSQL errors; SQLSTATE identifies the violated constraint class
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState()
	}
	return ""
}
