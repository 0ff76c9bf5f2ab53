package scorecard

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/padraicbc/scorecard/models"
)

// Store reads and reconciles the score_card table.
type Store struct {
	db *bun.DB
}

// NewStore wraps an open database.
func NewStore(db *bun.DB) *Store {
	return &Store{db: db}
}

// Load returns every row ordered by id. Any failure, including a missing
// table, is reported as a *PersistenceError.
func (s *Store) Load(ctx context.Context) (Snapshot, error) {
	rows := make([]models.Contestant, 0)
	if err := s.db.NewSelect().Model(&rows).OrderExpr("sc.id ASC").Scan(ctx); err != nil {
		return nil, persistErr("load", err)
	}
	return Snapshot(rows), nil
}

// Commit applies b to the table in a single transaction, resolving row
// positions against snap. Updates run first, then inserts, then deletes.
// On any error nothing is written.
func (s *Store) Commit(ctx context.Context, snap Snapshot, b Batch) error {
	if b.Empty() {
		return nil
	}
	p, err := b.resolve(snap)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return persistErr("begin", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	for _, u := range p.updates {
		res, err := tx.NewUpdate().Model(&u.row).WherePK().Exec(ctx)
		if err != nil {
			return persistErr("update", err)
		}
		if err := expectRow(res, "edit", u.pos, u.row.ID); err != nil {
			return err
		}
	}

	for i := range p.inserts {
		row := &p.inserts[i]
		if row.ID == 0 {
			if row.ID, err = s.allocateID(ctx, tx); err != nil {
				return persistErr("allocate id", err)
			}
		}
		if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
			return persistErr("insert", err)
		}
	}

	for _, d := range p.deletes {
		res, err := tx.NewDelete().
			Model((*models.Contestant)(nil)).
			Where("id = ?", d.id).
			Exec(ctx)
		if err != nil {
			return persistErr("delete", err)
		}
		if err := expectRow(res, "delete", d.pos, d.id); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return persistErr("commit", err)
	}
	committed = true

	return nil
}

// allocateID returns the next key for a row inserted without one. It never
// hands out a key that was used before, even if that row was deleted.
func (s *Store) allocateID(ctx context.Context, tx bun.Tx) (int64, error) {
	var next int64
	err := tx.NewRaw(`SELECT MAX(
		COALESCE((SELECT seq FROM sqlite_sequence WHERE name = 'score_card'), 0),
		COALESCE((SELECT MAX(id) FROM score_card), 0)
	) + 1`).Scan(ctx, &next)
	return next, err
}

func expectRow(res sql.Result, op string, pos int, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return persistErr(op, err)
	}
	if n == 0 {
		return &StaleReferenceError{Op: op, Position: pos, ID: id}
	}
	return nil
}

// IsStale reports whether err is a *StaleReferenceError.
func IsStale(err error) bool {
	var stale *StaleReferenceError
	return errors.As(err, &stale)
}

// IsPersistence reports whether err is a *PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
