package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/extra/bundebug"
	_ "modernc.org/sqlite"

	"github.com/padraicbc/scorecard/config"
	"github.com/padraicbc/scorecard/models"
)

const createScoreCard = `
CREATE TABLE IF NOT EXISTS score_card (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	contestant_name TEXT,
	contestant_id INTEGER,
	total_tops INTEGER,
	total_penalty INTEGER,
	description TEXT
)`

// Setup opens the score card database described by cfg.
// created reports whether the database file did not exist before this call.
func Setup(cfg *config.Config) (*bun.DB, bool, error) {
	return Open(cfg.DBPath, cfg.Debug)
}

// Open opens (creating if needed) the SQLite file at path.
// created reports whether the file did not exist before the open.
func Open(path string, debug bool) (*bun.DB, bool, error) {
	_, statErr := os.Stat(path)
	created := errors.Is(statErr, fs.ErrNotExist)

	sqldb, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, false, fmt.Errorf("open %s: %w", path, err)
	}
	// SQLite allows one writer at a time.
	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, false, fmt.Errorf("connect %s: %w", path, err)
	}

	return db, created, nil
}

func dsn(path string) string {
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "foreign_keys(1)")
	q.Set("_txlock", "immediate")
	return "file:" + path + "?" + q.Encode()
}

// CreateSchema creates the score_card table. Safe to call multiple times.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	if _, err := db.ExecContext(ctx, createScoreCard); err != nil {
		return fmt.Errorf("creating score_card: %w", err)
	}
	return nil
}

// Bootstrap ensures the schema exists and, only when the database file was
// just created, inserts the seed contestants. It reports whether it seeded.
// An existing but empty table is never reseeded.
func Bootstrap(ctx context.Context, db *bun.DB, created bool) (bool, error) {
	if err := CreateSchema(ctx, db); err != nil {
		return false, err
	}
	if !created {
		return false, nil
	}

	seed := Seed()
	err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&seed).ExcludeColumn("id").Exec(ctx)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("seeding score_card: %w", err)
	}
	return true, nil
}

// Seed returns the initial contestant set with zeroed scores.
func Seed() []models.Contestant {
	out := make([]models.Contestant, len(seedNames))
	for i, name := range seedNames {
		out[i] = models.Contestant{
			ContestantName: ptr(name),
			ContestantID:   ptr(int64(2501 + i)),
			TotalTops:      ptr(int64(0)),
			TotalPenalty:   ptr(int64(0)),
			Description:    ptr(""),
		}
	}
	return out
}

var seedNames = []string{
	"Azrai", "Fais", "Avish", "Clarence", "Shah", "Shakel", "Shaa",
	"Joe", "Meng", "Jien", "Paan", "Fatin", "Perong", "Oliver",
}

func ptr[T any](v T) *T { return &v }
