package scorecard

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/padraicbc/scorecard/db"
	"github.com/padraicbc/scorecard/models"
)

// newSeededStore opens a fresh database file with the seed contestants.
func newSeededStore(t *testing.T) (*Store, *bun.DB) {
	t.Helper()
	bdb, created, err := db.Open(filepath.Join(t.TempDir(), "test.db"), false)
	require.NoError(t, err)
	t.Cleanup(func() { bdb.Close() })

	_, err = db.Bootstrap(context.Background(), bdb, created)
	require.NoError(t, err)
	return NewStore(bdb), bdb
}

func mustLoad(t *testing.T, s *Store) Snapshot {
	t.Helper()
	snap, err := s.Load(context.Background())
	require.NoError(t, err)
	return snap
}

func byID(snap Snapshot, id int64) (models.Contestant, bool) {
	for _, c := range snap {
		if c.ID == id {
			return c, true
		}
	}
	return models.Contestant{}, false
}

func str(s string) *string { return &s }
func num(n int64) *int64   { return &n }
