package handlers

import (
	"sync/atomic"

	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/padraicbc/scorecard/charts"
	"github.com/padraicbc/scorecard/metrics"
	"github.com/padraicbc/scorecard/scorecard"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	db      *bun.DB
	store   *scorecard.Store
	metrics *metrics.Metrics
	log     *zap.Logger
	chart   charts.Options

	// seeded is cleared by the first page render after bootstrap seeded the table.
	seeded atomic.Bool
}

// New creates a Handler over an open, bootstrapped database.
// seeded reports whether bootstrap just inserted the sample contestants.
func New(db *bun.DB, m *metrics.Metrics, log *zap.Logger, chart charts.Options, seeded bool) *Handler {
	h := &Handler{
		db:      db,
		store:   scorecard.NewStore(db),
		metrics: m,
		log:     log,
		chart:   chart,
	}
	h.seeded.Store(seeded)
	return h
}
