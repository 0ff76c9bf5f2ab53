package scorecard

import (
	"slices"

	"github.com/padraicbc/scorecard/models"
)

// Snapshot is the table as read at one point in time, ordered by id.
// Batch positions index into it.
type Snapshot []models.Contestant

// Batch is the set of pending grid changes collected before a commit.
type Batch struct {
	Edits   map[int]models.Patch `json:"edited_rows"`
	Inserts []models.Patch       `json:"added_rows"`
	Deletes []int                `json:"deleted_rows"`
}

// Empty reports whether the batch has nothing to apply.
func (b Batch) Empty() bool {
	return len(b.Edits) == 0 && len(b.Inserts) == 0 && len(b.Deletes) == 0
}

type keyedRow struct {
	pos int
	row models.Contestant
}

type keyedID struct {
	pos int
	id  int64
}

type plan struct {
	updates []keyedRow
	inserts []models.Contestant
	deletes []keyedID
}

// resolve turns positional edits and deletes into keyed operations against snap.
func (b Batch) resolve(snap Snapshot) (plan, error) {
	var p plan

	positions := make([]int, 0, len(b.Edits))
	for pos := range b.Edits {
		positions = append(positions, pos)
	}
	slices.Sort(positions)
	for _, pos := range positions {
		if pos < 0 || pos >= len(snap) {
			return plan{}, &StaleReferenceError{Op: "edit", Position: pos}
		}
		p.updates = append(p.updates, keyedRow{pos: pos, row: b.Edits[pos].Apply(snap[pos])})
	}

	for _, ins := range b.Inserts {
		p.inserts = append(p.inserts, ins.Record())
	}

	seen := make(map[int]bool, len(b.Deletes))
	for _, pos := range b.Deletes {
		if seen[pos] {
			continue
		}
		seen[pos] = true
		if pos < 0 || pos >= len(snap) {
			return plan{}, &StaleReferenceError{Op: "delete", Position: pos}
		}
		p.deletes = append(p.deletes, keyedID{pos: pos, id: snap[pos].ID})
	}

	return p, nil
}
