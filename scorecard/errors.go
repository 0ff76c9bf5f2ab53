package scorecard

import "fmt"

// PersistenceError reports a storage failure: missing table, failed query,
// or a transaction that could not be applied. Nothing was written.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("scorecard: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// StaleReferenceError reports a batch entry that no longer matches a live row,
// either because its position is outside the snapshot or because the row was
// removed after the snapshot was read. The batch was not applied.
type StaleReferenceError struct {
	Op       string
	Position int
	// ID is zero when the position was outside the snapshot.
	ID int64
}

func (e *StaleReferenceError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("scorecard: %s: row %d is not in the snapshot", e.Op, e.Position)
	}
	return fmt.Sprintf("scorecard: %s: row %d (id %d) no longer exists", e.Op, e.Position, e.ID)
}

func persistErr(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}
