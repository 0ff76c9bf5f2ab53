package models

import "github.com/uptrace/bun"

// Contestant is one row of the score card. Every column except the key is nullable.
type Contestant struct {
	bun.BaseModel `bun:"table:score_card,alias:sc"`

	ID             int64   `bun:"id,pk,autoincrement" json:"id"`
	ContestantName *string `bun:"contestant_name" json:"contestant_name"`
	ContestantID   *int64  `bun:"contestant_id" json:"contestant_id"`
	TotalTops      *int64  `bun:"total_tops" json:"total_tops"`
	TotalPenalty   *int64  `bun:"total_penalty" json:"total_penalty"`
	Description    *string `bun:"description" json:"description"`
}

// Name returns the contestant name, or "" when it is NULL.
func (c Contestant) Name() string {
	if c.ContestantName == nil {
		return ""
	}
	return *c.ContestantName
}

// Tops returns total_tops with NULL read as zero.
func (c Contestant) Tops() int64 { return deref(c.TotalTops) }

// Penalty returns total_penalty with NULL read as zero.
func (c Contestant) Penalty() int64 { return deref(c.TotalPenalty) }

func deref(n *int64) int64 {
	if n == nil {
		return 0
	}
	return *n
}
