package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Opt is a field that may be absent, present-and-null, or present with a value.
// Set distinguishes "absent" from "null"; Value is nil for null.
type Opt[T any] struct {
	Set   bool
	Value *T
}

// Some returns a present field holding v.
func Some[T any](v T) Opt[T] { return Opt[T]{Set: true, Value: &v} }

// Null returns a present field holding NULL.
func Null[T any]() Opt[T] { return Opt[T]{Set: true} }

// IsZero reports whether the field is absent, which lets omitzero drop it.
func (o Opt[T]) IsZero() bool { return !o.Set }

// UnmarshalJSON accepts the value itself, null, or a string that encodes the value.
// Grid cells arrive as text, so "12" is a valid int64 and "" is read as null for non-string fields.
func (o *Opt[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	o.Value = nil
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err == nil {
		o.Value = &v
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected %T, string, or null", v)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return fmt.Errorf("cannot read %q as %T", s, v)
	}
	o.Value = &v
	return nil
}

// MarshalJSON writes the value or null.
func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

func (o Opt[T]) overlay(dst *T) *T {
	if !o.Set {
		return dst
	}
	return o.Value
}

// Patch is a partial contestant record as produced by the editing grid.
// Absent fields are left alone by Apply and stored as NULL by Record.
type Patch struct {
	ID             Opt[int64]  `json:"id,omitzero"`
	ContestantName Opt[string] `json:"contestant_name,omitzero"`
	ContestantID   Opt[int64]  `json:"contestant_id,omitzero"`
	TotalTops      Opt[int64]  `json:"total_tops,omitzero"`
	TotalPenalty   Opt[int64]  `json:"total_penalty,omitzero"`
	Description    Opt[string] `json:"description,omitzero"`
}

// Apply overlays the patch onto c. The key is never taken from the patch.
func (p Patch) Apply(c Contestant) Contestant {
	c.ContestantName = p.ContestantName.overlay(c.ContestantName)
	c.ContestantID = p.ContestantID.overlay(c.ContestantID)
	c.TotalTops = p.TotalTops.overlay(c.TotalTops)
	c.TotalPenalty = p.TotalPenalty.overlay(c.TotalPenalty)
	c.Description = p.Description.overlay(c.Description)
	return c
}

// Record turns an insert patch into a full row. A zero ID means the key is still unassigned.
func (p Patch) Record() Contestant {
	var c Contestant
	if p.ID.Value != nil {
		c.ID = *p.ID.Value
	}
	return p.Apply(c)
}
