package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatch_UnmarshalPresence(t *testing.T) {
	var p Patch
	require.NoError(t, json.Unmarshal([]byte(`{"total_tops": 4, "description": null}`), &p))

	assert.True(t, p.TotalTops.Set)
	require.NotNil(t, p.TotalTops.Value)
	assert.Equal(t, int64(4), *p.TotalTops.Value)

	assert.True(t, p.Description.Set)
	assert.Nil(t, p.Description.Value)

	assert.False(t, p.ContestantName.Set)
	assert.False(t, p.ID.Set)
}

func TestPatch_UnmarshalGridText(t *testing.T) {
	var p Patch
	require.NoError(t, json.Unmarshal([]byte(`{"contestant_id": "2515", "total_penalty": " ", "contestant_name": "12"}`), &p))

	require.NotNil(t, p.ContestantID.Value)
	assert.Equal(t, int64(2515), *p.ContestantID.Value)
	assert.True(t, p.TotalPenalty.Set)
	assert.Nil(t, p.TotalPenalty.Value)
	require.NotNil(t, p.ContestantName.Value)
	assert.Equal(t, "12", *p.ContestantName.Value)
}

func TestPatch_UnmarshalRejectsGarbage(t *testing.T) {
	var p Patch
	assert.Error(t, json.Unmarshal([]byte(`{"total_tops": "lots"}`), &p))
	assert.Error(t, json.Unmarshal([]byte(`{"total_tops": true}`), &p))
}

func TestPatch_MarshalOmitsAbsent(t *testing.T) {
	p := Patch{TotalTops: Some[int64](2), Description: Null[string]()}
	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_tops": 2, "description": null}`, string(out))
}

func TestPatch_Apply(t *testing.T) {
	name, desc := "Azrai", "first"
	id, tops, pen := int64(2501), int64(3), int64(1)
	c := Contestant{ID: 5, ContestantName: &name, ContestantID: &id, TotalTops: &tops, TotalPenalty: &pen, Description: &desc}

	got := Patch{ID: Some[int64](9), TotalTops: Some[int64](4), Description: Null[string]()}.Apply(c)

	assert.Equal(t, int64(5), got.ID)
	assert.Equal(t, int64(4), got.Tops())
	assert.Equal(t, int64(1), got.Penalty())
	assert.Equal(t, "Azrai", got.Name())
	assert.Equal(t, int64(2501), *got.ContestantID)
	assert.Nil(t, got.Description)
}

func TestPatch_Record(t *testing.T) {
	r := Patch{ContestantName: Some("New")}.Record()
	assert.Zero(t, r.ID)
	assert.Equal(t, "New", r.Name())
	assert.Nil(t, r.ContestantID)
	assert.Nil(t, r.TotalTops)
	assert.Nil(t, r.TotalPenalty)
	assert.Nil(t, r.Description)

	r = Patch{ID: Some[int64](40)}.Record()
	assert.Equal(t, int64(40), r.ID)
	assert.Nil(t, r.ContestantName)
}
