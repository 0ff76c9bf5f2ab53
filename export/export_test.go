package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/padraicbc/scorecard/scorecard"
)

func TestWrite_RoundTripsThroughExcelize(t *testing.T) {
	name, desc := "Azrai", "warmup"
	cid, tops, pen := int64(2501), int64(4), int64(1)
	other := "New"
	snap := scorecard.Snapshot{
		{ID: 5, ContestantName: &name, ContestantID: &cid, TotalTops: &tops, TotalPenalty: &pen, Description: &desc},
		{ID: 15, ContestantName: &other},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, snap))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"id", "contestant_name", "contestant_id", "total_tops", "total_penalty", "description"}, rows[0])
	assert.Equal(t, []string{"5", "Azrai", "2501", "4", "1", "warmup"}, rows[1])
	// GetRows trims trailing empty cells.
	assert.Equal(t, []string{"15", "New"}, rows[2])
}

func TestWorkbook_Empty(t *testing.T) {
	f, err := Workbook(nil)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
