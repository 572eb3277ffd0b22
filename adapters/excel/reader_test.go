package excel

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"presence-analyzer/domain/core"
	"presence-analyzer/domain/presence"
	"presence-analyzer/internal"
	apperrors "presence-analyzer/internal/errors"
)

func newTestReader(path string) *DataReader {
	return NewDataReader(path, DefaultReaderConfig(), internal.NewNopLogger())
}

func TestReadPresence_CSV(t *testing.T) {
	reader := newTestReader(filepath.Join("testdata", "presence.csv"))

	table, stats, err := reader.ReadWithStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{10, 11}, table.UserIDs())
	assert.Equal(t, ReadStats{Rows: 15, Skipped: 2, Malformed: 3, Loaded: 10}, stats)

	sample := presence.NewDate(2013, time.September, 10)
	require.Contains(t, table[10], sample)
	assert.Equal(t, presence.NewTimeOfDay(9, 39, 5), table[10][sample].Start)
	assert.Equal(t, presence.NewTimeOfDay(17, 59, 52), table[10][sample].End)
	assert.Len(t, table[11], 7)
}

func TestReadPresence_MalformedRowLeavesNoTrace(t *testing.T) {
	reader := newTestReader(filepath.Join("testdata", "presence.csv"))

	table, err := reader.ReadPresence(context.Background())
	require.NoError(t, err)

	// rows for users 12 and 13 failed mid-way and must not appear at all
	_, ok := table.Lookup(12)
	assert.False(t, ok)
	_, ok = table.Lookup(13)
	assert.False(t, ok)
	_, ok = table.Lookup(14)
	assert.False(t, ok)
}

func TestReadPresence_MissingFile(t *testing.T) {
	reader := newTestReader(filepath.Join(t.TempDir(), "missing.csv"))

	_, err := reader.ReadPresence(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeDataSource, apperrors.GetCode(err))
}

func TestReadPresence_Cancelled(t *testing.T) {
	reader := newTestReader(filepath.Join("testdata", "presence.csv"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := reader.ReadPresence(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadPresence_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presence.xlsx")
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"user_id", "date", "start", "end", "comment"},
		{"10", "2013-09-10", "09:39:05", "17:59:52"},
		{"10", "2013-09-11", "09:19:52", "16:07:37"},
		{"11", "2013-09-12", "broken", "16:13:32"},
		{"11", "2013-09-12"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, stats, err := newTestReader(path).ReadWithStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{10}, table.UserIDs())
	assert.Len(t, table[10], 2)
	assert.Equal(t, 2, stats.Loaded)
	assert.Equal(t, 1, stats.Malformed)
	assert.Equal(t, 2, stats.Skipped)
}

func TestReadPresence_CustomDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presence.csv")
	require.NoError(t, os.WriteFile(path, []byte("10;2013-09-10;09:39:05;17:59:52\n"), 0o644))

	reader := NewDataReader(path, ReaderConfig{Comma: ';'}, internal.NewNopLogger())
	table, err := reader.ReadPresence(context.Background())
	require.NoError(t, err)
	assert.Len(t, table[10], 1)
}

func TestParseRow(t *testing.T) {
	row, err := ParseRow(1, []string{"10", "2013-09-10", "09:39:05", "17:59:52"})
	require.NoError(t, err)
	assert.Equal(t, 10, row.UserID)
	assert.Equal(t, 1, row.Date.Weekday())

	tests := []struct {
		name string
		row  []string
	}{
		{"bad user id", []string{"x", "2013-09-10", "09:39:05", "17:59:52"}},
		{"bad date", []string{"10", "10/09/2013", "09:39:05", "17:59:52"}},
		{"bad start", []string{"10", "2013-09-10", "9h", "17:59:52"}},
		{"bad end", []string{"10", "2013-09-10", "09:39:05", ""}},
		{"short row", []string{"10", "2013-09-10"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRow(7, tt.row)
			assert.True(t, errors.Is(err, core.ErrMalformedRow), "got %v", err)
		})
	}
}
