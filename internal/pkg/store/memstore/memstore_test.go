package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ougirez/statdash/internal/pkg/constants"
	"github.com/ougirez/statdash/internal/pkg/store"
)

func TestStore_RowNumbersShiftOnDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := New()
	s.Seed("Data", []string{"id_variable", "Nilai"},
		store.Record{"id_variable": "1", "Nilai": "a"},
		store.Record{"id_variable": "2", "Nilai": "b"},
		store.Record{"id_variable": "3", "Nilai": "c"},
	)

	rows, err := s.GetAllRows(ctx, "Data")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, int64(2), rows[0].Number)
	assert.Equal(t, int64(4), rows[2].Number)

	require.NoError(t, s.DeleteRow(ctx, rows[0]))

	// the old row 3 is now row 2
	rows, err = s.GetAllRows(ctx, "Data")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(2), rows[0].Number)
	assert.Equal(t, "2", rows[0].Get("id_variable"))

	err = s.DeleteRow(ctx, store.Row{Table: "Data", Number: 10})
	assert.ErrorIs(t, err, constants.ErrDBNotFound)
	assert.Equal(t, []int64{2}, s.DeletedRows())
}

func TestStore_AddRowsBatchesAndHeaders(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := New()
	s.Seed("Data", []string{"id_variable"})

	records := make([]store.Record, 5)
	for i := range records {
		records[i] = store.Record{"id_variable": "7", "Nilai": "1", "Satuan": "%"}
	}
	require.NoError(t, s.AddRows(ctx, "Data", records, 2))

	assert.Equal(t, []int{2, 2, 1}, s.AddBatches())
	assert.Len(t, s.Records("Data"), 5)

	headers, err := s.LoadHeaders(ctx, "Data")
	require.NoError(t, err)
	assert.Equal(t, []string{"id_variable", "Nilai", "Satuan"}, headers)
}

func TestStore_UpdateRow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := New()
	s.Seed("Konfig", []string{"Id", "Label"}, store.Record{"Id": "43", "Label": "Old"})

	require.NoError(t, s.UpdateRow(ctx, store.Row{Table: "Konfig", Number: 2}, store.Record{"Label": "New"}))
	assert.Equal(t, []store.Record{{"Id": "43", "Label": "New"}}, s.Records("Konfig"))

	err := s.UpdateRow(ctx, store.Row{Table: "Konfig", Number: 3}, store.Record{"Label": "x"})
	assert.ErrorIs(t, err, constants.ErrDBNotFound)
}

func TestStore_Fail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := New()
	s.Seed("Data", nil)

	boom := errors.New("quota exceeded")
	s.Fail(OpGetAllRows, boom)
	_, err := s.GetAllRows(ctx, "Data")
	assert.ErrorIs(t, err, boom)

	s.Fail(OpGetAllRows, nil)
	_, err = s.GetAllRows(ctx, "Data")
	assert.NoError(t, err)

	_, err = s.LoadHeaders(ctx, "Missing")
	assert.ErrorIs(t, err, constants.ErrDBNotFound)
}
