package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ougirez/statdash/internal/pkg/store/xpgx"
)

func TestChunk(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		n     int
		size  int
		sizes []int
	}{
		{name: "empty", n: 0, size: 2, sizes: []int{}},
		{name: "exact", n: 4, size: 2, sizes: []int{2, 2}},
		{name: "remainder", n: 5, size: 2, sizes: []int{2, 2, 1}},
		{name: "one batch", n: 150, size: 200, sizes: []int{150}},
		{name: "store batches", n: 450, size: 200, sizes: []int{200, 200, 50}},
		{name: "non-positive size", n: 3, size: 0, sizes: []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			items := make([]int, tt.n)
			for i := range items {
				items[i] = i
			}

			chunks := Chunk(items, tt.size)
			sizes := make([]int, 0, len(chunks))
			next := 0
			for _, c := range chunks {
				sizes = append(sizes, len(c))
				for _, v := range c {
					assert.Equal(t, next, v, "order preserved")
					next++
				}
			}
			assert.Equal(t, tt.sizes, sizes)
		})
	}
}

func TestRowsPageQuery(t *testing.T) {
	t.Parallel()

	sql, args, err := rowsPageQuery("Data", 42, 500).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, cells FROM sheet_rows WHERE (sheet = $1 AND id > $2) ORDER BY id LIMIT 500", sql)
	assert.Equal(t, []interface{}{"Data", int64(42)}, args)
}

func TestInsertRowsQuery(t *testing.T) {
	t.Parallel()

	sql, args, err := insertRowsQuery("Data", []Record{
		{"id_variable": "43", "Nilai": "1.5"},
		{"id_variable": "43", "Nilai": "2"},
	}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO sheet_rows (sheet,cells) VALUES ($1,$2),($3,$4)", sql)
	require.Len(t, args, 4)
	assert.Equal(t, "Data", args[0])
	assert.Equal(t, map[string]string{"id_variable": "43", "Nilai": "2"}, args[3])
}

func TestDeleteMatchingQuery(t *testing.T) {
	t.Parallel()

	sql, args, err := deleteMatchingQuery("Data", "id_variable", "88").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM sheet_rows WHERE (sheet = $1 AND btrim(cells ->> $2) = $3)", sql)
	assert.Equal(t, []interface{}{"Data", "id_variable", "88"}, args)
}

func TestRowGet(t *testing.T) {
	t.Parallel()

	row := Row{Cells: Record{"Id": " 43 "}}
	assert.Equal(t, "43", row.Get("Id"))
	assert.Equal(t, "", row.Get("Label"))
}

// fakeDB answers keyset page queries from rows, ordered by id.
type fakeDB struct {
	rows   map[int64]map[string]string
	after  []int64
	limits []uint64
	execs  []string
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("unexpected query %q", sql)
	}
	afterID, ok := args[1].(int64)
	if !ok {
		return nil, fmt.Errorf("after id is %T", args[1])
	}
	_, tail, ok := strings.Cut(sql, "LIMIT ")
	if !ok {
		return nil, fmt.Errorf("no limit in %q", sql)
	}
	limit, err := strconv.ParseUint(tail, 10, 64)
	if err != nil {
		return nil, err
	}
	f.after = append(f.after, afterID)
	f.limits = append(f.limits, limit)

	ids := make([]int64, 0, len(f.rows))
	for id := range f.rows {
		if id > afterID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if uint64(len(ids)) > limit {
		ids = ids[:limit]
	}

	page := &fakeRows{pos: -1}
	for _, id := range ids {
		page.ids = append(page.ids, id)
		page.cells = append(page.cells, f.rows[id])
	}
	return page, nil
}

func (f *fakeDB) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, sql)
	return pgconn.NewCommandTag("DELETE 3"), nil
}

func (f *fakeDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

func (f *fakeDB) InTx(_ context.Context, fn func(q xpgx.Querier) error) error {
	return fn(f)
}

type fakeRows struct {
	ids   []int64
	cells []map[string]string
	pos   int
}

func (r *fakeRows) Close()                        {}
func (r *fakeRows) Err() error                    { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) Conn() *pgx.Conn               { return nil }
func (r *fakeRows) RawValues() [][]byte           { return nil }

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	return []pgconn.FieldDescription{{Name: "id"}, {Name: "cells"}}
}

func (r *fakeRows) Next() bool {
	r.pos++
	return r.pos < len(r.ids)
}

func (r *fakeRows) Scan(dest ...any) error {
	if len(dest) != 2 {
		return fmt.Errorf("scan into %d targets", len(dest))
	}
	id, ok := dest[0].(*int64)
	if !ok {
		return errors.New("id target is not *int64")
	}
	cells, ok := dest[1].(*map[string]string)
	if !ok {
		return errors.New("cells target is not *map[string]string")
	}
	*id = r.ids[r.pos]
	*cells = r.cells[r.pos]
	return nil
}

func (r *fakeRows) Values() ([]any, error) {
	return []any{r.ids[r.pos], r.cells[r.pos]}, nil
}

func TestGetAllRows_KeysetPages(t *testing.T) {
	t.Parallel()

	db := &fakeDB{rows: map[int64]map[string]string{
		3:  {"Nilai": "1"},
		7:  {"Nilai": "2"},
		8:  {"Nilai": "3"},
		12: {"Nilai": "4"},
		20: {"Nilai": "5"},
	}}
	s := NewStore(db, 2)

	rows, err := s.GetAllRows(context.Background(), "Data")
	require.NoError(t, err)

	require.Len(t, rows, 5)
	for i, want := range []int64{3, 7, 8, 12, 20} {
		assert.Equal(t, want, rows[i].Number)
		assert.Equal(t, "Data", rows[i].Table)
		assert.Equal(t, fmt.Sprint(i+1), rows[i].Get("Nilai"))
	}
	assert.Equal(t, []int64{0, 7, 12}, db.after)
	assert.Equal(t, []uint64{2, 2, 2}, db.limits)
}

func TestGetAllRows_FullLastPage(t *testing.T) {
	t.Parallel()

	db := &fakeDB{rows: map[int64]map[string]string{1: {"a": "1"}, 2: {"a": "2"}}}
	s := NewStore(db, 2)

	rows, err := s.GetAllRows(context.Background(), "Data")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	// a full page needs one more query to see the end
	assert.Equal(t, []int64{0, 2}, db.after)
}

func TestReplaceRows_OneTransaction(t *testing.T) {
	t.Parallel()

	db := &fakeDB{}
	s := NewStore(db, 2).(AtomicReplacer)

	deleted, err := s.ReplaceRows(context.Background(), "Data", "id_variable", "43",
		[]Record{{"id_variable": "43"}, {"id_variable": "43"}, {"id_variable": "43"}}, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)

	// headers, delete, two insert chunks
	require.Len(t, db.execs, 4)
	assert.Contains(t, db.execs[1], "DELETE FROM sheet_rows")
	assert.Contains(t, db.execs[2], "INSERT INTO sheet_rows")
}
