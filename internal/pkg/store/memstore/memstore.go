// Package memstore is an in-process tabular store with spreadsheet row semantics.
// Row numbers are positional: row 1 is the header, the first data row is 2, and
// deleting a row shifts every row below it up by one.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ougirez/statdash/internal/pkg/constants"
	"github.com/ougirez/statdash/internal/pkg/store"
)

// Op names a Store method, used to inject failures.
type Op string

const (
	OpLoadHeaders Op = "LoadHeaders"
	OpGetAllRows  Op = "GetAllRows"
	OpAddRows     Op = "AddRows"
	OpDeleteRow   Op = "DeleteRow"
	OpUpdateRow   Op = "UpdateRow"
)

const firstDataRow = 2

type table struct {
	headers []string
	rows    []store.Record
}

// Store keeps tables in memory. The zero value is not usable, use New.
type Store struct {
	mu       sync.Mutex
	tables   map[string]*table
	failures map[Op]error

	addBatches []int
	deleted    []int64
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		tables:   make(map[string]*table),
		failures: make(map[Op]error),
	}
}

// Seed creates or resets table with the given header row and records.
func (s *Store) Seed(name string, headers []string, records ...store.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &table{headers: append([]string(nil), headers...)}
	for _, r := range records {
		t.rows = append(t.rows, copyRecord(r))
	}
	s.tables[name] = t
}

// Fail makes every following call of op return err. A nil err clears it.
func (s *Store) Fail(op Op, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// Records returns a copy of the data rows of table in order.
func (s *Store) Records(name string) []store.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tables[name]
	if !ok {
		return nil
	}
	out := make([]store.Record, 0, len(t.rows))
	for _, r := range t.rows {
		out = append(out, copyRecord(r))
	}
	return out
}

// AddBatches returns the size of every append request made so far.
func (s *Store) AddBatches() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.addBatches...)
}

// DeletedRows returns the row numbers passed to DeleteRow, in call order.
func (s *Store) DeletedRows() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.deleted...)
}

func (s *Store) LoadHeaders(_ context.Context, name string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failures[OpLoadHeaders]; err != nil {
		return nil, err
	}

	t, err := s.table(name)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), t.headers...), nil
}

func (s *Store) GetAllRows(_ context.Context, name string) ([]store.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failures[OpGetAllRows]; err != nil {
		return nil, err
	}

	t, err := s.table(name)
	if err != nil {
		return nil, err
	}

	rows := make([]store.Row, 0, len(t.rows))
	for i, r := range t.rows {
		rows = append(rows, store.Row{
			Table:  name,
			Number: int64(i + firstDataRow),
			Cells:  copyRecord(r),
		})
	}
	return rows, nil
}

func (s *Store) AddRows(_ context.Context, name string, records []store.Record, chunkSize int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failures[OpAddRows]; err != nil {
		return err
	}

	t, ok := s.tables[name]
	if !ok {
		t = &table{}
		s.tables[name] = t
	}

	for _, chunk := range store.Chunk(records, chunkSize) {
		s.addBatches = append(s.addBatches, len(chunk))
		for _, r := range chunk {
			t.extendHeaders(r)
			t.rows = append(t.rows, copyRecord(r))
		}
	}
	return nil
}

func (s *Store) DeleteRow(_ context.Context, row store.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failures[OpDeleteRow]; err != nil {
		return err
	}

	t, err := s.table(row.Table)
	if err != nil {
		return err
	}

	idx := int(row.Number) - firstDataRow
	if idx < 0 || idx >= len(t.rows) {
		return fmt.Errorf("delete row, table-%s, row-%d: %w", row.Table, row.Number, constants.ErrDBNotFound)
	}

	t.rows = append(t.rows[:idx], t.rows[idx+1:]...)
	s.deleted = append(s.deleted, row.Number)
	return nil
}

func (s *Store) UpdateRow(_ context.Context, row store.Row, fields store.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failures[OpUpdateRow]; err != nil {
		return err
	}

	t, err := s.table(row.Table)
	if err != nil {
		return err
	}

	idx := int(row.Number) - firstDataRow
	if idx < 0 || idx >= len(t.rows) {
		return fmt.Errorf("update row, table-%s, row-%d: %w", row.Table, row.Number, constants.ErrDBNotFound)
	}

	t.extendHeaders(fields)
	for k, v := range fields {
		t.rows[idx][k] = v
	}
	return nil
}

func (s *Store) table(name string) (*table, error) {
	t, ok := s.tables[name]
	if !ok {
		return nil, fmt.Errorf("table-%s: %w", name, constants.ErrDBNotFound)
	}
	return t, nil
}

func (t *table) extendHeaders(r store.Record) {
	known := make(map[string]struct{}, len(t.headers))
	for _, h := range t.headers {
		known[h] = struct{}{}
	}

	var missing []string
	for k := range r {
		if _, ok := known[k]; !ok {
			missing = append(missing, k)
		}
	}
	sort.Strings(missing)
	t.headers = append(t.headers, missing...)
}

func copyRecord(r store.Record) store.Record {
	out := make(store.Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
