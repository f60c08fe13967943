package store

import (
	"context"
	"strings"

	"github.com/ougirez/statdash/internal/pkg/store/xpgx"
)

// Record is one row keyed by column header.
type Record map[string]string

// Row is a record read back from a table. Number is the row's position key in its
// backend (spreadsheet row number, database id); higher numbers sit lower in the table.
type Row struct {
	Table  string
	Number int64
	Cells  Record
}

// Get returns the trimmed cell value of column.
func (r Row) Get(column string) string {
	return strings.TrimSpace(r.Cells[column])
}

// Store is the narrow tabular contract the pipeline consumes.
//
//go:generate mockgen -destination=mocks/mock_store.go -package=mocks -source=store.go Store,AtomicReplacer
type Store interface {
	// LoadHeaders returns the header row of table in column order.
	LoadHeaders(ctx context.Context, table string) ([]string, error)
	// GetAllRows returns every data row of table; implementations page internally.
	GetAllRows(ctx context.Context, table string) ([]Row, error)
	// AddRows appends rows, writing at most chunkSize rows per request.
	AddRows(ctx context.Context, table string, rows []Record, chunkSize int) error
	DeleteRow(ctx context.Context, row Row) error
	UpdateRow(ctx context.Context, row Row, fields Record) error
}

// AtomicReplacer is implemented by backends able to swap all rows matching
// column == value for a new set in a single transaction.
type AtomicReplacer interface {
	ReplaceRows(ctx context.Context, table, column, value string, rows []Record, chunkSize int) (int, error)
}

type store struct {
	db       xpgx.DB
	pageSize uint64
}

// NewStore returns the Postgres-backed tabular store. pageSize bounds each read query.
func NewStore(db xpgx.DB, pageSize int) Store {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &store{db: db, pageSize: uint64(pageSize)}
}

// Chunk splits rows into consecutive batches of at most size rows.
func Chunk[T any](rows []T, size int) [][]T {
	if size <= 0 {
		size = len(rows)
	}
	chunks := make([][]T, 0, (len(rows)+size-1)/max(size, 1))
	for start := 0; start < len(rows); start += size {
		end := min(start+size, len(rows))
		chunks = append(chunks, rows[start:end])
	}
	return chunks
}
