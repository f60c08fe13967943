package store

import (
	"context"
	"fmt"
	"sort"

	sq "github.com/Masterminds/squirrel"

	"github.com/ougirez/statdash/internal/pkg/constants"
	"github.com/ougirez/statdash/internal/pkg/logger"
	"github.com/ougirez/statdash/internal/pkg/store/xpgx"
)

type sheetRow struct {
	ID    int64             `db:"id"`
	Cells map[string]string `db:"cells"`
}

type sheetHeader struct {
	Name string `db:"name"`
}

var (
	sheetRowColumns    = []string{"id", "cells"}
	sheetHeaderColumns = []string{"name"}
)

func (s *store) LoadHeaders(ctx context.Context, table string) ([]string, error) {
	selected, err := xpgx.Select[sheetHeader](ctx, s.db, headersQuery(table))
	if err != nil {
		return nil, fmt.Errorf("select headers, table-%s: %w", table, wrapErr(err))
	}

	headers := make([]string, 0, len(selected))
	for _, h := range selected {
		headers = append(headers, h.Name)
	}
	return headers, nil
}

func (s *store) GetAllRows(ctx context.Context, table string) ([]Row, error) {
	var (
		rows   []Row
		lastID int64
	)

	// keyset pagination: a page shorter than pageSize is the last one
	for {
		page, err := xpgx.Select[sheetRow](ctx, s.db, rowsPageQuery(table, lastID, s.pageSize))
		if err != nil {
			return nil, fmt.Errorf("select rows, table-%s, after-%d: %w", table, lastID, wrapErr(err))
		}

		for _, r := range page {
			rows = append(rows, Row{Table: table, Number: r.ID, Cells: r.Cells})
			lastID = r.ID
		}

		if uint64(len(page)) < s.pageSize {
			break
		}
	}

	return rows, nil
}

func (s *store) AddRows(ctx context.Context, table string, records []Record, chunkSize int) error {
	if len(records) == 0 {
		return nil
	}

	if err := s.ensureHeaders(ctx, s.db, table, records); err != nil {
		return err
	}

	return insertChunks(ctx, s.db, table, records, chunkSize)
}

func (s *store) DeleteRow(ctx context.Context, row Row) error {
	query := builder().Delete(tableSheetRows).
		Where(sq.Eq{"sheet": row.Table, "id": row.Number})

	tag, err := xpgx.Execx(ctx, s.db, query)
	if err != nil {
		return fmt.Errorf("delete row, table-%s, id-%d: %w", row.Table, row.Number, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete row, table-%s, id-%d: %w", row.Table, row.Number, constants.ErrDBNotFound)
	}
	return nil
}

func (s *store) UpdateRow(ctx context.Context, row Row, fields Record) error {
	if len(fields) == 0 {
		return nil
	}

	if err := s.ensureHeaders(ctx, s.db, row.Table, []Record{fields}); err != nil {
		return err
	}

	query := builder().Update(tableSheetRows).
		Set("cells", sq.Expr("cells || ?::jsonb", map[string]string(fields))).
		Where(sq.Eq{"sheet": row.Table, "id": row.Number})

	tag, err := xpgx.Execx(ctx, s.db, query)
	if err != nil {
		return fmt.Errorf("update row, table-%s, id-%d: %w", row.Table, row.Number, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update row, table-%s, id-%d: %w", row.Table, row.Number, constants.ErrDBNotFound)
	}
	return nil
}

// ReplaceRows deletes every row whose column equals value and inserts records, in one transaction.
func (s *store) ReplaceRows(ctx context.Context, table, column, value string, records []Record, chunkSize int) (int, error) {
	var deleted int

	err := s.db.InTx(ctx, func(q xpgx.Querier) error {
		if err := s.ensureHeaders(ctx, q, table, records); err != nil {
			return err
		}

		tag, err := xpgx.Execx(ctx, q, deleteMatchingQuery(table, column, value))
		if err != nil {
			return fmt.Errorf("delete matching rows, table-%s: %w", table, err)
		}
		deleted = int(tag.RowsAffected())

		return insertChunks(ctx, q, table, records, chunkSize)
	})
	if err != nil {
		logger.Errorf(ctx, "ReplaceRows rolled back, table-%s, %s-%s: %s", table, column, value, err.Error())
		return 0, err
	}

	return deleted, nil
}

func insertChunks(ctx context.Context, q xpgx.Querier, table string, records []Record, chunkSize int) error {
	for i, chunk := range Chunk(records, chunkSize) {
		if _, err := xpgx.Execx(ctx, q, insertRowsQuery(table, chunk)); err != nil {
			return fmt.Errorf("insert rows, table-%s, chunk-%d: %w", table, i, err)
		}
	}
	return nil
}

// ensureHeaders appends columns used by records that the table does not declare yet.
func (s *store) ensureHeaders(ctx context.Context, q xpgx.Querier, table string, records []Record) error {
	seen := make(map[string]struct{})
	for _, r := range records {
		for k := range r {
			seen[k] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}

	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)

	if _, err := xpgx.Execx(ctx, q, insertHeadersQuery(table, names)); err != nil {
		return fmt.Errorf("insert headers, table-%s: %w", table, err)
	}
	return nil
}

func headersQuery(table string) sq.SelectBuilder {
	return builder().Select(sheetHeaderColumns...).
		From(tableSheetHeaders).
		Where(sq.Eq{"sheet": table}).
		OrderBy("position")
}

func rowsPageQuery(table string, afterID int64, limit uint64) sq.SelectBuilder {
	return builder().Select(sheetRowColumns...).
		From(tableSheetRows).
		Where(sq.And{
			sq.Eq{"sheet": table},
			sq.Gt{"id": afterID},
		}).
		OrderBy("id").
		Limit(limit)
}

func insertRowsQuery(table string, records []Record) sq.InsertBuilder {
	query := builder().Insert(tableSheetRows).
		Columns("sheet", "cells")
	for _, r := range records {
		query = query.Values(table, map[string]string(r))
	}
	return query
}

// insertHeadersQuery appends unknown names after the current last position, keeping existing order.
func insertHeadersQuery(table string, names []string) sq.Sqlizer {
	return sq.Expr(`insert into `+tableSheetHeaders+` (sheet, position, name)
select $1, (select coalesce(max(position), 0) from `+tableSheetHeaders+` where sheet = $1) + n.ord, n.name
from unnest($2::text[]) with ordinality as n(name, ord)
where not exists (select 1 from `+tableSheetHeaders+` h where h.sheet = $1 and h.name = n.name)`, table, names)
}

func deleteMatchingQuery(table, column, value string) sq.DeleteBuilder {
	return builder().Delete(tableSheetRows).
		Where(sq.And{
			sq.Eq{"sheet": table},
			sq.Expr("btrim(cells ->> ?) = ?", column, value),
		})
}
