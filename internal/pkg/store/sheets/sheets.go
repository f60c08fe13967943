// Package sheets implements store.Store on top of a Google spreadsheet, one tab per table.
package sheets

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/ougirez/statdash/internal/pkg/constants"
	"github.com/ougirez/statdash/internal/pkg/logger"
	"github.com/ougirez/statdash/internal/pkg/store"
)

const (
	valueInputRaw   = "RAW"
	insertRows      = "INSERT_ROWS"
	dimensionRows   = "ROWS"
	headerRow       = 1
	firstDataRow    = 2
	defaultPageSize = 500
	sheetMetaFields = "sheets.properties(sheetId,title,gridProperties)"
)

type sheetMeta struct {
	id       int64
	rowCount int64
}

// Store talks to one spreadsheet. Tab metadata is cached after the first lookup.
type Store struct {
	srv           *gsheets.Service
	spreadsheetID string
	pageSize      int64

	mu   sync.Mutex
	meta map[string]sheetMeta
}

var _ store.Store = (*Store)(nil)

// New authenticates with the service-account file and returns a store for spreadsheetID.
func New(ctx context.Context, spreadsheetID, credentialsFile string, pageSize int) (*Store, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id: %w", constants.ErrConfigurationMissing)
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	srv, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets.NewService: %w", err)
	}

	return NewWithService(srv, spreadsheetID, pageSize), nil
}

// NewWithService wraps an already configured service.
func NewWithService(srv *gsheets.Service, spreadsheetID string, pageSize int) *Store {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Store{
		srv:           srv,
		spreadsheetID: spreadsheetID,
		pageSize:      int64(pageSize),
		meta:          make(map[string]sheetMeta),
	}
}

func (s *Store) LoadHeaders(ctx context.Context, table string) ([]string, error) {
	resp, err := s.srv.Spreadsheets.Values.
		Get(s.spreadsheetID, rowRange(table, headerRow, headerRow)).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get headers, table-%s: %w", table, err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}
	return toStrings(resp.Values[0]), nil
}

func (s *Store) GetAllRows(ctx context.Context, table string) ([]store.Row, error) {
	headers, err := s.LoadHeaders(ctx, table)
	if err != nil {
		return nil, err
	}

	meta, err := s.sheet(ctx, table, true)
	if err != nil {
		return nil, err
	}

	// a short page only means its trailing rows are blank; data may follow
	var rows []store.Row
	for start := int64(firstDataRow); start <= meta.rowCount; start += s.pageSize {
		end := min(start+s.pageSize-1, meta.rowCount)

		resp, err := s.srv.Spreadsheets.Values.
			Get(s.spreadsheetID, rowRange(table, start, end)).
			Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("get rows, table-%s, rows-%d:%d: %w", table, start, end, err)
		}

		for i, values := range resp.Values {
			cells := toRecord(headers, values)
			if len(cells) == 0 {
				continue
			}
			rows = append(rows, store.Row{Table: table, Number: start + int64(i), Cells: cells})
		}
	}

	return rows, nil
}

func (s *Store) AddRows(ctx context.Context, table string, records []store.Record, chunkSize int) error {
	if len(records) == 0 {
		return nil
	}

	headers, err := s.ensureHeaders(ctx, table, records)
	if err != nil {
		return err
	}

	for i, chunk := range store.Chunk(records, chunkSize) {
		values := make([][]interface{}, 0, len(chunk))
		for _, r := range chunk {
			values = append(values, toValues(headers, r))
		}

		_, err := s.srv.Spreadsheets.Values.
			Append(s.spreadsheetID, quoteSheet(table), &gsheets.ValueRange{Values: values}).
			ValueInputOption(valueInputRaw).
			InsertDataOption(insertRows).
			Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("append rows, table-%s, chunk-%d: %w", table, i, err)
		}
		logger.Debugf(ctx, "appended %d rows to %s", len(chunk), table)
	}

	s.forget(table)
	return nil
}

func (s *Store) DeleteRow(ctx context.Context, row store.Row) error {
	meta, err := s.sheet(ctx, row.Table, false)
	if err != nil {
		return err
	}

	req := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			DeleteDimension: &gsheets.DeleteDimensionRequest{
				Range: &gsheets.DimensionRange{
					SheetId:    meta.id,
					Dimension:  dimensionRows,
					StartIndex: row.Number - 1,
					EndIndex:   row.Number,
					// sheet 0 and index 0 are meaningful values
					ForceSendFields: []string{"SheetId", "StartIndex"},
				},
			},
		}},
	}

	if _, err := s.srv.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete row, table-%s, row-%d: %w", row.Table, row.Number, err)
	}

	s.forget(row.Table)
	return nil
}

func (s *Store) UpdateRow(ctx context.Context, row store.Row, fields store.Record) error {
	if len(fields) == 0 {
		return nil
	}

	headers, err := s.ensureHeaders(ctx, row.Table, []store.Record{fields})
	if err != nil {
		return err
	}

	merged := make(store.Record, len(row.Cells)+len(fields))
	for k, v := range row.Cells {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	_, err = s.srv.Spreadsheets.Values.
		Update(s.spreadsheetID, widthRange(row.Table, row.Number, len(headers)),
			&gsheets.ValueRange{Values: [][]interface{}{toValues(headers, merged)}}).
		ValueInputOption(valueInputRaw).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update row, table-%s, row-%d: %w", row.Table, row.Number, err)
	}
	return nil
}

// ensureHeaders appends any column used by records that the header row lacks.
func (s *Store) ensureHeaders(ctx context.Context, table string, records []store.Record) ([]string, error) {
	headers, err := s.LoadHeaders(ctx, table)
	if err != nil {
		return nil, err
	}

	missing := missingColumns(headers, records)
	if len(missing) == 0 {
		return headers, nil
	}

	headers = append(headers, missing...)
	row := make([]interface{}, len(headers))
	for i, h := range headers {
		row[i] = h
	}

	_, err = s.srv.Spreadsheets.Values.
		Update(s.spreadsheetID, widthRange(table, headerRow, len(headers)), &gsheets.ValueRange{Values: [][]interface{}{row}}).
		ValueInputOption(valueInputRaw).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("extend headers, table-%s: %w", table, err)
	}
	return headers, nil
}

func (s *Store) sheet(ctx context.Context, table string, fresh bool) (sheetMeta, error) {
	s.mu.Lock()
	meta, ok := s.meta[table]
	s.mu.Unlock()
	if ok && !fresh {
		return meta, nil
	}

	resp, err := s.srv.Spreadsheets.Get(s.spreadsheetID).Fields(sheetMetaFields).Context(ctx).Do()
	if err != nil {
		return sheetMeta{}, fmt.Errorf("get spreadsheet metadata: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sh := range resp.Sheets {
		if sh.Properties == nil {
			continue
		}
		m := sheetMeta{id: sh.Properties.SheetId}
		if sh.Properties.GridProperties != nil {
			m.rowCount = sh.Properties.GridProperties.RowCount
		}
		s.meta[sh.Properties.Title] = m
	}

	meta, ok = s.meta[table]
	if !ok {
		return sheetMeta{}, fmt.Errorf("sheet-%s: %w", table, constants.ErrDBNotFound)
	}
	return meta, nil
}

func (s *Store) forget(table string) {
	s.mu.Lock()
	delete(s.meta, table)
	s.mu.Unlock()
}

func missingColumns(headers []string, records []store.Record) []string {
	known := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		known[h] = struct{}{}
	}

	var missing []string
	for _, r := range records {
		for k := range r {
			if _, ok := known[k]; ok {
				continue
			}
			known[k] = struct{}{}
			missing = append(missing, k)
		}
	}
	sort.Strings(missing)
	return missing
}

func toRecord(headers []string, values []interface{}) store.Record {
	rec := make(store.Record, len(headers))
	for i, h := range headers {
		if i >= len(values) || h == "" {
			continue
		}
		v := fmt.Sprint(values[i])
		if strings.TrimSpace(v) == "" {
			continue
		}
		rec[h] = v
	}
	return rec
}

func toValues(headers []string, r store.Record) []interface{} {
	values := make([]interface{}, len(headers))
	for i, h := range headers {
		values[i] = r[h]
	}
	return values
}

func toStrings(values []interface{}) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprint(v)
	}
	return out
}

func rowRange(table string, from, to int64) string {
	return fmt.Sprintf("%s!%d:%d", quoteSheet(table), from, to)
}

// widthRange addresses the first width cells of a single row.
func widthRange(table string, row int64, width int) string {
	return fmt.Sprintf("%s!A%d:%s%d", quoteSheet(table), row, columnName(max(width, 1)-1), row)
}

func quoteSheet(table string) string {
	return "'" + strings.ReplaceAll(table, "'", "''") + "'"
}

// columnName converts a zero-based column index to A1 notation.
func columnName(i int) string {
	name := ""
	for i >= 0 {
		name = string(rune('A'+i%26)) + name
		i = i/26 - 1
	}
	return name
}
