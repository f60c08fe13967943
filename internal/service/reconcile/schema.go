package reconcile

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ougirez/statdash/internal/domain"
	"github.com/ougirez/statdash/internal/pkg/store"
)

// Logical columns of the data table.
const (
	ColDomainID       = "id_domain"
	ColCategory       = "kategori"
	ColYear           = "Tahun"
	ColSubPeriod      = "Periode"
	ColDate           = "Pilih Tahun"
	ColIndicatorID    = "id_variable"
	ColIndicatorLabel = "Nama Variabel"
	ColValue          = "Nilai"
	ColUnit           = "Satuan"
)

// DataColumns lists the data table columns in sheet order.
var DataColumns = []string{
	ColDomainID, ColCategory, ColYear, ColSubPeriod, ColDate,
	ColIndicatorID, ColIndicatorLabel, ColValue, ColUnit,
}

// HeaderMap resolves logical column names to the store's actual headers.
// It is built once per session and never mutated.
type HeaderMap struct {
	columns map[string]string
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ResolveHeaders matches every logical name against actual case-insensitively,
// ignoring surrounding whitespace. The first matching actual header wins.
func ResolveHeaders(actual, logical []string) HeaderMap {
	index := make(map[string]string, len(actual))
	for _, a := range actual {
		key := normalize(a)
		if key == "" {
			continue
		}
		if _, ok := index[key]; !ok {
			index[key] = a
		}
	}

	columns := make(map[string]string, len(logical))
	for _, l := range logical {
		if a, ok := index[normalize(l)]; ok {
			columns[normalize(l)] = a
		}
	}
	return HeaderMap{columns: columns}
}

// Column returns the actual header for logical, or logical itself when the store has no match.
func (h HeaderMap) Column(logical string) string {
	if a, ok := h.columns[normalize(logical)]; ok {
		return a
	}
	return logical
}

// Resolved reports whether logical matched an actual header.
func (h HeaderMap) Resolved(logical string) bool {
	_, ok := h.columns[normalize(logical)]
	return ok
}

// ToRecord renders a data point under the resolved headers. A null value is an
// empty cell; a non-numeric value is written as received.
func ToRecord(h HeaderMap, p *domain.DataPoint) store.Record {
	value := p.RawValue
	if p.Value.Valid {
		value = p.Value.Decimal.String()
	}

	return store.Record{
		h.Column(ColDomainID):       p.DomainID,
		h.Column(ColCategory):       p.Category,
		h.Column(ColYear):           p.Year,
		h.Column(ColSubPeriod):      strconv.Itoa(p.SubPeriodCode),
		h.Column(ColDate):           p.Date,
		h.Column(ColIndicatorID):    p.IndicatorID,
		h.Column(ColIndicatorLabel): p.IndicatorLabel,
		h.Column(ColValue):          value,
		h.Column(ColUnit):           p.Unit,
	}
}

// FromRow reads a data point back. Unparsable values come back as null with RawValue set.
func FromRow(h HeaderMap, row store.Row) *domain.DataPoint {
	p := &domain.DataPoint{
		DomainID:       row.Get(h.Column(ColDomainID)),
		Category:       row.Get(h.Column(ColCategory)),
		Year:           row.Get(h.Column(ColYear)),
		Date:           row.Get(h.Column(ColDate)),
		IndicatorID:    row.Get(h.Column(ColIndicatorID)),
		IndicatorLabel: row.Get(h.Column(ColIndicatorLabel)),
		Unit:           row.Get(h.Column(ColUnit)),
	}

	if code, err := strconv.Atoi(row.Get(h.Column(ColSubPeriod))); err == nil {
		p.SubPeriodCode = code
	}

	raw := row.Get(h.Column(ColValue))
	if !strings.Contains(raw, ".") {
		raw = strings.Replace(raw, ",", ".", 1)
	}
	if d, err := decimal.NewFromString(raw); err == nil {
		p.Value = decimal.NewNullDecimal(d)
	} else {
		p.RawValue = row.Get(h.Column(ColValue))
	}

	return p
}
