// Package decoder flattens a BPS data response (dimension lists plus a sparse value
// map) into data rows.
package decoder

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ougirez/statdash/internal/domain"
	"github.com/ougirez/statdash/internal/domain/dto"
)

// ErrNoDescriptor is returned for a response without a var entry.
var ErrNoDescriptor = errors.New("response has no variable descriptor")

// noSubIndicator stands in for the turvar id when the response has none.
const noSubIndicator = "0"

var subPeriodCodes = map[string]int{
	"januari":   1,
	"februari":  2,
	"maret":     3,
	"april":     4,
	"mei":       5,
	"juni":      6,
	"juli":      7,
	"agustus":   8,
	"september": 9,
	"oktober":   10,
	"november":  11,
	"desember":  12,
	"tahun":     domain.AnnualSubPeriod,
}

// Decoded is the outcome of one response. Skipped counts present cells dropped
// because their sub-period label has no code.
type Decoded struct {
	Rows          []*domain.DataPoint
	Skipped       int
	SkippedLabels []string
}

// SubPeriodCode maps a turtahun label to its month number, or 0 for the whole year.
func SubPeriodCode(label string) (int, bool) {
	code, ok := subPeriodCodes[strings.ToLower(strings.TrimSpace(label))]
	return code, ok
}

// CellKey builds the datacontent key: category, variable, sub-indicator, year, sub-period.
func CellKey(category, variable, subIndicator, year, subPeriod dto.ID) string {
	return string(category) + string(variable) + string(subIndicator) + string(year) + string(subPeriod)
}

// Decode walks categories × years × sub-periods and emits a row for every cell
// present in resp.Datacontent. A value that is not a number is kept as RawValue.
// It does not modify resp.
func Decode(domainID string, resp *dto.DataResponse) (*Decoded, error) {
	if resp == nil || len(resp.Var) == 0 {
		return nil, ErrNoDescriptor
	}

	descriptor := resp.Var[0]
	subIndicator := dto.ID(noSubIndicator)
	if len(resp.Turvar) > 0 {
		subIndicator = resp.Turvar[0].Val
	}

	indicatorLabel := CleanLabel(descriptor.Label)
	unit := CleanLabel(descriptor.Unit)

	out := &Decoded{
		Rows: make([]*domain.DataPoint, 0, len(resp.Datacontent)),
	}
	seenLabels := make(map[string]struct{})

	for _, category := range resp.Vervar {
		categoryLabel := CleanLabel(category.Label)

		for _, year := range resp.Tahun {
			yearLabel := strings.TrimSpace(year.Label)

			for _, sub := range resp.Turtahun {
				cell, present := resp.Datacontent[CellKey(category.Val, descriptor.Val, subIndicator, year.Val, sub.Val)]
				if !present {
					continue
				}

				code, ok := SubPeriodCode(sub.Label)
				if !ok {
					out.Skipped++
					if _, seen := seenLabels[sub.Label]; !seen {
						seenLabels[sub.Label] = struct{}{}
						out.SkippedLabels = append(out.SkippedLabels, sub.Label)
					}
					continue
				}

				period := domain.Period{YearLabel: yearLabel, SubPeriodCode: code}
				out.Rows = append(out.Rows, &domain.DataPoint{
					DomainID:       domainID,
					Category:       categoryLabel,
					CategoryID:     category.Val.String(),
					Year:           yearLabel,
					SubPeriodCode:  code,
					Date:           period.DateString(),
					IndicatorID:    descriptor.Val.String(),
					IndicatorLabel: indicatorLabel,
					Value:          cell.Decimal(),
					RawValue:       cell.Text(),
					Unit:           unit,
				})
			}
		}
	}

	return out, nil
}

// Dedupe keeps the first row of every cell; overlapping period pages yield repeats.
func Dedupe(rows []*domain.DataPoint) []*domain.DataPoint {
	seen := make(map[string]struct{}, len(rows))
	out := make([]*domain.DataPoint, 0, len(rows))
	for _, r := range rows {
		key := r.CellKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

// CleanLabel strips HTML markup BPS sometimes embeds in labels and units.
func CleanLabel(s string) string {
	s = strings.TrimSpace(s)
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
