package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AnnualSubPeriod is the sub-period code of a whole-year value.
const AnnualSubPeriod = 0

// Period is a (year, sub-period) pair; SubPeriodCode is a month 1..12 or AnnualSubPeriod.
type Period struct {
	YearLabel     string `json:"year"`
	SubPeriodCode int    `json:"sub_period"`
}

// DateString renders the period as DD/MM/YYYY anchored to the first of the month.
// Annual periods render with month 00.
func (p Period) DateString() string {
	return fmt.Sprintf("01/%02d/%s", p.SubPeriodCode, p.YearLabel)
}

// DataPoint is one flat row of the data table.
type DataPoint struct {
	DomainID       string              `json:"id_domain"`
	Category       string              `json:"kategori"`
	Year           string              `json:"tahun"`
	SubPeriodCode  int                 `json:"periode"`
	Date           string              `json:"pilih_tahun"`
	IndicatorID    string              `json:"id_variable"`
	IndicatorLabel string              `json:"nama_variabel"`
	Value          decimal.NullDecimal `json:"nilai"`
	// RawValue holds a present value that is not a number, such as "-".
	RawValue string `json:"nilai_raw,omitempty"`
	Unit     string `json:"satuan"`

	// CategoryID is the provider's vervar id; labels are not unique across ids.
	CategoryID string `json:"-"`
}

func (d *DataPoint) Period() Period {
	return Period{YearLabel: d.Year, SubPeriodCode: d.SubPeriodCode}
}

// CellKey identifies the cube cell a row came from within one indicator.
// Rows read back from a store carry no category id and fall back to the label.
func (d *DataPoint) CellKey() string {
	category := d.CategoryID
	if category == "" {
		category = d.Category
	}
	return category + "\x00" + d.Year + "\x00" + fmt.Sprint(d.SubPeriodCode)
}
