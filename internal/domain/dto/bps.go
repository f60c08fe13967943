package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	StatusOK      = "OK"
	DataAvailable = "available"
)

// ID is a provider identifier that may arrive as a JSON number or string.
// It keeps the textual form so composite keys match the provider byte for byte.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	*id = ID(b)
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Cell is one datacontent value kept as sent. BPS mixes numbers, numeric strings
// and placeholders such as "-"; null and "" both leave Raw empty.
type Cell struct {
	Raw string
}

func (c *Cell) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*c = Cell{}
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Cell{Raw: strings.TrimSpace(s)}
	default:
		*c = Cell{Raw: string(b)}
	}
	return nil
}

// Decimal parses the value; anything that is not a number is invalid.
func (c Cell) Decimal() decimal.NullDecimal {
	d, err := decimal.NewFromString(c.Raw)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// Text is the raw value when it is present but not a number, "" otherwise.
func (c Cell) Text() string {
	if c.Raw == "" || c.Decimal().Valid {
		return ""
	}
	return c.Raw
}

// PeriodListResponse is one page of list/model/th.
// Data is a heterogeneous pair: [PageInfo, []PeriodItem].
type PeriodListResponse struct {
	Status           string            `json:"status"`
	DataAvailability string            `json:"data-availability"`
	Data             []json.RawMessage `json:"data"`
}

func (r *PeriodListResponse) Available() bool {
	return r.Status == StatusOK && r.DataAvailability == DataAvailable
}

type PageInfo struct {
	Page    int `json:"page"`
	Pages   int `json:"pages"`
	PerPage int `json:"per_page"`
	Count   int `json:"count"`
	Total   int `json:"total"`
}

type PeriodItem struct {
	ID    ID     `json:"th_id"`
	Label string `json:"th"`
}

// Dimension is one {val, label} entry of vervar, turvar, tahun or turtahun.
type Dimension struct {
	Val   ID     `json:"val"`
	Label string `json:"label"`
}

// VariableDescriptor is the var entry describing the indicator itself.
type VariableDescriptor struct {
	Val   ID     `json:"val"`
	Label string `json:"label"`
	Unit  string `json:"unit"`
	Subj  string `json:"subj"`
	Def   string `json:"def"`
	Note  string `json:"note"`
}

// DataResponse is one list/model/data response: dimension lists plus the sparse value map.
type DataResponse struct {
	Status           string               `json:"status"`
	DataAvailability string               `json:"data-availability"`
	Var              []VariableDescriptor `json:"var"`
	Turvar           []Dimension          `json:"turvar"`
	Labelvervar      string               `json:"labelvervar"`
	Vervar           []Dimension          `json:"vervar"`
	Tahun            []Dimension          `json:"tahun"`
	Turtahun         []Dimension          `json:"turtahun"`
	Datacontent      map[string]Cell      `json:"datacontent"`
}

// Usable reports whether the response carries a value map worth decoding.
func (r *DataResponse) Usable() bool {
	return r != nil && r.Status == StatusOK && r.Datacontent != nil
}
