package domain

import "strings"

// Chart and trend defaults applied to newly created indicators.
const (
	DefaultChartType     = "line"
	DefaultColorTheme    = "blue"
	DefaultTrendPolarity = "UpIsGood"
	StatusActive         = "Aktif"
	StatusInactive       = "Nonaktif"
)

// Indicator is one row of the catalog table: a statistical variable to track.
type Indicator struct {
	ID            string `json:"id" validate:"required,numeric"`
	Label         string `json:"label" validate:"required"`
	Category      string `json:"category" validate:"required"`
	Status        string `json:"status"`
	Description   string `json:"description"`
	ChartType     string `json:"chart_type"`
	ColorTheme    string `json:"color_theme"`
	TrendPolarity string `json:"trend_polarity"`
	ShowOnHome    bool   `json:"show_on_home"`
	TargetRPJMD   string `json:"target_rpjmd"`
	// CategoryFilter is a comma separated list of category labels; "!label" excludes.
	CategoryFilter string `json:"category_filter,omitempty"`
	// YearFilter is a comma separated list of year labels.
	YearFilter string `json:"year_filter,omitempty"`
}

func (i *Indicator) Active() bool {
	return i.Status == StatusActive
}

// ApplyDefaults fills presentation fields left empty on creation.
func (i *Indicator) ApplyDefaults() {
	if i.Status == "" {
		i.Status = StatusActive
	}
	if i.ChartType == "" {
		i.ChartType = DefaultChartType
	}
	if i.ColorTheme == "" {
		i.ColorTheme = DefaultColorTheme
	}
	if i.TrendPolarity == "" {
		i.TrendPolarity = DefaultTrendPolarity
	}
}

// InCategory reports whether the indicator belongs to the dashboard slug.
func (i *Indicator) InCategory(slug string) bool {
	return strings.EqualFold(strings.TrimSpace(i.Category), strings.TrimSpace(slug))
}

// IndicatorUpdate carries the editable fields; nil means "leave unchanged".
type IndicatorUpdate struct {
	Status         *string `json:"status,omitempty"`
	Category       *string `json:"category,omitempty"`
	Description    *string `json:"description,omitempty"`
	ChartType      *string `json:"chart_type,omitempty"`
	ColorTheme     *string `json:"color_theme,omitempty"`
	TrendPolarity  *string `json:"trend_polarity,omitempty"`
	ShowOnHome     *bool   `json:"show_on_home,omitempty"`
	TargetRPJMD    *string `json:"target_rpjmd,omitempty"`
	CategoryFilter *string `json:"category_filter,omitempty"`
	YearFilter     *string `json:"year_filter,omitempty"`
}
