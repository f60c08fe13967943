package dashboard

import (
	"strings"

	"github.com/ougirez/statdash/internal/domain"
)

const excludePrefix = "!"

// filter applies an indicator's DataFilter and FilterTahun settings.
// DataFilter is a comma list of categories; "!name" excludes a category.
type filter struct {
	include map[string]struct{}
	exclude map[string]struct{}
	years   map[string]struct{}
}

func newFilter(ind *domain.Indicator) filter {
	f := filter{
		include: make(map[string]struct{}),
		exclude: make(map[string]struct{}),
		years:   make(map[string]struct{}),
	}

	for _, item := range splitList(ind.CategoryFilter) {
		if name, ok := strings.CutPrefix(item, excludePrefix); ok {
			if name = strings.TrimSpace(name); name != "" {
				f.exclude[strings.ToLower(name)] = struct{}{}
			}
			continue
		}
		f.include[strings.ToLower(item)] = struct{}{}
	}
	for _, y := range splitList(ind.YearFilter) {
		f.years[y] = struct{}{}
	}
	return f
}

func (f filter) keep(p *domain.DataPoint) bool {
	category := strings.ToLower(strings.TrimSpace(p.Category))
	if _, ok := f.exclude[category]; ok {
		return false
	}
	if len(f.include) > 0 {
		if _, ok := f.include[category]; !ok {
			return false
		}
	}
	if len(f.years) > 0 {
		if _, ok := f.years[strings.TrimSpace(p.Year)]; !ok {
			return false
		}
	}
	return true
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
