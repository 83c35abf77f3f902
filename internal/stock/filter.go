package stock

import (
	"strings"

	"inventory-service/internal/model"
)

// Mode selects which stock classifications a filter keeps.
type Mode string

const (
	ModeAll Mode = "all"
	ModeIn  Mode = "in"
	ModeLow Mode = "low"
)

// ParseMode maps a raw query-parameter value to a Mode. Anything other than
// "in" or "low" (including the empty string) means no stock filtering.
func ParseMode(raw string) Mode {
	switch raw {
	case string(ModeIn):
		return ModeIn
	case string(ModeLow):
		return ModeLow
	default:
		return ModeAll
	}
}

// Filter is a conjunction of optional criteria over a fetched item
// collection. Zero-value fields are inactive; Stock's zero value is treated
// the same as ModeAll.
type Filter struct {
	Query      string
	CategoryID string
	LocationID string
	Stock      Mode
}

// Match reports whether a single item satisfies every active criterion.
func (f Filter) Match(item model.Item) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		hay := strings.ToLower(item.ItemName + " " + deref(item.TypeDescription) + " " + deref(item.Notes))
		if !strings.Contains(hay, q) {
			return false
		}
	}

	if f.CategoryID != "" && item.ResolvedCategoryID() != f.CategoryID {
		return false
	}

	if f.LocationID != "" && item.ResolvedStorageLocationID() != f.LocationID {
		return false
	}

	switch f.Stock {
	case ModeLow:
		return ClassifyItem(item) == StatusLow
	case ModeIn:
		return ClassifyItem(item) == StatusIn
	}

	return true
}

// Apply returns the order-stable subsequence of items matching the filter.
func (f Filter) Apply(items []model.Item) []model.Item {
	filtered := make([]model.Item, 0, len(items))
	for _, item := range items {
		if f.Match(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// IsZero reports whether no criterion is active.
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Query) == "" &&
		f.CategoryID == "" &&
		f.LocationID == "" &&
		(f.Stock == "" || f.Stock == ModeAll)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
