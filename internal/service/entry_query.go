package service

import (
	"sort"
	"strings"

	"go-barcode-archive/internal/model"
)

// Sort keys accepted by entry listing.
const (
	SortByCreated = "created_at"
	SortByCode    = "code"
	SortByVendor  = "vendor"
	SortByProduct = "product"
)

type QueryOptions struct {
	Search     string
	Sort       string
	Descending bool
}

// FilterEntries keeps entries whose code, attribution name, or any snapshot
// value contains the query as a case-insensitive substring. An empty query
// keeps everything. The input slice is never mutated.
func FilterEntries(entries []model.Entry, query string) []model.Entry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return entries
	}
	filtered := make([]model.Entry, 0, len(entries))
	for _, e := range entries {
		if entryMatches(&e, query) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func entryMatches(e *model.Entry, query string) bool {
	if strings.Contains(strings.ToLower(e.Code), query) {
		return true
	}
	if strings.Contains(strings.ToLower(e.UserName), query) {
		return true
	}
	for _, v := range e.Lookup.Values() {
		if strings.Contains(strings.ToLower(v), query) {
			return true
		}
	}
	return false
}

// SortEntries orders entries in place. Unknown keys fall back to creation
// time; entries without a snapshot sort with empty-string lookup fields.
func SortEntries(entries []model.Entry, key string, descending bool) {
	var less func(a, b *model.Entry) bool
	switch key {
	case SortByCode:
		less = func(a, b *model.Entry) bool { return a.Code < b.Code }
	case SortByVendor:
		less = func(a, b *model.Entry) bool { return lookupVendor(a) < lookupVendor(b) }
	case SortByProduct:
		less = func(a, b *model.Entry) bool { return lookupProduct(a) < lookupProduct(b) }
	default:
		less = func(a, b *model.Entry) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if descending {
			return less(&entries[j], &entries[i])
		}
		return less(&entries[i], &entries[j])
	})
}

func lookupVendor(e *model.Entry) string {
	if e.Lookup == nil {
		return ""
	}
	return e.Lookup.VendorName
}

func lookupProduct(e *model.Entry) string {
	if e.Lookup == nil {
		return ""
	}
	return e.Lookup.ProductName
}
