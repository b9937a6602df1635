// Package query turns loosely-typed listing parameters into safe, bounded
// query descriptors and predicate descriptions. Everything in this package
// is pure: no I/O, no failure modes.
package query

import (
	"strconv"
	"strings"
)

// Defaults applied when pagination inputs are absent or malformed.
const (
	DefaultPage   = 1
	DefaultLimit  = 10
	DefaultSortBy = "createdAt"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Options carries raw, possibly absent or malformed pagination inputs as
// they arrive from the transport layer.
type Options struct {
	Page      string
	Limit     string
	SortBy    string
	SortOrder string
}

// Descriptor is the normalized form used to execute one listing query.
// It is recomputed per request and never persisted.
type Descriptor struct {
	Page      int
	Limit     int
	Skip      int
	SortBy    string
	SortOrder string
}

// Normalize produces a valid Descriptor for any input. Non-numeric or
// non-positive page/limit values fall back to the defaults, sortBy gets a
// default but is not validated here (the content service applies its
// allow-list), and sortOrder is "desc" only for the exact literal "desc".
func Normalize(opts Options) Descriptor {
	page := parsePositive(opts.Page, DefaultPage)
	limit := parsePositive(opts.Limit, DefaultLimit)

	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = DefaultSortBy
	}

	sortOrder := OrderAsc
	if opts.SortOrder == OrderDesc {
		sortOrder = OrderDesc
	}

	return Descriptor{
		Page:      page,
		Limit:     limit,
		Skip:      (page - 1) * limit,
		SortBy:    sortBy,
		SortOrder: sortOrder,
	}
}

func parsePositive(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
