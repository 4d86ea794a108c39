// Package pipeline implements the derivation step every list view shares:
// free-text search, categorical filters and a sort key applied to an
// in-memory slice of records. Filters are independent predicates ANDed
// together, search is one more predicate, and the sort runs once over the
// fully filtered set. Nothing here does I/O or mutates its input.
package pipeline

import "strings"

// StatusFilter is the ALL / ACTIVE / INACTIVE vocabulary used by category,
// floor and shop lists.
type StatusFilter string

const (
	StatusAll      StatusFilter = "ALL"
	StatusActive   StatusFilter = "ACTIVE"
	StatusInactive StatusFilter = "INACTIVE"
)

// ParseStatusFilter normalizes a raw query parameter. Anything unrecognized
// (including the empty string) disables the filter.
func ParseStatusFilter(raw string) StatusFilter {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "ACTIVE":
		return StatusActive
	case "INACTIVE":
		return StatusInactive
	default:
		return StatusAll
	}
}

func (f StatusFilter) matches(isActive bool) bool {
	switch f {
	case StatusActive:
		return isActive
	case StatusInactive:
		return !isActive
	default:
		return true
	}
}

// filterDisabled reports whether a categorical filter value is the
// ALL/all sentinel (or simply absent).
func filterDisabled(value string) bool {
	return value == "" || strings.EqualFold(value, "all")
}
