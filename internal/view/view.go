// Package view computes the visible task list from the cached tasks and the
// user-chosen criteria. It is pure: no network, no mutation of inputs.
package view

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"taskdeck/internal/service"
)

// Filter selects tasks by completion state.
type Filter string

const (
	FilterAll    Filter = "all"
	FilterActive Filter = "active"
	FilterDone   Filter = "done"
)

// Sort selects the ordering of the visible list.
type Sort string

const (
	SortNewest Sort = "newest"
	SortOldest Sort = "oldest"
	SortTitle  Sort = "title"
)

// Criteria is the (query, filter, sort) tuple controlling the visible list.
// It is client-only and never sent to the gateway.
type Criteria struct {
	Query  string `json:"query"`
	Filter Filter `json:"filter"`
	Sort   Sort   `json:"sort"`
}

// DefaultCriteria returns the criteria applied when none have been chosen:
// no query, all tasks, newest first.
func DefaultCriteria() Criteria {
	return Criteria{Filter: FilterAll, Sort: SortNewest}
}

// ParseFilter validates a filter name.
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case FilterAll, FilterActive, FilterDone:
		return Filter(s), nil
	}
	return "", fmt.Errorf("invalid filter: %s", s)
}

// ParseSort validates a sort name.
func ParseSort(s string) (Sort, error) {
	switch Sort(s) {
	case SortNewest, SortOldest, SortTitle:
		return Sort(s), nil
	}
	return "", fmt.Errorf("invalid sort: %s", s)
}

// Visible returns a fresh ordered slice of the tasks matching the criteria.
// The input slice is never modified.
//
// Order of operations: completion filter, then case-insensitive substring
// search on the trimmed query, then sort. Sorting is stable, so title ties
// keep their relative cache order.
func Visible(tasks []service.Task, c Criteria) []service.Task {
	out := make([]service.Task, 0, len(tasks))

	query := strings.ToLower(strings.TrimSpace(c.Query))
	for _, t := range tasks {
		switch c.Filter {
		case FilterActive:
			if t.Done {
				continue
			}
		case FilterDone:
			if !t.Done {
				continue
			}
		}
		if query != "" && !strings.Contains(strings.ToLower(t.Title), query) {
			continue
		}
		out = append(out, t)
	}

	switch c.Sort {
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	case SortTitle:
		// Collators carry internal buffers, so build one per call.
		col := collate.New(language.Und)
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Title, out[j].Title) < 0
		})
	default: // SortNewest
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	}

	return out
}
