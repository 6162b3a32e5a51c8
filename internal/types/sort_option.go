package types

import (
	"errors"
	"strings"
)

var ErrInvalidSortOption = errors.New("invalid sort option")

type SortOption int

const (
	SortByRecency SortOption = iota
	SortByPriority
)

var sortOptions = []SortOption{SortByRecency, SortByPriority}

// SortOptions returns the fixed sequence a selected sort index points into.
func SortOptions() []SortOption {
	return append([]SortOption(nil), sortOptions...)
}

func SortOptionAt(index int) (SortOption, bool) {
	if index < 0 || index >= len(sortOptions) {
		return 0, false
	}
	return sortOptions[index], true
}

func (s SortOption) Index() int {
	for i, option := range sortOptions {
		if option == s {
			return i
		}
	}
	return -1
}

func (s SortOption) String() string {
	switch s {
	case SortByRecency:
		return "recency"
	case SortByPriority:
		return "priority"
	default:
		return "unknown"
	}
}

func (s SortOption) Label() string {
	switch s {
	case SortByRecency:
		return "Recently updated"
	case SortByPriority:
		return "Priority"
	default:
		return "Unknown"
	}
}

func ParseSortOption(raw string) (SortOption, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "recency", "recent", "updated":
		return SortByRecency, nil
	case "priority":
		return SortByPriority, nil
	default:
		return 0, ErrInvalidSortOption
	}
}
