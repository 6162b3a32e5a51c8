package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidPriority = errors.New("invalid priority")

// Priority is ordered by ordinal: lower ordinals sort first.
type Priority int

const (
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 2
	PriorityNormal Priority = 3
	PriorityLow    Priority = 4
)

const DefaultPriority = PriorityNormal

var priorities = []Priority{PriorityHigh, PriorityMedium, PriorityNormal, PriorityLow}

// Priorities returns the closed priority set in ordinal order.
func Priorities() []Priority {
	return append([]Priority(nil), priorities...)
}

func (p Priority) Ordinal() int {
	return int(p)
}

func (p Priority) Valid() bool {
	return p >= PriorityHigh && p <= PriorityLow
}

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityNormal:
		return "normal"
	case PriorityLow:
		return "low"
	default:
		return "priority(" + strconv.Itoa(int(p)) + ")"
	}
}

// Name is the display label.
func (p Priority) Name() string {
	name := p.String()
	if !p.Valid() {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func ParsePriority(raw string) (Priority, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	for _, p := range priorities {
		if value == p.String() {
			return p, nil
		}
	}
	if n, err := strconv.Atoi(value); err == nil {
		return PriorityFromOrdinal(n)
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
}

func PriorityFromOrdinal(ordinal int) (Priority, error) {
	p := Priority(ordinal)
	if !p.Valid() {
		return 0, fmt.Errorf("%w: ordinal %d", ErrInvalidPriority, ordinal)
	}
	return p, nil
}

type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Priority  Priority  `json:"priority"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// Timestamp normalizes t to the millisecond resolution notes are stored at.
func Timestamp(t time.Time) time.Time {
	return time.UnixMilli(t.UnixMilli()).UTC()
}

func FromUnixMilli(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func (n Note) IsZero() bool {
	return n.ID == "" && n.Title == "" && n.Content == ""
}

// FormatDate renders a note timestamp as MM/dd/yyyy.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("01/02/2006")
}
