package notes

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"daywise/internal/logging"
	"daywise/internal/types"
)

const (
	DefaultRefreshDelay = 500 * time.Millisecond
	DefaultLoadDelay    = 450 * time.Millisecond
)

var ErrNoNoteSelected = errors.New("no note selected")

type Option func(*options)

type options struct {
	now          func() time.Time
	newID        func() string
	refreshDelay time.Duration
	loadDelay    time.Duration
	sort         types.SortOption
	logger       logging.Logger
}

func defaultOptions() options {
	return options{
		now:          time.Now,
		newID:        uuid.NewString,
		refreshDelay: DefaultRefreshDelay,
		loadDelay:    DefaultLoadDelay,
		sort:         types.SortByRecency,
		logger:       logging.Nop(),
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(o *options) {
		if newID != nil {
			o.newID = newID
		}
	}
}

// WithRefreshDelay sets the minimum visible refresh time. Zero disables it.
func WithRefreshDelay(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.refreshDelay = d
		}
	}
}

// WithLoadDelay sets the minimum visible loading time of the editor. Zero
// disables it.
func WithLoadDelay(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.loadDelay = d
		}
	}
}

// WithSort sets the sort the home list starts with.
func WithSort(option types.SortOption) Option {
	return func(o *options) {
		if option.Index() >= 0 {
			o.sort = option
		}
	}
}

func WithLogger(logger logging.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
