package gallery

import (
	"time"

	"github.com/bep/debounce"
)

// DefaultDebounce is the quiet period before a typed query is searched
const DefaultDebounce = 500 * time.Millisecond

// SearchDebouncer coalesces bursts of query edits into one search.
//
// Each QueryChanged call resets pagination immediately and (re)schedules fire
// for the latest query; a pending query is superseded and never fired. A fire
// that has already started is not interrupted.
type SearchDebouncer struct {
	debounced func(f func())
	reset     func()
	fire      func(query string)
}

// NewSearchDebouncer creates a debouncer. reset runs synchronously on every
// change; fire runs on a timer goroutine once the input has been quiet for
// delay.
func NewSearchDebouncer(delay time.Duration, reset func(), fire func(query string)) *SearchDebouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	if reset == nil {
		reset = func() {}
	}
	return &SearchDebouncer{
		debounced: debounce.New(delay),
		reset:     reset,
		fire:      fire,
	}
}

// QueryChanged records a new input value
func (d *SearchDebouncer) QueryChanged(query string) {
	d.reset()
	d.debounced(func() {
		d.fire(query)
	})
}

// Cancel drops any pending search
func (d *SearchDebouncer) Cancel() {
	d.debounced(func() {})
}
