// Package calendar holds the state behind the date picker shown next to
// workout date fields. Rendering the month grid is left to the caller.
package calendar

import (
	"errors"
	"fmt"
	"time"

	"example.com/fitlog/internal/domain"
)

var (
	// ErrClosed is returned by any transition on a picker that was already committed or cancelled.
	ErrClosed = errors.New("calendar picker is closed")
	// ErrInvalidDay is returned when a day does not exist in the displayed month.
	ErrInvalidDay = errors.New("day is not in the displayed month")
)

// Picker tracks the displayed month and the selected date. The zero value is not usable.
type Picker struct {
	original string
	year     int
	month    time.Month
	selected time.Time
	closed   bool
}

// New opens a picker for the field value. An unparsable value falls back to now's date.
func New(value string, now time.Time) *Picker {
	selected, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		selected = dateOf(now)
	}
	return &Picker{
		original: value,
		year:     selected.Year(),
		month:    selected.Month(),
		selected: selected,
	}
}

// Year is the displayed year.
func (p *Picker) Year() int { return p.year }

// Month is the displayed month.
func (p *Picker) Month() time.Month { return p.month }

// Selected is the selected date at midnight UTC.
func (p *Picker) Selected() time.Time { return p.selected }

// Closed reports whether the picker was committed or cancelled.
func (p *Picker) Closed() bool { return p.closed }

// SelectedValue renders the selection the way date fields store it.
func (p *Picker) SelectedValue() string {
	return p.selected.Format(domain.DateLayout)
}

// Title is the header caption, e.g. "January 2024".
func (p *Picker) Title() string {
	return fmt.Sprintf("%s %d", p.month, p.year)
}

// DaysInMonth reports the number of days in the displayed month.
func (p *Picker) DaysInMonth() int {
	return daysIn(p.year, p.month)
}

// NextMonth moves the display forward one month. The selection is kept.
func (p *Picker) NextMonth() error {
	if p.closed {
		return ErrClosed
	}
	if p.month == time.December {
		p.month = time.January
		p.year++
		return nil
	}
	p.month++
	return nil
}

// PrevMonth moves the display back one month. The selection is kept.
func (p *Picker) PrevMonth() error {
	if p.closed {
		return ErrClosed
	}
	if p.month == time.January {
		p.month = time.December
		p.year--
		return nil
	}
	p.month--
	return nil
}

// SelectDay selects a day of the displayed month.
func (p *Picker) SelectDay(day int) error {
	if p.closed {
		return ErrClosed
	}
	if day < 1 || day > p.DaysInMonth() {
		return fmt.Errorf("%w: %d", ErrInvalidDay, day)
	}
	p.selected = time.Date(p.year, p.month, day, 0, 0, 0, 0, time.UTC)
	return nil
}

// JumpToday selects now's date, shows its month and commits it.
func (p *Picker) JumpToday(now time.Time) (string, error) {
	if p.closed {
		return "", ErrClosed
	}
	p.selected = dateOf(now)
	p.year, p.month = p.selected.Year(), p.selected.Month()
	return p.Done()
}

// Done closes the picker and returns the selection as the new field value.
func (p *Picker) Done() (string, error) {
	if p.closed {
		return "", ErrClosed
	}
	p.closed = true
	return p.SelectedValue(), nil
}

// Cancel closes the picker and returns the field value it was opened with.
func (p *Picker) Cancel() (string, error) {
	if p.closed {
		return "", ErrClosed
	}
	p.closed = true
	return p.original, nil
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
