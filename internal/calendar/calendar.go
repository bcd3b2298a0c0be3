// Package calendar provides the anniversary date arithmetic used by the
// address book: days until the next yearly occurrence of a date, and
// membership of a re-anchored date in a window of days starting today.
// All functions are pure; the caller passes today's date.
package calendar

import "time"

const day = 24 * time.Hour

// Dated is implemented by items that may carry an anniversary date.
type Dated interface {
	AnniversaryDate() (time.Time, bool)
}

// Midnight returns t's calendar date at 00:00 UTC, so differences between
// two results are exact multiples of 24 hours.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysToAnniversary returns the number of days from today until the next
// occurrence of birthday's month and day; zero when it is today. A Feb-29
// birthday that has no date in the target year is counted as Feb-28 plus
// one day.
func DaysToAnniversary(birthday, today time.Time) int {
	t := Midnight(today)
	if days, ok := daysUntil(birthday.Month(), birthday.Day(), t); ok {
		return days
	}
	days, _ := daysUntil(time.February, 28, t)
	return days + 1
}

// daysUntil reports false when month/day does not exist in a year it has
// to be placed in.
func daysUntil(month time.Month, d int, today time.Time) (int, bool) {
	year := today.Year()
	if !exists(year, month, d) {
		return 0, false
	}
	next := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
	if today.After(next) {
		year++
		if !exists(year, month, d) {
			return 0, false
		}
		next = time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
	}
	return int(next.Sub(today) / day), true
}

func exists(year int, month time.Month, d int) bool {
	t := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
	return t.Month() == month && t.Day() == d
}

// AnchorToYear moves date into year. Feb-29 in a non-leap year lands on
// Mar-1.
func AnchorToYear(date time.Time, year int) time.Time {
	return time.Date(year, date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}

// InWindow reports whether date, re-anchored to today's year, falls in
// [today, today+deltaDays]. A negative delta is an empty window.
func InWindow(date, today time.Time, deltaDays int) bool {
	if deltaDays < 0 {
		return false
	}
	t := Midnight(today)
	end := t.AddDate(0, 0, deltaDays)
	anchored := AnchorToYear(date, t.Year())
	return !anchored.Before(t) && !anchored.After(end)
}

// FindInDayInterval returns, in input order, the items whose date falls in
// the window starting today. Items without a date are skipped.
func FindInDayInterval[T Dated](items []T, deltaDays int, today time.Time) []T {
	var found []T
	for _, item := range items {
		date, ok := item.AnniversaryDate()
		if !ok {
			continue
		}
		if InWindow(date, today, deltaDays) {
			found = append(found, item)
		}
	}
	return found
}
