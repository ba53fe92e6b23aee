// Package model defines the plain value records the navi engine computes over.
package model

import "time"

// Money is an amount in the smallest currency unit (yen, cents).
type Money int64

// Day returns the calendar day y-m-d as UTC midnight.
func Day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateOf returns the calendar day of t, read in t's location, as UTC midnight.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
