// Package timeslot parses and normalizes bookable slot timestamps.
//
// The canonical slot key is an ISO-8601 UTC string truncated to whole
// seconds with a trailing "Z". Normalization is idempotent: normalizing
// an already-normalized slot yields the same string.
package timeslot

import (
	"errors"
	"time"
)

// ErrInvalidSlot is returned for strings that are not ISO-8601 timestamps.
var ErrInvalidSlot = errors.New("slotISO must be ISO-8601 timestamp")

// Naive layouts are assumed to be UTC.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// Parse accepts an ISO-8601 timestamp with a trailing "Z", an explicit
// offset, or no zone at all (assumed UTC), and returns the instant in UTC.
func Parse(slot string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, slot); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, slot, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidSlot
}

// Normalize truncates sub-second precision and re-serializes with a "Z"
// suffix. The result is the canonical slot key used for comparisons and
// storage.
func Normalize(slot string) (string, error) {
	t, err := Parse(slot)
	if err != nil {
		return "", err
	}
	return Format(t), nil
}

// Format renders an instant as a canonical slot key.
func Format(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}
