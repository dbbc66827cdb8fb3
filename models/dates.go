package models

import (
	"errors"
	"strings"
	"time"
)

var ledgerDateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ParseLedgerDate accepts a bare calendar date or an ISO-8601 instant.
func ParseLedgerDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	for _, layout := range ledgerDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New("unrecognised date: " + s)
}

func FormatLedgerDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
