package services

import (
	"testing"
	"time"
)

func TestServiceDue(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	hourAgo := now.Add(-1 * time.Hour)
	twoDaysAgo := now.Add(-48 * time.Hour)

	cases := []struct {
		name          string
		frequency     int
		lastServiced  *time.Time
		want          bool
	}{
		{"never serviced", 24, nil, true},
		{"recently serviced", 24, &hourAgo, false},
		{"overdue", 24, &twoDaysAgo, true},
		{"exactly at boundary", 48, &twoDaysAgo, true},
		{"zero frequency disables", 0, &twoDaysAgo, false},
		{"zero frequency never serviced", 0, nil, false},
	}
	for _, c := range cases {
		if got := ServiceDue(c.frequency, c.lastServiced, now); got != c.want {
			t.Errorf("%s: ServiceDue(%d, ...) = %v, want %v", c.name, c.frequency, got, c.want)
		}
	}
}
