package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(daysFromNow int) *time.Time {
	d := time.Now().AddDate(0, 0, daysFromNow)
	return &d
}

func TestExhibitionStatusOn(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		start    *time.Time
		end      *time.Time
		expected ExhibitionStatus
	}{
		{
			name:     "running exhibition is ongoing",
			start:    date(-10),
			end:      date(10),
			expected: ExhibitionOngoing,
		},
		{
			name:     "future start is upcoming",
			start:    date(5),
			end:      date(15),
			expected: ExhibitionUpcoming,
		},
		{
			name:     "ended yesterday is past",
			start:    date(-20),
			end:      date(-1),
			expected: ExhibitionPast,
		},
		{
			name:     "open ended never expires",
			start:    date(-1),
			end:      nil,
			expected: ExhibitionOngoing,
		},
		{
			name:     "no start date is upcoming",
			start:    nil,
			end:      nil,
			expected: ExhibitionUpcoming,
		},
		{
			name:     "starts today is ongoing",
			start:    date(0),
			end:      date(10),
			expected: ExhibitionOngoing,
		},
		{
			name:     "ends today is still ongoing",
			start:    date(-10),
			end:      date(0),
			expected: ExhibitionOngoing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Exhibition{StartDate: tt.start, EndDate: tt.end}
			assert.Equal(t, tt.expected, e.StatusOn(now))
		})
	}
}
