package numbering_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"khata/internal/numbering"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFinancialYear(t *testing.T) {
	tests := []struct {
		name  string
		date  time.Time
		start int
		want  string
	}{
		{"april_start_before_boundary", date(2025, 3, 31), 4, "2024-25"},
		{"april_start_on_boundary", date(2025, 4, 1), 4, "2025-26"},
		{"april_start_december", date(2024, 12, 15), 4, "2024-25"},
		{"january_start_keeps_two_year_label", date(2025, 6, 1), 1, "2025-26"},
		{"january_start_first_day", date(2025, 1, 1), 1, "2025-26"},
		{"december_start_before_boundary", date(2025, 11, 30), 12, "2024-25"},
		{"october_start", date(2025, 9, 30), 10, "2024-25"},
		{"century_rollover", date(2099, 5, 1), 4, "2099-00"},
		{"invalid_start_falls_back_to_april", date(2025, 3, 1), 0, "2024-25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, numbering.FinancialYear(tt.date, tt.start))
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "TES/2024-25/001", numbering.Format("TES/", date(2024, 7, 1), 4, 1))
	assert.Equal(t, "INV/2024-25/042", numbering.Format("INV/", date(2025, 1, 9), 4, 42))
	assert.Equal(t, "2025-26/1234", numbering.Format("", date(2025, 4, 1), 4, 1234))
}
