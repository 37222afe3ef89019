// Package numbering formats tenant document numbers.
package numbering

import (
	"fmt"
	"time"
)

// DefaultFiscalYearStartMonth is April, the Indian financial year.
const DefaultFiscalYearStartMonth = 4

// FinancialYear returns the label of the fiscal year containing date, e.g.
// "2024-25" for 2025-03-31 with an April start. The label always names the
// start year and the next one, so a January start gives "2025-26" for 2025.
func FinancialYear(date time.Time, startMonth int) string {
	if startMonth < 1 || startMonth > 12 {
		startMonth = DefaultFiscalYearStartMonth
	}
	start := date.Year()
	if int(date.Month()) < startMonth {
		start--
	}
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}

// Format renders a document number as {prefix}{fy}/{serial:03d}.
func Format(prefix string, date time.Time, startMonth int, serial int64) string {
	return fmt.Sprintf("%s%s/%03d", prefix, FinancialYear(date, startMonth), serial)
}
