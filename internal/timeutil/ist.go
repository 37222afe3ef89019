package timeutil

import (
	"time"
)

// IST is the Indian Standard Time location (UTC+5:30)
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		IST = time.FixedZone("IST", 5*60*60+30*60)
	}
}

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Now returns the current time in IST
func Now() time.Time {
	return time.Now().In(IST)
}

// Today returns the current IST calendar date as a UTC-midnight value.
func Today() time.Time {
	return DateOf(Now())
}

// DateOf strips the clock from t, keeping its own calendar day, and returns
// it at UTC midnight. Calendar dates from the database compare directly with
// values produced here.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole number of days from a to b (b - a).
func DaysBetween(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)).Hours() / 24)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.UTC)
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
