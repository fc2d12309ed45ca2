package utils

import (
	"fmt"
	"time"
)

// IST is fixed UTC+5:30; India has no DST.
var IST = time.FixedZone("IST", 5*3600+30*60)

// Request date layouts: the display form first, then ISO for API callers.
var requestDateLayouts = []string{"02-01-2006", "2006-01-02"}

func NowIST() time.Time {
	return time.Now().In(IST)
}

// ParseDate parses a request date in dd-mm-yyyy or yyyy-mm-dd form.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range requestDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, want dd-mm-yyyy", s)
}

func IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// PrevTradingDay steps back to the most recent weekday before d. Exchange
// holidays are not modelled; this is a suggestion, not a calendar.
func PrevTradingDay(d time.Time) time.Time {
	d = d.AddDate(0, 0, -1)
	for IsWeekend(d) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// IsMarketOpen reports whether t falls inside the NSE equity session,
// 09:15 to 15:30 IST on weekdays.
func IsMarketOpen(t time.Time) bool {
	t = t.In(IST)
	if IsWeekend(t) {
		return false
	}
	minutes := t.Hour()*60 + t.Minute()
	return minutes >= 9*60+15 && minutes <= 15*60+30
}

// IsBeforeOpen reports whether t is a weekday morning before the 09:15
// IST open, when the previous session's bhavcopy is still the latest.
func IsBeforeOpen(t time.Time) bool {
	t = t.In(IST)
	if IsWeekend(t) {
		return false
	}
	return t.Hour()*60+t.Minute() < 9*60+15
}

// SameDay compares calendar dates, ignoring time of day and zone offsets
// already applied.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
