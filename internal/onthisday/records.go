package onthisday

import (
	"encoding/json"
	"fmt"
	"time"
)

// MonthDays lists every valid month/day pair, using a non-leap baseline year
// so Feb 29 is excluded from the iteration itself. Leap-day events still
// appear through the feed's own date composition per event year.
func MonthDays() [][2]int {
	out := make([][2]int, 0, 365)
	for m := 1; m <= 12; m++ {
		for d := 1; d <= 31; d++ {
			if !validDate(2001, m, d) {
				continue
			}
			out = append(out, [2]int{m, d})
		}
	}
	return out
}

func validDate(year, month, day int) bool {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return int(t.Month()) == month && t.Day() == day
}

// buildDayRecords turns one fetched page into dated records, keeping only
// events within [startYear, endYear]. Dates that do not exist in the event's
// own year (Feb 29 in a non-leap year) are skipped.
func buildDayRecords(page *feedPage, month, day, startYear, endYear int) []DayEvent {
	records := make([]DayEvent, 0, len(page.Events))
	for _, e := range page.Events {
		if e.Year == nil || *e.Year < startYear || *e.Year > endYear {
			continue
		}
		if !validDate(*e.Year, month, day) {
			continue
		}
		records = append(records, DayEvent{
			Date:      fmt.Sprintf("%04d-%02d-%02d", *e.Year, month, day),
			Month:     month,
			Day:       day,
			EventYear: *e.Year,
			Event:     oneSentence(e),
		})
	}
	return records
}

// oneSentence renders a feed event as a single sentence. Events without text
// fall back to their raw JSON so nothing is silently lost.
func oneSentence(e feedEvent) string {
	if e.Text != "" {
		return e.Text
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return ""
	}
	return string(raw)
}
