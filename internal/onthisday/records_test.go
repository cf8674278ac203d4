package onthisday

import (
	"testing"

	"chronocorpus/internal/corpus"
)

func TestMonthDays(t *testing.T) {
	days := MonthDays()
	if len(days) != 365 {
		t.Fatalf("expected 365 month/day pairs, got %d", len(days))
	}
	for _, md := range days {
		if md[0] == 2 && md[1] == 29 {
			t.Fatal("Feb 29 must not be iterated")
		}
	}
	if days[0] != [2]int{1, 1} || days[len(days)-1] != [2]int{12, 31} {
		t.Fatalf("unexpected endpoints: %v %v", days[0], days[len(days)-1])
	}
}

func TestBuildDayRecords(t *testing.T) {
	year := func(y int) *int { return &y }
	page := &feedPage{Events: []feedEvent{
		{Year: year(1957), Text: "In range."},
		{Year: year(1857), Text: "Before the range."},
		{Year: year(2030), Text: "After the range."},
		{Year: nil, Text: "No year at all."},
	}}

	records := buildDayRecords(page, 3, 3, 1900, 2025)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.Date != "1957-03-03" || rec.EventYear != 1957 || rec.Event != "In range." {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestBuildDayRecordsSkipsImpossibleDates(t *testing.T) {
	year := func(y int) *int { return &y }
	page := &feedPage{Events: []feedEvent{
		{Year: year(2000), Text: "Leap year, valid."},
		{Year: year(2001), Text: "Not a leap year."},
	}}

	records := buildDayRecords(page, 2, 29, 1900, 2025)
	if len(records) != 1 {
		t.Fatalf("expected only the leap-year record, got %d", len(records))
	}
	if records[0].Date != "2000-02-29" {
		t.Fatalf("unexpected date: %q", records[0].Date)
	}
}

func TestOneSentenceFallback(t *testing.T) {
	e := feedEvent{}
	got := oneSentence(e)
	if got == "" {
		t.Fatal("textless event must fall back to raw JSON, not be dropped")
	}
}

func TestToRecords(t *testing.T) {
	events := []DayEvent{{Date: "1957-03-03", Month: 3, Day: 3, EventYear: 1957, Event: "Something happened."}}
	records := ToRecords(events, corpus.StableIDs())
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.Metadata.Source != SourceOnThisDay {
		t.Fatalf("unexpected source: %q", rec.Metadata.Source)
	}
	if rec.PrevEventID != "" || rec.NextEventID != "" {
		t.Fatal("day-in-history records must never be chained")
	}
	if rec.Metadata.EventYear == nil || *rec.Metadata.EventYear != 1957 {
		t.Fatalf("event year not carried: %v", rec.Metadata.EventYear)
	}
}
