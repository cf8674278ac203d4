package corpus

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"chronocorpus/internal/models"
)

var eventTypePriority = map[models.EventType]int{
	models.EventStart: 0,
	models.EventEnd:   1,
}

// OrderingDate parses a date for comparison only. A literal "00" anywhere in
// the string marks an unknown month or day and is compared as January 1 of
// the year; the original string is never rewritten.
func OrderingDate(date string) (time.Time, error) {
	if strings.Contains(date, "00") && len(date) >= 4 {
		date = date[:4] + "-01-01"
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse ordering date: %w", err)
	}
	return t, nil
}

// SortFacts orders facts by date, starts before ends on the same day. The
// sort is stable, so re-applying it is a no-op.
func SortFacts(facts []models.Fact) error {
	type keyed struct {
		fact models.Fact
		ts   time.Time
		prio int
	}
	keys := make([]keyed, len(facts))
	for i, f := range facts {
		t, err := OrderingDate(f.Metadata.Date)
		if err != nil {
			return fmt.Errorf("order fact %q: %w", f.Text, err)
		}
		keys[i] = keyed{fact: f, ts: t, prio: eventTypePriority[f.Metadata.EventType]}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		if !keys[i].ts.Equal(keys[j].ts) {
			return keys[i].ts.Before(keys[j].ts)
		}
		return keys[i].prio < keys[j].prio
	})
	for i := range keys {
		facts[i] = keys[i].fact
	}
	return nil
}

// SortEvents orders corpus records by timestamp, starts before ends on the
// same day. Records without a timestamp sort after every dated record, in
// encounter order among themselves. Records without an event_type (the
// day-in-history family) take start priority.
func SortEvents(records []models.Record) error {
	type keyed struct {
		rec     models.Record
		undated bool
		ts      time.Time
		prio    int
	}
	keys := make([]keyed, len(records))
	for i, r := range records {
		if r.Timestamp == "" {
			keys[i] = keyed{rec: r, undated: true}
			continue
		}
		t, err := OrderingDate(r.Timestamp)
		if err != nil {
			return fmt.Errorf("order record %s: %w", r.ID, err)
		}
		keys[i] = keyed{rec: r, ts: t, prio: eventTypePriority[r.Metadata.EventType]}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		if keys[i].undated != keys[j].undated {
			return !keys[i].undated
		}
		if keys[i].undated {
			return false
		}
		if !keys[i].ts.Equal(keys[j].ts) {
			return keys[i].ts.Before(keys[j].ts)
		}
		return keys[i].prio < keys[j].prio
	})
	for i := range keys {
		records[i] = keys[i].rec
	}
	return nil
}

// SortQA orders QA records by reference date, then question_id, then sub_id.
// Records whose question text yielded no date sort last, in encounter order.
func SortQA(records []models.Record) error {
	type keyed struct {
		rec     models.Record
		undated bool
		ts      time.Time
	}
	keys := make([]keyed, len(records))
	for i, r := range records {
		if r.Timestamp == "" {
			keys[i] = keyed{rec: r, undated: true}
			continue
		}
		t, err := time.Parse("2006-01-02", r.Timestamp)
		if err != nil {
			return fmt.Errorf("order qa record %s: %w", r.ID, err)
		}
		keys[i] = keyed{rec: r, ts: t}
	}
	subID := func(r models.Record) int {
		if r.Metadata.SubID == nil {
			return 0
		}
		return *r.Metadata.SubID
	}
	sort.SliceStable(keys, func(i, j int) bool {
		if keys[i].undated != keys[j].undated {
			return !keys[i].undated
		}
		if keys[i].undated {
			return false
		}
		if !keys[i].ts.Equal(keys[j].ts) {
			return keys[i].ts.Before(keys[j].ts)
		}
		qi, qj := keys[i].rec.Metadata.QuestionID, keys[j].rec.Metadata.QuestionID
		if qi != qj {
			return qi < qj
		}
		return subID(keys[i].rec) < subID(keys[j].rec)
	})
	for i := range keys {
		records[i] = keys[i].rec
	}
	return nil
}
