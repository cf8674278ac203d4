package onthisday

import (
	"chronocorpus/internal/corpus"
	"chronocorpus/internal/models"
)

// SourceOnThisDay labels day-in-history records in the merged corpus.
const SourceOnThisDay = "on_this_day"

// ToRecords lifts fetched day events into corpus records. These records are
// deliberately never chained: adjacency is reserved for the fact-derived
// stream, and the day-in-history family keeps empty prev/next on purpose.
func ToRecords(events []DayEvent, ids corpus.IDFunc) []models.Record {
	out := make([]models.Record, 0, len(events))
	for _, e := range events {
		eventYear, month, day := e.EventYear, e.Month, e.Day
		out = append(out, models.Record{
			ID:        ids(SourceOnThisDay, e.Date, e.Event),
			Timestamp: e.Date,
			Content:   e.Event,
			Metadata: models.Metadata{
				Source:    SourceOnThisDay,
				EventYear: &eventYear,
				Month:     &month,
				Day:       &day,
			},
		})
	}
	return out
}
