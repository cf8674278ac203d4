package stream

import (
	"fmt"
	"sort"
	"time"

	"chronocorpus/internal/corpus"
	"chronocorpus/internal/models"
)

// SourceFactStream labels fact-derived corpus records.
const SourceFactStream = "reasoning_event_stream"

// BuildSubjectEvents renders every entry's answer spans into corpus records
// and chains them per subject: within one (category, element, attribute) the
// spans are ordered by start date and linked start→end→start→…, and no chain
// ever crosses into another subject. Day-in-history records are handled
// elsewhere and never enter a chain.
func BuildSubjectEvents(entries []Entry, ids corpus.IDFunc) ([]models.Record, error) {
	out := make([]models.Record, 0, len(entries)*2)
	for _, entry := range entries {
		records, err := buildEntryChain(entry, ids)
		if err != nil {
			return nil, err
		}
		out = append(out, records...)
	}
	return out, nil
}

func buildEntryChain(entry Entry, ids corpus.IDFunc) ([]models.Record, error) {
	type parsed struct {
		span  models.AnswerSpan
		start string
		end   string
		key   time.Time
	}
	spans := make([]parsed, 0, len(entry.Answers))
	for _, answer := range entry.Answers {
		span, err := ParseAnswerSpan(answer)
		if err != nil {
			return nil, err
		}
		start := NormalizeDate(span.Start)
		key, err := corpus.OrderingDate(start)
		if err != nil {
			return nil, fmt.Errorf("subject %s/%s: %w", entry.Category, entry.Element, err)
		}
		p := parsed{span: span, start: start, key: key}
		if span.End != "" {
			p.end = NormalizeDate(span.End)
		}
		spans = append(spans, p)
	}
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].key.Before(spans[j].key) })

	records := make([]models.Record, 0, len(spans)*2)
	for _, p := range spans {
		role, err := entry.Category.Role(entry.Element, entry.Attribute, p.span.Name)
		if err != nil {
			return nil, err
		}
		rec, err := subjectRecord(entry, p.span.Name, role, p.start, models.EventStart, ids)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
		if p.end != "" {
			rec, err := subjectRecord(entry, p.span.Name, role, p.end, models.EventEnd, ids)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
	}
	corpus.LinkChain(records)
	return records, nil
}

func subjectRecord(entry Entry, answerName, role, date string, eventType models.EventType, ids corpus.IDFunc) (models.Record, error) {
	text, err := entry.Category.FactText(entry.Element, answerName, role, date, eventType)
	if err != nil {
		return models.Record{}, err
	}
	return models.Record{
		ID:        ids(SourceFactStream, string(entry.Category), entry.Element, entry.Attribute, date, string(eventType)),
		Timestamp: date,
		Content:   text,
		Metadata: models.Metadata{
			Source:    SourceFactStream,
			Category:  string(entry.Category),
			Element:   entry.Element,
			Attribute: entry.attributePtr(),
			Answer:    answerName,
			Role:      role,
			Date:      date,
			EventType: eventType,
		},
	}, nil
}
