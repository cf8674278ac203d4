package stream

import (
	"chronocorpus/internal/models"
)

// BuildFacts renders every answer span of every entry into dated sentences:
// one start fact per span, plus one end fact when the span is closed. The
// result is unordered; callers sort it with the corpus ordering rule.
func BuildFacts(entries []Entry) ([]models.Fact, error) {
	facts := make([]models.Fact, 0, len(entries)*2)
	for _, entry := range entries {
		for _, answer := range entry.Answers {
			span, err := ParseAnswerSpan(answer)
			if err != nil {
				return nil, err
			}
			role, err := entry.Category.Role(entry.Element, entry.Attribute, span.Name)
			if err != nil {
				return nil, err
			}

			startDate := NormalizeDate(span.Start)
			fact, err := renderFact(entry, span.Name, role, startDate, models.EventStart)
			if err != nil {
				return nil, err
			}
			facts = append(facts, fact)

			if span.End != "" {
				endDate := NormalizeDate(span.End)
				fact, err := renderFact(entry, span.Name, role, endDate, models.EventEnd)
				if err != nil {
					return nil, err
				}
				facts = append(facts, fact)
			}
		}
	}
	return facts, nil
}

func renderFact(entry Entry, answerName, role, date string, eventType models.EventType) (models.Fact, error) {
	text, err := entry.Category.FactText(entry.Element, answerName, role, date, eventType)
	if err != nil {
		return models.Fact{}, err
	}
	return models.Fact{
		Text: text,
		Metadata: models.Metadata{
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

func (e Entry) attributePtr() *string {
	if e.Attribute == "" {
		return nil
	}
	a := e.Attribute
	return &a
}
