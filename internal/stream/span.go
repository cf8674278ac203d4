package stream

import (
	"fmt"
	"strings"

	"chronocorpus/internal/models"
	"chronocorpus/internal/util"
)

// ParseAnswerSpan decodes a pipe-delimited answer: segment 0 is the entity
// name, later segments are tagged "S:<date>" or "E:<date>". Unknown tags are
// ignored so new segment kinds can appear without breaking old corpora.
func ParseAnswerSpan(answer string) (models.AnswerSpan, error) {
	parts := strings.Split(answer, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	span := models.AnswerSpan{Name: parts[0]}
	for _, part := range parts[1:] {
		switch {
		case strings.HasPrefix(part, "S:"):
			span.Start = strings.TrimSpace(strings.TrimPrefix(part, "S:"))
		case strings.HasPrefix(part, "E:"):
			span.End = strings.TrimSpace(strings.TrimPrefix(part, "E:"))
		}
	}
	if span.Start == "" {
		return models.AnswerSpan{}, fmt.Errorf("parse answer span %q: %w", answer, util.ErrMissingStartDate)
	}
	return span, nil
}

// NormalizeDate strips the proleptic-calendar "+" prefix and any time
// component after "T". No calendar validation happens here; a malformed date
// fails later when the ordering step parses it.
func NormalizeDate(raw string) string {
	cleaned := strings.TrimLeft(raw, "+")
	if i := strings.Index(cleaned, "T"); i >= 0 {
		cleaned = cleaned[:i]
	}
	return cleaned
}
