package corpus

import (
	"fmt"

	"chronocorpus/internal/models"
)

// MergeMode selects the corpus output shape. The two modes produce
// materially different artifacts from the same inputs, so the choice is
// always explicit.
type MergeMode string

const (
	// MergeSeparated emits {"event": [...], "qa": [...]}, each collection
	// globally re-sorted by its ordering rule.
	MergeSeparated MergeMode = "separated"
	// MergeFlat emits one concatenated array, day-in-history records first,
	// then fact records, then QA records, with no re-sort.
	MergeFlat MergeMode = "flat"
)

func ParseMergeMode(raw string) (MergeMode, error) {
	switch MergeMode(raw) {
	case MergeSeparated, MergeFlat:
		return MergeMode(raw), nil
	}
	return "", fmt.Errorf("unknown merge mode %q (want separated or flat)", raw)
}

// SeparatedCorpus is the nested merge output shape.
type SeparatedCorpus struct {
	Event []models.Record `json:"event"`
	QA    []models.Record `json:"qa"`
}

// MergeSeparatedCorpus combines day-in-history and fact-derived records into
// one re-sorted event collection and re-sorts the QA collection. Links
// assigned earlier survive the re-sort; only positions change.
func MergeSeparatedCorpus(day, facts, qa []models.Record) (SeparatedCorpus, error) {
	events := make([]models.Record, 0, len(day)+len(facts))
	events = append(events, day...)
	events = append(events, facts...)
	if err := SortEvents(events); err != nil {
		return SeparatedCorpus{}, err
	}
	sortedQA := append(make([]models.Record, 0, len(qa)), qa...)
	if err := SortQA(sortedQA); err != nil {
		return SeparatedCorpus{}, err
	}
	return SeparatedCorpus{Event: events, QA: sortedQA}, nil
}

// MergeFlatCorpus concatenates the three families in fixed order, tagging
// each record with its family. Within-family order is whatever the family
// produced; cross-family order is encounter order only.
func MergeFlatCorpus(day, facts, qa []models.Record) []models.Record {
	out := make([]models.Record, 0, len(day)+len(facts)+len(qa))
	out = appendTagged(out, day, "event")
	out = appendTagged(out, facts, "event")
	out = appendTagged(out, qa, "qa")
	return out
}

func appendTagged(dst, src []models.Record, family string) []models.Record {
	for _, r := range src {
		r.Type = family
		dst = append(dst, r)
	}
	return dst
}
