package eval

import "chronocorpus/internal/models"

type typeCounts struct {
	total   int
	correct int
}

// Aggregator accumulates verdicts; accuracy is derived only at Finalize.
// Observation order does not affect the result.
type Aggregator struct {
	model   string
	total   int
	correct int
	byType  map[string]*typeCounts
}

func NewAggregator(model string) *Aggregator {
	return &Aggregator{model: model, byType: make(map[string]*typeCounts)}
}

func (a *Aggregator) Observe(qaType string, correct bool) {
	a.total++
	tc := a.byType[qaType]
	if tc == nil {
		tc = &typeCounts{}
		a.byType[qaType] = tc
	}
	tc.total++
	if correct {
		a.correct++
		tc.correct++
	}
}

// Finalize derives the report. Accuracy over zero questions is 0.0 by
// convention, not an error and not a score.
func (a *Aggregator) Finalize() models.Metrics {
	m := models.Metrics{
		Model:          a.model,
		Total:          a.total,
		Correct:        a.correct,
		Accuracy:       ratio(a.correct, a.total),
		ByQuestionType: make(map[string]models.TypeMetrics, len(a.byType)),
	}
	for qaType, tc := range a.byType {
		m.ByQuestionType[qaType] = models.TypeMetrics{
			Total:    tc.total,
			Correct:  tc.correct,
			Accuracy: ratio(tc.correct, tc.total),
		}
	}
	return m
}

func ratio(correct, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(correct) / float64(total)
}
