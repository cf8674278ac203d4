package eval

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"chronocorpus/internal/models"
	"chronocorpus/internal/providers"
	"chronocorpus/internal/stream"
	"chronocorpus/internal/vector"
)

type fakeRetriever struct {
	hits []vector.Hit
}

func (f *fakeRetriever) Search(_ context.Context, _ string, _ []float32, _ int) ([]vector.Hit, error) {
	return f.hits, nil
}

type scriptedLLM struct {
	answer string
	fail   int // errors to return before succeeding
	calls  int
	err    error
}

func (s *scriptedLLM) Complete(context.Context, providers.CompletionRequest) (providers.CompletionResponse, providers.ProviderInfo, error) {
	s.calls++
	if s.fail > 0 {
		s.fail--
		return providers.CompletionResponse{}, providers.ProviderInfo{}, s.err
	}
	return providers.CompletionResponse{Text: s.answer}, providers.ProviderInfo{}, nil
}

const taskDataFixture = `{
  "companies_byRevenue": {
    "Acme": {"task_accumulate": {"ground_truth": "Jane"}}
  },
  "organizations": {
    "UN": {
      "Secretary-General": {"task_accumulate": {"ground_truth": "Kofi"}}
    }
  }
}`

func writeTaskData(t *testing.T) *TaskData {
	t.Helper()
	path := filepath.Join(t.TempDir(), "task_data.json")
	require.NoError(t, os.WriteFile(path, []byte(taskDataFixture), 0o644))
	truth, err := LoadTaskData(path)
	require.NoError(t, err)
	return truth
}

func TestGroundTruth(t *testing.T) {
	truth := writeTaskData(t)

	got, err := truth.GroundTruth(stream.CompaniesByRevenue, "Acme", "")
	require.NoError(t, err)
	require.Equal(t, "Jane", got)

	got, err = truth.GroundTruth(stream.Organizations, "UN", "Secretary-General")
	require.NoError(t, err)
	require.Equal(t, "Kofi", got)

	_, err = truth.GroundTruth(stream.CountriesByGDP, "France", "President")
	require.Error(t, err)
}

func TestRunnerRun(t *testing.T) {
	truth := writeTaskData(t)
	entries := []stream.Entry{
		{
			Category: stream.CompaniesByRevenue,
			Element:  "Acme",
			AccumulateQA: map[string]string{
				"generic":     "How many CEOs had Acme had by 3 March 2001?",
				"rephrased_1": "By 3 March 2001, how many had led Acme?",
			},
		},
		{
			Category:  stream.Organizations,
			Element:   "UN",
			Attribute: "Secretary-General",
			AccumulateQA: map[string]string{
				"generic": "How many Secretaries-General served by 1 January 2000?",
			},
		},
	}

	retriever := &fakeRetriever{hits: []vector.Hit{
		{Content: "Jane served as Chief Executive Officer of Acme on 2001-01-01.", Metadata: models.Metadata{Element: "Acme"}},
	}}
	llm := &scriptedLLM{answer: "Jane"}
	runner := NewRunner(retriever, providers.NewMockProvider(8), llm, Options{
		Collection: "c", QAType: stream.AccumulateQA, TopK: 3, EmbedDim: 8,
	})

	agg := NewAggregator("test-model")
	outputs, err := runner.Run(context.Background(), entries, truth, agg)
	require.NoError(t, err)

	m := agg.Finalize()
	require.Equal(t, 3, m.Total)
	// "Jane" matches Acme's truth for both phrasings, not Kofi's.
	require.Equal(t, 2, m.Correct)

	block, ok := outputs["companies_byRevenue"]["Acme"].(AnswerBlock)
	require.True(t, ok)
	require.Equal(t, "Jane", block.GroundTruth)
	require.Len(t, block.Answers, 2)
	require.Contains(t, block.Contexts["generic"], "[1] Jane served as Chief Executive Officer")
	require.Contains(t, block.Questions["generic"].User, "How many CEOs had Acme had by 3 March 2001?")

	byAttr, ok := outputs["organizations"]["UN"].(map[string]AnswerBlock)
	require.True(t, ok)
	require.Equal(t, "Kofi", byAttr["Secretary-General"].GroundTruth)
}

func TestRunnerRetriesTransientFailures(t *testing.T) {
	truth := writeTaskData(t)
	entries := []stream.Entry{{
		Category:     stream.CompaniesByRevenue,
		Element:      "Acme",
		AccumulateQA: map[string]string{"generic": "How many?"},
	}}

	llm := &scriptedLLM{answer: "Jane", fail: 2, err: errors.New("status 503: service unavailable")}
	runner := NewRunner(&fakeRetriever{}, providers.NewMockProvider(8), llm, Options{
		QAType: stream.AccumulateQA, EmbedDim: 8,
	})

	_, err := runner.Run(context.Background(), entries, truth, NewAggregator("m"))
	require.NoError(t, err)
	require.Equal(t, 3, llm.calls)
}

func TestRunnerStopsOnPermanentFailure(t *testing.T) {
	truth := writeTaskData(t)
	entries := []stream.Entry{{
		Category:     stream.CompaniesByRevenue,
		Element:      "Acme",
		AccumulateQA: map[string]string{"generic": "How many?"},
	}}

	llm := &scriptedLLM{fail: 5, err: errors.New("status 401: invalid api key")}
	runner := NewRunner(&fakeRetriever{}, providers.NewMockProvider(8), llm, Options{
		QAType: stream.AccumulateQA, EmbedDim: 8,
	})

	_, err := runner.Run(context.Background(), entries, truth, NewAggregator("m"))
	require.Error(t, err)
	require.Equal(t, 1, llm.calls)
	if !strings.Contains(err.Error(), "completion failed") {
		t.Fatalf("unexpected error: %v", err)
	}
}
