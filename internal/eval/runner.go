package eval

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"chronocorpus/internal/models"
	"chronocorpus/internal/providers"
	"chronocorpus/internal/stream"
	"chronocorpus/internal/vector"
)

// Retriever is the nearest-neighbour query surface the runner needs.
type Retriever interface {
	Search(ctx context.Context, collection string, queryVec []float32, topK int) ([]vector.Hit, error)
}

// Options configures one evaluation run. One QA type is evaluated per run;
// the metrics report keys its per-type slice by that type.
type Options struct {
	Collection string
	QAType     stream.QAType
	TopK       int
	MaxTokens  int
	EmbedDim   int
	Sleep      time.Duration
}

// AnswerBlock is the per-subject slice of the answers artifact, keyed by
// phrasing variant.
type AnswerBlock struct {
	Questions   map[string]Prompt `json:"questions"`
	Contexts    map[string]string `json:"contexts"`
	Answers     map[string]string `json:"answers"`
	GroundTruth string            `json:"ground_truth"`
}

// Outputs nests answer blocks the way the QA source nests subjects:
// category → element, with an extra attribute level where the category has
// one.
type Outputs map[string]map[string]any

const llmAttempts = 3

// Runner drives the retrieve→prompt→answer→score loop, one question at a
// time with a fixed inter-call delay.
type Runner struct {
	retriever Retriever
	embedder  providers.EmbeddingProvider
	llm       providers.LLMProvider
	opts      Options
}

func NewRunner(retriever Retriever, embedder providers.EmbeddingProvider, llm providers.LLMProvider, opts Options) *Runner {
	return &Runner{retriever: retriever, embedder: embedder, llm: llm, opts: opts}
}

// Run evaluates every subject's questions of the configured QA type against
// the task-data ground truth, feeding verdicts into agg and returning the
// nested answers artifact.
func (r *Runner) Run(ctx context.Context, entries []stream.Entry, truth *TaskData, agg *Aggregator) (Outputs, error) {
	outputs := make(Outputs)
	for _, entry := range entries {
		block := entry.Questions(r.opts.QAType)
		if len(block) == 0 {
			continue
		}
		groundTruth, err := truth.GroundTruth(entry.Category, entry.Element, entry.Attribute)
		if err != nil {
			return nil, err
		}
		answerBlock, err := r.evaluateSubject(ctx, block, groundTruth, agg)
		if err != nil {
			return nil, fmt.Errorf("evaluate %s/%s: %w", entry.Category, entry.Element, err)
		}
		place(outputs, entry, answerBlock)
	}
	return outputs, nil
}

func (r *Runner) evaluateSubject(ctx context.Context, questions map[string]string, groundTruth string, agg *Aggregator) (AnswerBlock, error) {
	block := AnswerBlock{
		Questions:   make(map[string]Prompt, len(questions)),
		Contexts:    make(map[string]string, len(questions)),
		Answers:     make(map[string]string, len(questions)),
		GroundTruth: groundTruth,
	}
	phrases := make([]string, 0, len(questions))
	for phrase := range questions {
		phrases = append(phrases, phrase)
	}
	sort.Strings(phrases)

	for _, phrase := range phrases {
		question := questions[phrase]

		vecs, _, err := r.embedder.Embed(ctx, providers.EmbedRequest{Inputs: []string{question}, Dimension: r.opts.EmbedDim})
		if err != nil {
			return AnswerBlock{}, fmt.Errorf("embed question: %w", err)
		}
		hits, err := r.retriever.Search(ctx, r.opts.Collection, vecs[0], r.opts.TopK)
		if err != nil {
			return AnswerBlock{}, fmt.Errorf("retrieve context: %w", err)
		}
		docs := make([]string, 0, len(hits))
		metas := make([]models.Metadata, 0, len(hits))
		for _, h := range hits {
			docs = append(docs, h.Content)
			metas = append(metas, h.Metadata)
		}
		contextBlock := FormatContext(docs, metas)
		prompt := BuildPrompt(contextBlock, question)

		answer, err := r.complete(ctx, prompt)
		if err != nil {
			return AnswerBlock{}, err
		}

		block.Questions[phrase] = prompt
		block.Contexts[phrase] = contextBlock
		block.Answers[phrase] = answer
		agg.Observe(string(r.opts.QAType), Correct(answer, groundTruth))

		if r.opts.Sleep > 0 {
			select {
			case <-ctx.Done():
				return AnswerBlock{}, ctx.Err()
			case <-time.After(r.opts.Sleep):
			}
		}
	}
	return block, nil
}

// complete calls the model, retrying rate-limited and transient failures a
// bounded number of times before giving up on the run.
func (r *Runner) complete(ctx context.Context, prompt Prompt) (string, error) {
	req := providers.CompletionRequest{System: prompt.System, User: prompt.User, MaxTokens: r.opts.MaxTokens}
	var lastErr error
	for attempt := 0; attempt < llmAttempts; attempt++ {
		resp, _, err := r.llm.Complete(ctx, req)
		if err == nil {
			return resp.Text, nil
		}
		lastErr = err
		class := providers.ClassifyError(err)
		if !providers.Retryable(class) {
			return "", fmt.Errorf("completion failed (%s): %w", class, err)
		}
		log.Printf("warn: completion attempt %d/%d failed (%s): %v", attempt+1, llmAttempts, class, err)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Duration(attempt+1) * time.Second):
		}
	}
	return "", fmt.Errorf("completion failed after %d attempts: %w", llmAttempts, lastErr)
}

func place(outputs Outputs, entry stream.Entry, block AnswerBlock) {
	category := string(entry.Category)
	if outputs[category] == nil {
		outputs[category] = make(map[string]any)
	}
	if !entry.Category.HasAttribute() {
		outputs[category][entry.Element] = block
		return
	}
	byAttribute, _ := outputs[category][entry.Element].(map[string]AnswerBlock)
	if byAttribute == nil {
		byAttribute = make(map[string]AnswerBlock)
		outputs[category][entry.Element] = byAttribute
	}
	byAttribute[entry.Attribute] = block
}
