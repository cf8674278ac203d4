package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"chronocorpus/internal/config"
	"chronocorpus/internal/eval"
	"chronocorpus/internal/providers"
	"chronocorpus/internal/storage"
	"chronocorpus/internal/stream"
	"chronocorpus/internal/util"
	"chronocorpus/internal/vector"
)

var (
	evalQAFile     string
	evalTaskData   string
	evalOutDir     string
	evalCollection string
	evalQAType     string
	evalTopK       int
	evalModel      string
	evalMaxTokens  int
	evalSleep      float64
)

func evalCmd() *cobra.Command {
	cfg := config.Load()
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Run retrieval-augmented QA over the indexed corpus and score it",
		Args:  cobra.NoArgs,
		RunE:  runEval,
	}
	cmd.Flags().StringVar(&evalQAFile, "qa-file", "reasoning_qa.json", "Source QA JSON with questions")
	cmd.Flags().StringVar(&evalTaskData, "task-data", "reasoning_task_data.json", "Task data JSON with ground truth")
	cmd.Flags().StringVar(&evalOutDir, "out-dir", cfg.OutRoot, "Output directory for answers and metrics")
	cmd.Flags().StringVar(&evalCollection, "collection", cfg.Collection, "Vector store collection name")
	cmd.Flags().StringVar(&evalQAType, "qa-type", string(stream.AccumulateQA), "Question family to evaluate: accumulate_qa or ranking_qa")
	cmd.Flags().IntVar(&evalTopK, "top-k", cfg.TopK, "Retrieved documents per question")
	cmd.Flags().StringVar(&evalModel, "model", cfg.Model, "Target model identifier")
	cmd.Flags().IntVar(&evalMaxTokens, "max-tokens", cfg.MaxTokens, "Max tokens per completion")
	cmd.Flags().Float64Var(&evalSleep, "sleep", cfg.SleepSeconds, "Seconds to sleep between model calls")
	return cmd
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := context.Background()

	// No work starts without a credential.
	if cfg.APIKey == "" {
		return fmt.Errorf("CHRONOCORPUS_API_KEY is not set")
	}
	qaType := stream.QAType(evalQAType)
	if qaType != stream.AccumulateQA && qaType != stream.RankingQA {
		return fmt.Errorf("unknown qa type %q", evalQAType)
	}

	entries, err := stream.LoadEntries(evalQAFile)
	if err != nil {
		return err
	}
	truth, err := eval.LoadTaskData(evalTaskData)
	if err != nil {
		return err
	}

	db, err := storage.NewDB(ctx, cfg.PostgresURL)
	if err != nil {
		return err
	}
	defer db.Close()

	embedder, err := providers.NewEmbedder(cfg)
	if err != nil {
		return err
	}
	llm := providers.NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, evalModel)

	runner := eval.NewRunner(vector.NewSearcher(db.Pool), embedder, llm, eval.Options{
		Collection: evalCollection,
		QAType:     qaType,
		TopK:       evalTopK,
		MaxTokens:  evalMaxTokens,
		EmbedDim:   cfg.EmbedDim,
		Sleep:      time.Duration(evalSleep * float64(time.Second)),
	})

	agg := eval.NewAggregator(evalModel)
	outputs, err := runner.Run(ctx, entries, truth, agg)
	if err != nil {
		return err
	}
	metrics := agg.Finalize()

	runDir := filepath.Join(evalOutDir, fmt.Sprintf("%s_top%d", strings.ReplaceAll(evalModel, "/", "_"), evalTopK))
	if err := util.WriteJSONAtomic(filepath.Join(runDir, "answers.json"), outputs); err != nil {
		return err
	}
	if err := util.WriteJSONAtomic(filepath.Join(runDir, "metrics.json"), metrics); err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "Evaluation complete.")
	fmt.Fprintf(os.Stdout, "  Questions: %d\n", metrics.Total)
	fmt.Fprintf(os.Stdout, "  Correct: %d\n", metrics.Correct)
	fmt.Fprintf(os.Stdout, "  Accuracy: %.4f\n", metrics.Accuracy)
	fmt.Fprintf(os.Stdout, "  Output: %s\n", runDir)
	return nil
}
