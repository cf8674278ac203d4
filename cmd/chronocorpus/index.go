package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"chronocorpus/internal/config"
	"chronocorpus/internal/models"
	"chronocorpus/internal/providers"
	"chronocorpus/internal/storage"
	"chronocorpus/internal/util"
)

var (
	indexStream     string
	indexCollection string
	indexBatchSize  int
)

func indexCmd() *cobra.Command {
	cfg := config.Load()
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Embed the event stream into the vector store",
		Args:  cobra.NoArgs,
		RunE:  runIndex,
	}
	cmd.Flags().StringVar(&indexStream, "stream", "event_stream.json", "Event stream JSON to index")
	cmd.Flags().StringVar(&indexCollection, "collection", cfg.Collection, "Vector store collection name")
	cmd.Flags().IntVar(&indexBatchSize, "batch-size", 64, "Documents embedded and inserted per batch")
	return cmd
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := context.Background()

	var facts []models.Fact
	if err := util.ReadJSON(indexStream, &facts); err != nil {
		return err
	}

	db, err := storage.NewDB(ctx, cfg.PostgresURL)
	if err != nil {
		return err
	}
	defer db.Close()
	repo := storage.NewEventRepo(db)
	if err := repo.EnsureSchema(ctx, cfg.EmbedDim); err != nil {
		return err
	}

	n, err := repo.Count(ctx, indexCollection)
	if err != nil {
		return err
	}
	if n > 0 {
		fmt.Fprintf(os.Stdout, "Collection %s already holds %d documents, skipping build.\n", indexCollection, n)
		return nil
	}

	embedder, err := providers.NewEmbedder(cfg)
	if err != nil {
		return err
	}

	inserted := 0
	for start := 0; start < len(facts); start += indexBatchSize {
		end := start + indexBatchSize
		if end > len(facts) {
			end = len(facts)
		}
		batch := facts[start:end]
		inputs := make([]string, 0, len(batch))
		for _, f := range batch {
			inputs = append(inputs, f.Text)
		}
		vecs, _, err := embedder.Embed(ctx, providers.EmbedRequest{Inputs: inputs, Dimension: cfg.EmbedDim})
		if err != nil {
			return fmt.Errorf("embed batch at %d: %w", start, err)
		}
		docs := make([]storage.EventDoc, 0, len(batch))
		for i, f := range batch {
			docs = append(docs, storage.EventDoc{
				DocID:     fmt.Sprint(start + i),
				Content:   f.Text,
				Metadata:  f.Metadata,
				Embedding: vecs[i],
			})
		}
		if err := repo.BulkInsert(ctx, indexCollection, docs); err != nil {
			return err
		}
		inserted += len(docs)
	}

	fmt.Fprintf(os.Stdout, "Indexed %d documents into collection %s\n", inserted, indexCollection)
	return nil
}
