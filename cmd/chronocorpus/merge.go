package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"chronocorpus/internal/corpus"
	"chronocorpus/internal/onthisday"
	"chronocorpus/internal/stream"
	"chronocorpus/internal/util"
)

var (
	mergeOnThisDay string
	mergeSource    string
	mergeOutput    string
	mergeModeFlag  string
	mergeStableIDs bool
)

func mergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge day-in-history events, fact chains and QA entries into one corpus",
		Args:  cobra.NoArgs,
		RunE:  runMerge,
	}
	cmd.Flags().StringVar(&mergeOnThisDay, "on-this-day", "events.jsonl", "Day-in-history events JSONL artifact")
	cmd.Flags().StringVar(&mergeSource, "source", "reasoning_qa.json", "Source QA JSON with answer lists")
	cmd.Flags().StringVar(&mergeOutput, "output", "merged_corpus.json", "Destination for the merged corpus JSON")
	cmd.Flags().StringVar(&mergeModeFlag, "mode", string(corpus.MergeSeparated), "Merge output shape: separated or flat")
	cmd.Flags().BoolVar(&mergeStableIDs, "stable-ids", false, "Derive record ids from content instead of fresh UUIDs")
	return cmd
}

func runMerge(cmd *cobra.Command, args []string) error {
	mode, err := corpus.ParseMergeMode(mergeModeFlag)
	if err != nil {
		return err
	}
	ids := corpus.IDs(mergeStableIDs)

	dayEvents, err := onthisday.ReadEvents(mergeOnThisDay)
	if err != nil {
		return err
	}
	entries, err := stream.LoadEntries(mergeSource)
	if err != nil {
		return err
	}
	day := onthisday.ToRecords(dayEvents, ids)
	facts, err := stream.BuildSubjectEvents(entries, ids)
	if err != nil {
		return err
	}
	qa := stream.BuildQAEntries(entries, ids)

	switch mode {
	case corpus.MergeSeparated:
		merged, err := corpus.MergeSeparatedCorpus(day, facts, qa)
		if err != nil {
			return err
		}
		if err := util.WriteJSONAtomic(mergeOutput, merged); err != nil {
			return err
		}
	case corpus.MergeFlat:
		merged := corpus.MergeFlatCorpus(day, facts, qa)
		if err := util.WriteJSONAtomic(mergeOutput, merged); err != nil {
			return err
		}
	}

	fmt.Fprintln(os.Stdout, "Merge complete.")
	fmt.Fprintf(os.Stdout, "  Mode: %s\n", mode)
	fmt.Fprintf(os.Stdout, "  Day-in-history records: %d\n", len(day))
	fmt.Fprintf(os.Stdout, "  Fact records: %d\n", len(facts))
	fmt.Fprintf(os.Stdout, "  QA records: %d\n", len(qa))
	fmt.Fprintf(os.Stdout, "  Output: %s\n", mergeOutput)
	return nil
}
