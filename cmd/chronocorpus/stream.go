package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"chronocorpus/internal/corpus"
	"chronocorpus/internal/stream"
	"chronocorpus/internal/util"
)

var (
	streamInput  string
	streamOutput string
)

func streamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Render QA answer spans into a time-ordered event stream",
		Args:  cobra.NoArgs,
		RunE:  runStream,
	}
	cmd.Flags().StringVar(&streamInput, "input", "reasoning_qa.json", "Source QA JSON with answer lists")
	cmd.Flags().StringVar(&streamOutput, "output", "event_stream.json", "Destination for the event stream JSON")
	return cmd
}

func runStream(cmd *cobra.Command, args []string) error {
	entries, err := stream.LoadEntries(streamInput)
	if err != nil {
		return err
	}
	facts, err := stream.BuildFacts(entries)
	if err != nil {
		return err
	}
	if err := corpus.SortFacts(facts); err != nil {
		return err
	}
	if err := util.WriteJSONAtomic(streamOutput, facts); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Wrote %d facts from %d subjects to %s\n", len(facts), len(entries), streamOutput)
	return nil
}
