package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load(".env")
	root := &cobra.Command{
		Use:   "chronocorpus",
		Short: "Temporally ordered fact corpus builder and RAG evaluation harness",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.AddCommand(fetchCmd())
	root.AddCommand(streamCmd())
	root.AddCommand(mergeCmd())
	root.AddCommand(indexCmd())
	root.AddCommand(evalCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
