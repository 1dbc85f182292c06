package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"candidc/internal/driver"
)

var importsCmd = &cobra.Command{
	Use:   "imports [flags] <file.did>",
	Short: "Print the import closure of a file, dependencies first",
	Args:  cobra.ExactArgs(1),
	RunE:  runImports,
}

func init() {
	importsCmd.Flags().Bool("batches", false, "group files into batches whose imports are all in earlier batches")
}

func runImports(cmd *cobra.Command, args []string) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	batches, err := cmd.Flags().GetBool("batches")
	if err != nil {
		return fmt.Errorf("failed to get batches flag: %w", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	a := driver.NewAnalyzer(driver.Options{WorkDir: wd, Tracer: tracerOf(cmd)})
	if err := a.Load(args[0]); err != nil {
		return renderFailure(cmd, driver.FileResult{Path: args[0], Analyzer: a, Err: err})
	}

	graph := a.BuildImportGraph()
	out := cmd.OutOrStdout()
	if !batches {
		for _, m := range graph.Ordered() {
			fmt.Fprintf(out, "%s  %s\n", m.ClosureHash.Short(), m.Name)
		}
		return nil
	}
	for i, batch := range graph.Topo.Batches {
		fmt.Fprintf(out, "batch %d:\n", i)
		for _, id := range batch {
			m := graph.Slots[int(id)].Meta
			fmt.Fprintf(out, "  %s  %s\n", m.ClosureHash.Short(), m.Name)
		}
	}
	return nil
}
