package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"candidc/internal/driver"
	"candidc/internal/trace"
)

var envCmd = &cobra.Command{
	Use:   "env [flags] <file.did>",
	Short: "Check a file and export its type environment",
	Args:  cobra.ExactArgs(1),
	RunE:  runEnv,
}

func init() {
	envCmd.Flags().String("format", "json", "export format (json|yaml|msgpack)")
	envCmd.Flags().StringP("out", "o", "", "write to this file instead of stdout")
}

func runEnv(cmd *cobra.Command, args []string) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := driver.ParseExportFormat(formatStr)
	if err != nil {
		return err
	}
	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	a := driver.NewAnalyzer(driver.Options{WorkDir: wd, Tracer: tracerOf(cmd)})
	res := driver.FileResult{Path: args[0], Analyzer: a}
	if res.Err = a.Load(args[0]); res.Err != nil {
		return renderFailure(cmd, res)
	}
	env, err := a.ConstructTypeEnv()
	if err != nil {
		res.Err = err
		return renderFailure(cmd, res)
	}
	actor, _ := a.ServiceFor(args[0])

	export := func(w io.Writer) error { return driver.ExportEnv(w, env, actor, format) }
	if outPath == "" {
		return export(cmd.OutOrStdout())
	}
	// #nosec G304 -- path is provided by the user
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	return exportTo(f, export)
}

// exportTo runs write against wc and closes it. A failed close means the
// export file is incomplete and is reported when write succeeded.
func exportTo(wc io.WriteCloser, write func(io.Writer) error) (err error) {
	defer func() {
		if cerr := wc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close export: %w", cerr)
		}
	}()
	return write(wc)
}

func tracerOf(cmd *cobra.Command) trace.Tracer {
	return trace.FromContext(cmd.Context())
}

// renderFailure prints the diagnostic of res using the configured output
// settings and returns errFailed.
func renderFailure(cmd *cobra.Command, res driver.FileResult) error {
	manifest, err := loadManifest(cmd)
	if err != nil {
		return err
	}
	s, err := resolveSettings(pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError), cmd.Root().PersistentFlags(), manifest)
	if err != nil {
		return err
	}
	// env and imports have their own --format
	switch s.format {
	case "pretty", "short":
	default:
		s.format = "pretty"
	}
	r := &reporter{out: cmd.ErrOrStderr(), tty: os.Stderr, settings: s}
	if _, err := r.report([]driver.FileResult{res}); err != nil {
		return err
	}
	dumpRing(cmd)
	return errFailed{}
}
