package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"candidc/internal/diag"
	"candidc/internal/diagfmt"
	"candidc/internal/driver"
	"candidc/internal/ui"
	"candidc/internal/version"
	"candidc/internal/watch"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.did...]",
	Short: "Check Candid files and their imports",
	Long: `Check loads every entry file with its imports, binds and checks all type
definitions and reports the first error per entry. Without arguments the
entries from candid.toml are used.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("no-notes", false, "omit diagnostic notes")
	checkCmd.Flags().Int("jobs", 0, "max parallel entry files (0=auto)")
	checkCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	checkCmd.Flags().Bool("watch", false, "re-check whenever a loaded file changes")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	manifest, err := loadManifest(cmd)
	if err != nil {
		return err
	}
	s, err := resolveSettings(cmd.Flags(), cmd.Root().PersistentFlags(), manifest)
	if err != nil {
		return err
	}
	files := args
	if len(files) == 0 {
		files = s.entries
	}
	if len(files) == 0 {
		return errors.New("no input files (pass files or set [check].entries in candid.toml)")
	}

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	watchMode, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return fmt.Errorf("failed to get watch flag: %w", err)
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	opts := driver.CheckOptions{Jobs: s.jobs, WorkDir: wd, Timings: timings}
	out := cmd.OutOrStdout()
	r := &reporter{out: out, tty: os.Stdout, settings: s, quiet: quiet, timings: timings, args: os.Args[1:]}

	if watchMode {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runWatch(ctx, files, opts, r)
	}

	var results []driver.FileResult
	if shouldUseTUI(mode, len(files)) && s.format != "json" && s.format != "sarif" {
		results, err = ui.RunCheck(cmd.Context(), "checking", files, opts, os.Stdout)
	} else {
		results, err = driver.CheckFiles(cmd.Context(), files, opts)
	}
	if err != nil {
		return err
	}
	failed, err := r.report(results)
	if err != nil {
		return err
	}
	if failed {
		dumpRing(cmd)
		return errFailed{}
	}
	return nil
}

func runWatch(ctx context.Context, files []string, opts driver.CheckOptions, r *reporter) error {
	run := func(ctx context.Context) []string {
		results, err := driver.CheckFiles(ctx, files, opts)
		if err != nil {
			return nil
		}
		fmt.Fprintln(r.out, "--- checking", len(files), "file(s)")
		if _, err := r.report(results); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		var read []string
		for _, res := range results {
			read = append(read, res.Analyzer.Paths()...)
		}
		return read
	}
	w, err := watch.New(files, run, watch.Options{
		Ext:     ".did",
		OnError: func(err error) { fmt.Fprintln(os.Stderr, "watch:", err) },
	})
	if err != nil {
		return err
	}
	return w.Run(ctx)
}

// reporter renders check results in the configured format.
type reporter struct {
	out      io.Writer
	tty      *os.File // decides --color auto
	settings settings
	quiet    bool
	timings  bool
	args     []string
}

func (r *reporter) report(results []driver.FileResult) (failed bool, err error) {
	pathMode, err := diagfmt.ParsePathMode(r.settings.pathMode)
	if err != nil {
		return false, err
	}
	for _, res := range results {
		if res.Err != nil {
			failed = true
			break
		}
	}

	switch r.settings.format {
	case "json":
		var all diagfmt.DiagnosticsOutput
		for _, res := range results {
			bag, ok := resultBag(res)
			if !ok {
				continue
			}
			all.Merge(diagfmt.BuildDiagnosticsOutput(bag, res.Analyzer.FileSet(), diagfmt.JSONOpts{
				IncludePositions: true,
				PathMode:         pathMode,
				IncludeNotes:     r.settings.notes,
			}))
		}
		return failed, diagfmt.WriteJSON(r.out, all)
	case "sarif":
		log := diagfmt.NewSarifLog(diagfmt.SarifRunMeta{
			ToolName:       "candidc",
			ToolVersion:    version.Full(),
			InvocationArgs: r.args,
		})
		for _, res := range results {
			if bag, ok := resultBag(res); ok {
				log.Add(bag, res.Analyzer.FileSet())
			}
		}
		return failed, log.Write(r.out)
	}

	for _, res := range results {
		bag, ok := resultBag(res)
		if !ok {
			if !r.quiet {
				fmt.Fprintf(r.out, "ok %s\n", res.Path)
			}
		} else if r.settings.format == "short" {
			fmt.Fprintln(r.out, diag.FormatShortDiagnostics(bag.Items(), res.Analyzer.FileSet(), r.settings.notes))
		} else {
			err := diagfmt.Pretty(r.out, bag, res.Analyzer.FileSet(), diagfmt.PrettyOpts{
				Color:     useColor(r.settings.color, r.tty),
				PathMode:  pathMode,
				ShowNotes: r.settings.notes,
			})
			if err != nil {
				return failed, err
			}
		}
		if r.timings && res.Timing != nil {
			fmt.Fprintf(r.out, "timings %s: %.1f ms\n", res.Path, res.Timing.TotalMS)
			for _, p := range res.Timing.Phases {
				fmt.Fprintf(r.out, "  %-8s %.2f ms %s\n", p.Name, p.DurationMS, p.Note)
			}
		}
	}
	return failed, nil
}

// resultBag wraps the failure of res in a one-item bag. Errors that are not
// diagnostics become IO4001 without a location.
func resultBag(res driver.FileResult) (*diag.Bag, bool) {
	if res.Err == nil {
		return nil, false
	}
	bag := diag.NewBag(1)
	d, ok := res.Diagnostic()
	if !ok {
		d = diag.New(diag.SevError, diag.IOLoadFileError, res.Err.Error())
	}
	bag.Add(d)
	return bag, true
}
