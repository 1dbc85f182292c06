package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"candidc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "candidc",
	Short:         "Candid interface checker",
	Long:          `candidc loads Candid (.did) files with their imports, binds and checks every type and reports the first error found.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// errFailed is returned when diagnostics were already printed; main exits
// with status 1 without printing it again.
type errFailed struct{}

func (errFailed) Error() string { return "check failed" }

func main() {
	rootCmd.Version = version.Full()

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(importsCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("config", "", "path to candid.toml (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept in ring mode")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0 disables)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go execution trace to this file")

	var stopProfiling func()
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		stop, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		stopProfiling = stop
		return nil
	}

	err := rootCmd.Execute()
	// PersistentPostRun is skipped when RunE fails
	if stopProfiling != nil {
		stopProfiling()
	}
	if err != nil {
		if _, ok := err.(errFailed); !ok {
			rootCmd.PrintErrln("error:", err)
		}
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag for f.
func useColor(mode string, f *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return f != nil && isTerminal(f)
	}
}
