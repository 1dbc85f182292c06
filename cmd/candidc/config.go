package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"candidc/internal/project"
)

// loadManifest reads --config or discovers candid.toml upwards from the
// working directory.
func loadManifest(cmd *cobra.Command) (*project.Manifest, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return project.LoadManifest(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return project.Discover(wd)
}

// settings are the output and check options after merging candid.toml with
// the command line. A flag given explicitly beats the file; the file beats
// the flag default.
type settings struct {
	format   string
	color    string
	pathMode string
	notes    bool
	jobs     int
	entries  []string
}

func resolveSettings(flags, persistent *pflag.FlagSet, m *project.Manifest) (settings, error) {
	s := settings{
		format:   m.Output.Format,
		color:    m.Output.Color,
		pathMode: m.Output.PathMode,
		notes:    m.Output.Notes,
		jobs:     m.Check.Jobs,
		entries:  m.EntryPaths(),
	}
	pick := func(fs *pflag.FlagSet, name, key string, dst *string) error {
		if fs.Lookup(name) == nil || (!fs.Changed(name) && m.IsDefined(key)) {
			return nil
		}
		v, err := fs.GetString(name)
		if err != nil {
			return fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		*dst = v
		return nil
	}
	if err := pick(flags, "format", "output.format", &s.format); err != nil {
		return s, err
	}
	if err := pick(persistent, "color", "output.color", &s.color); err != nil {
		return s, err
	}

	if flags.Lookup("fullpath") != nil && flags.Changed("fullpath") {
		full, err := flags.GetBool("fullpath")
		if err != nil {
			return s, fmt.Errorf("failed to get fullpath flag: %w", err)
		}
		if full {
			s.pathMode = "absolute"
		}
	}
	if flags.Lookup("no-notes") != nil && flags.Changed("no-notes") {
		noNotes, err := flags.GetBool("no-notes")
		if err != nil {
			return s, fmt.Errorf("failed to get no-notes flag: %w", err)
		}
		s.notes = !noNotes
	}
	if flags.Lookup("jobs") != nil && (flags.Changed("jobs") || !m.IsDefined("check.jobs")) {
		jobs, err := flags.GetInt("jobs")
		if err != nil {
			return s, fmt.Errorf("failed to get jobs flag: %w", err)
		}
		s.jobs = jobs
	}

	switch s.format {
	case "pretty", "short", "json", "sarif":
	default:
		return s, fmt.Errorf("unknown format %q (expected pretty|short|json|sarif)", s.format)
	}
	switch s.color {
	case "auto", "on", "off":
	default:
		return s, fmt.Errorf("invalid --color value %q (expected auto|on|off)", s.color)
	}
	if s.jobs < 0 {
		return s, fmt.Errorf("--jobs must not be negative, got %d", s.jobs)
	}
	return s, nil
}
