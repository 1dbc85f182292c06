package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	semver "github.com/Masterminds/semver/v3"

	"candidc/internal/version"
)

// CheckConfig is the [check] section.
type CheckConfig struct {
	Entries []string `toml:"entries"`
	Jobs    int      `toml:"jobs"`
}

// OutputConfig is the [output] section.
type OutputConfig struct {
	Format   string `toml:"format"`
	Color    string `toml:"color"`
	PathMode string `toml:"path_mode"`
	Notes    bool   `toml:"notes"`
}

// ToolConfig is the [tool] section.
type ToolConfig struct {
	Requires string `toml:"requires"`
}

// Manifest is a decoded candid.toml. Path is empty for the defaults.
type Manifest struct {
	Path   string       `toml:"-"`
	Check  CheckConfig  `toml:"check"`
	Output OutputConfig `toml:"output"`
	Tool   ToolConfig   `toml:"tool"`

	defined map[string]bool
}

var (
	ErrUnknownKeys   = errors.New("unknown keys")
	ErrVersionTooOld = errors.New("candidc version does not satisfy [tool].requires")
	validFormats     = []string{"pretty", "short", "json", "sarif"}
	validColorModes  = []string{"auto", "on", "off"}
	validPathModes   = []string{"auto", "absolute", "relative", "basename"}
)

// DefaultManifest is used when no candid.toml exists.
func DefaultManifest() *Manifest {
	return &Manifest{
		Output: OutputConfig{
			Format:   "pretty",
			Color:    "auto",
			PathMode: "auto",
			Notes:    true,
		},
		defined: map[string]bool{},
	}
}

// LoadManifest decodes path over the defaults and validates the result.
func LoadManifest(path string) (*Manifest, error) {
	m := DefaultManifest()
	meta, err := toml.DecodeFile(path, m)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: %w: %s", path, ErrUnknownKeys, strings.Join(keys, ", "))
	}
	m.Path = path
	for _, key := range [][]string{
		{"check", "entries"}, {"check", "jobs"},
		{"output", "format"}, {"output", "color"}, {"output", "path_mode"}, {"output", "notes"},
		{"tool", "requires"},
	} {
		if meta.IsDefined(key...) {
			m.defined[strings.Join(key, ".")] = true
		}
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Discover finds candid.toml above startDir and loads it, falling back to
// the defaults when there is none.
func Discover(startDir string) (*Manifest, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return DefaultManifest(), nil
	}
	return LoadManifest(path)
}

// IsDefined reports whether key ("output.format") was set in the file.
func (m *Manifest) IsDefined(key string) bool {
	return m.defined[key]
}

// Root is the directory entries are relative to; "" for the defaults.
func (m *Manifest) Root() string {
	if m.Path == "" {
		return ""
	}
	return filepath.Dir(m.Path)
}

// EntryPaths returns [check].entries resolved against Root.
func (m *Manifest) EntryPaths() []string {
	out := make([]string, 0, len(m.Check.Entries))
	for _, e := range m.Check.Entries {
		if !filepath.IsAbs(e) && m.Root() != "" {
			e = filepath.Join(m.Root(), e)
		}
		out = append(out, e)
	}
	return out
}

func (m *Manifest) Validate() error {
	if m.Check.Jobs < 0 {
		return fmt.Errorf("[check].jobs must not be negative, got %d", m.Check.Jobs)
	}
	for _, c := range []struct {
		key, value string
		valid      []string
	}{
		{"[output].format", m.Output.Format, validFormats},
		{"[output].color", m.Output.Color, validColorModes},
		{"[output].path_mode", m.Output.PathMode, validPathModes},
	} {
		if !slices.Contains(c.valid, c.value) {
			return fmt.Errorf("invalid %s %q (expected %s)", c.key, c.value, strings.Join(c.valid, "|"))
		}
	}
	return CheckRequires(m.Tool.Requires, version.Number)
}

// CheckRequires verifies that current satisfies the constraint. An empty
// constraint always passes.
func CheckRequires(constraint, current string) error {
	if strings.TrimSpace(constraint) == "" {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid [tool].requires %q: %w", constraint, err)
	}
	v, err := semver.NewVersion(current)
	if err != nil {
		return fmt.Errorf("invalid candidc version %q: %w", current, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: have %s, need %s", ErrVersionTooOld, current, constraint)
	}
	return nil
}
