package version

import (
	"strings"

	"github.com/fatih/color"
)

// Build information for the candidc CLI. Overridable via -ldflags.
var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Number is the plain semantic version, checked against candid.toml.
	Number = "0.1.0"

	// Suffix marks pre-release builds.
	Suffix = "-dev"

	GitCommit  = ""
	GitMessage = ""
	BuildDate  = ""
)

// Full is Number plus Suffix without colour.
func Full() string {
	return Number + Suffix
}

// Colored renders the version with each component highlighted. Components
// that are missing render as-is.
func Colored() string {
	parts := strings.SplitN(Number, ".", 3)
	if len(parts) != 3 {
		return Full()
	}
	return versionMajorColor.Sprint(parts[0]) + "." +
		versionMinorColor.Sprint(parts[1]) + "." +
		versionPatchColor.Sprint(parts[2]) + Suffix
}
