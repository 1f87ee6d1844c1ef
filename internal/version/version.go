// Package version describes the hlslbind build. The variables are meant to
// be set with -ldflags "-X hlsltools/internal/version.Version=...".
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the checker.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with each numeric component in its own colour.
// Pre-release and build suffixes stay plain.
func Colored() string {
	core, suffix := Version, ""
	if i := strings.IndexAny(Version, "-+"); i >= 0 {
		core, suffix = Version[:i], Version[i:]
	}
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	return majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2]) + suffix
}

// Describe is the multi-line text printed by "hlslbind version".
func Describe(colored bool) string {
	v := Version
	if colored {
		v = Colored()
	}
	var b strings.Builder
	b.WriteString("hlslbind " + v + "\n")
	if GitCommit != "" {
		b.WriteString("commit: " + GitCommit + "\n")
	}
	if BuildDate != "" {
		b.WriteString("built:  " + BuildDate + "\n")
	}
	return b.String()
}
