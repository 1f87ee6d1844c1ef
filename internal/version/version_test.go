package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestDescribePlain(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate })

	Version, GitCommit, BuildDate = "1.2.3", "", ""
	if got := Describe(false); got != "hlslbind 1.2.3\n" {
		t.Fatalf("Describe = %q", got)
	}

	GitCommit, BuildDate = "abc123", "2026-01-15T10:30:00Z"
	got := Describe(false)
	for _, want := range []string{"commit: abc123", "built:  2026-01-15T10:30:00Z"} {
		if !strings.Contains(got, want) {
			t.Errorf("Describe missing %q:\n%s", want, got)
		}
	}
}

func TestColoredKeepsSuffix(t *testing.T) {
	origVersion, origNoColor := Version, color.NoColor
	t.Cleanup(func() { Version, color.NoColor = origVersion, origNoColor })

	color.NoColor = true
	Version = "0.4.1-rc.1"
	if got := Colored(); got != "0.4.1-rc.1" {
		t.Fatalf("Colored = %q", got)
	}
	Version = "dev"
	if got := Colored(); got != "dev" {
		t.Fatalf("Colored = %q", got)
	}
}
