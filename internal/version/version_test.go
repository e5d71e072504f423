package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestColoredWithoutColorIsPlain(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	orig := Version
	defer func() { Version = orig }()

	cases := []string{"0.1.0-dev", "1.2.3", "1.0.0-beta.1+build.7", "dev"}
	for _, v := range cases {
		Version = v
		if got := Colored(); got != v {
			t.Errorf("Colored() with Version=%q = %q", v, got)
		}
	}
}

func TestColoredPaintsComponents(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	orig := Version
	defer func() { Version = orig }()

	Version = "1.2.3-rc.1"
	got := Colored()
	if got == Version {
		t.Fatalf("expected escape sequences in %q", got)
	}
	if got[len(got)-5:] != "-rc.1" {
		t.Fatalf("suffix lost: %q", got)
	}
}
