package testutil

import (
	"os"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Golden compares output against testdata/<name>.golden.
// If the GOLDEN_UPDATE environment variable is set (or go test runs with
// -update), the golden file is rewritten instead.
func Golden(t *testing.T, name string, got []byte) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)

	if os.Getenv("GOLDEN_UPDATE") != "" {
		if err := g.Update(t, name, got); err != nil {
			t.Fatalf("failed to update golden file: %v", err)
		}
		return
	}

	g.Assert(t, name, got)
}

// GoldenString is like Golden but takes a string.
func GoldenString(t *testing.T, name string, got string) {
	t.Helper()
	Golden(t, name, []byte(got))
}
