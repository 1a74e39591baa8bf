package parser

import (
	"testing"
)

// FuzzParse verifies that the parser never panics and always terminates,
// whatever the input. Recovery paths must strictly advance the cursor, so
// parsing is linear in the input length.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"1+2*3",
		"(1+2)*3",
		"with x: x+1",
		"with x, y: x*y",
		"with x",
		"with x, : x",
		"1+*2",
		"((((1+2))",
		"with12",
		"$+$",
		"1 2 3",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, src string) {
		root, err := Parse(src)

		// A nil root with no error would leave the caller with nothing to
		// act on; the parser must report at least one error in that case.
		// (Empty input is rejected at factor level.)
		if root == nil && err == nil {
			t.Fatalf("Parse(%q) = nil root and nil error", src)
		}
	})
}
