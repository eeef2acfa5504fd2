package stuck

import (
	"strings"
	"testing"
)

func TestHint(t *testing.T) {
	testCases := []struct {
		name     string
		history  []string
		contains []string // all must appear in the hint
		none     bool     // expect no hint at all
	}{
		{
			name:     "Three identical actions trigger the strong hint",
			history:  []string{"tap(50,50)", "tap(50,50)", "tap(50,50)"},
			contains: []string{"tap(50,50)", "3 times"},
		},
		{
			name:     "Two of three taps trigger the milder hint",
			history:  []string{"tap(10,10)", "scroll", "tap(20,20)"},
			contains: []string{"coordinates", "visible text"},
		},
		{
			name:    "Mixed actions produce no hint",
			history: []string{"scroll", `inputText("a")`, "hideKeyboard"},
			none:    true,
		},
		{
			name:    "Fewer than three entries produce no hint",
			history: []string{"tap(50,50)", "tap(50,50)"},
			none:    true,
		},
		{
			name:     "Only the trailing window counts",
			history:  []string{"scroll", "scroll", "back", "back", "back"},
			contains: []string{"back", "3 times"},
		},
		{
			name:    "tapText does not count as a coordinate tap",
			history: []string{`tapText("Next")`, "scroll", `tapText("Next")`},
			none:    true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hint := Hint(tc.history)
			if tc.none {
				if hint != "" {
					t.Errorf("expected no hint, got %q", hint)
				}
				return
			}
			if hint == "" {
				t.Fatal("expected a hint, got none")
			}
			for _, want := range tc.contains {
				if !strings.Contains(hint, want) {
					t.Errorf("hint %q missing %q", hint, want)
				}
			}
		})
	}
}

func TestHintIsPure(t *testing.T) {
	history := []string{"tap(5,5)", "tap(5,5)", "tap(5,5)"}
	first := Hint(history)
	second := Hint(history)
	if first != second {
		t.Error("hint is not deterministic over the same window")
	}
	if len(history) != 3 {
		t.Error("hint mutated the history slice")
	}
}
