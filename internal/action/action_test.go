package action

import (
	"reflect"
	"testing"
)

func TestDecodeDefaults(t *testing.T) {
	testCases := []struct {
		name     string
		decision Decision
		expected Intent
	}{
		{
			name:     "Tap without params defaults to center",
			decision: Decision{Action: "tap"},
			expected: Tap{X: 50, Y: 50},
		},
		{
			name:     "Tap with explicit coordinates",
			decision: Decision{Action: "tap", Params: map[string]any{"x": 80.0, "y": 20.0}},
			expected: Tap{X: 80, Y: 20},
		},
		{
			name:     "Tap with string coordinates from a sloppy model",
			decision: Decision{Action: "tap", Params: map[string]any{"x": "33", "y": "66.4"}},
			expected: Tap{X: 33, Y: 66},
		},
		{
			name:     "Swipe without params defaults to upward swipe",
			decision: Decision{Action: "swipe"},
			expected: Swipe{StartX: 50, StartY: 50, EndX: 50, EndY: 20},
		},
		{
			name:     "LongPress prefers text over coordinates",
			decision: Decision{Action: "longPress", Params: map[string]any{"text": "Delete"}},
			expected: LongPress{Text: "Delete", X: 50, Y: 50},
		},
		{
			name:     "EraseText defaults to 50 chars",
			decision: Decision{Action: "eraseText"},
			expected: EraseText{Chars: 50},
		},
		{
			name:     "PressKey defaults to enter",
			decision: Decision{Action: "pressKey"},
			expected: PressKey{Key: "enter"},
		},
		{
			name:     "Wait defaults to 3000ms",
			decision: Decision{Action: "wait"},
			expected: Wait{TimeoutMs: 3000},
		},
		{
			name:     "Unrecognized kind decodes to Unknown",
			decision: Decision{Action: "teleport", Params: map[string]any{"x": 1.0}},
			expected: Unknown{Name: "teleport"},
		},
		{
			name:     "Terminal done",
			decision: Decision{Action: "done", Reasoning: "all set"},
			expected: Done{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Decode(&tc.decision)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("mismatched intent:\n got:  %#v\n want: %#v", got, tc.expected)
			}
		})
	}
}

func TestSummaries(t *testing.T) {
	testCases := []struct {
		intent  Intent
		summary string
	}{
		{Tap{X: 50, Y: 50}, "tap(50,50)"},
		{DoubleTap{X: 10, Y: 90}, "doubleTap(10,90)"},
		{TapText{Text: "Sign in"}, `tapText("Sign in")`},
		{TapText{Text: "a very long label that keeps going"}, `tapText("a very long label th")`},
		{TapText{Text: "設定"}, `tapText("設定")`},
		{InputText{Text: "日本語のテキストが二十文字を超える場合の要約"}, `inputText("日本語のテキストが二十文字を超える場合の")`},
		{LongPress{Text: "Delete"}, "longPress"},
		{LongPress{X: 30, Y: 40}, "longPress(30,40)"},
		{InputText{Text: "hello"}, `inputText("hello")`},
		{Swipe{StartX: 50, StartY: 50, EndX: 50, EndY: 20}, "swipe(50,50->50,20)"},
		{Scroll{}, "scroll"},
		{Back{}, "back"},
		{LaunchApp{AppID: "com.example.app"}, `launchApp("com.example.app")`},
		{Unknown{Name: "teleport"}, "teleport"},
	}

	for _, tc := range testCases {
		if got := tc.intent.Summary(); got != tc.summary {
			t.Errorf("Summary() = %q, want %q", got, tc.summary)
		}
	}
}

func TestTerminal(t *testing.T) {
	if !Terminal(Done{}) || !Terminal(Failed{}) {
		t.Error("done and failed must be terminal")
	}
	if Terminal(Tap{}) || Terminal(Unknown{Name: "x"}) {
		t.Error("non-terminal intents reported as terminal")
	}
}
