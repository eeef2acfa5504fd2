package display

import (
	"strings"
	"testing"

	"droidpilot/internal/agent"
	"droidpilot/internal/metrics"
)

func TestFormatResult(t *testing.T) {
	out := FormatResult("ab12cd34", agent.Result{Success: true, Reason: "login complete", Steps: 7})

	for _, want := range []string{"ab12cd34", "SUCCEEDED", "7 step(s)", "login complete"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}

	out = FormatResult("ab12cd34", agent.Result{Success: false, Reason: "budget exhausted", Steps: 50})
	if !strings.Contains(out, "FAILED") {
		t.Errorf("output %q missing FAILED", out)
	}
}

func TestFormatResultClipsLongReasons(t *testing.T) {
	long := strings.Repeat("r", 500)
	out := FormatResult("x", agent.Result{Success: false, Reason: long, Steps: 1})
	if strings.Contains(out, long) {
		t.Error("reason was not clipped")
	}
	if !strings.Contains(out, "...") {
		t.Error("clipped reason should end with an ellipsis")
	}
}

func TestFormatOracle(t *testing.T) {
	out := FormatOracle("gemini", "gemini-2.0-flash")
	for _, want := range []string{"gemini", "gemini-2.0-flash"} {
		if !strings.Contains(out, want) {
			t.Errorf("banner %q missing %q", out, want)
		}
	}
}

func TestFormatRunMetrics(t *testing.T) {
	rm := &metrics.RunMetrics{
		DurationMs: 4200,
		Succeeded:  true,
		Steps: []metrics.StepMetrics{
			{Step: 1, Action: "tap(50,50)", DurationMs: 900, Success: true},
			{Step: 2, Action: "scroll", DurationMs: 1100, Success: false, Err: "boom"},
		},
	}

	out := FormatRunMetrics(rm)
	for _, want := range []string{"4200", "tap(50,50)", "scroll", "[ok]", "[err]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}

	if got := FormatRunMetrics(nil); got != "No metrics available." {
		t.Errorf("nil metrics formatted as %q", got)
	}
}
