package display

import (
	"fmt"
	"strings"

	"droidpilot/internal/agent"
	"droidpilot/internal/metrics"
)

const maxReasonLength = 200

func FormatResult(runID string, res agent.Result) string {
	var sb strings.Builder
	status := "SUCCEEDED"
	if !res.Success {
		status = "FAILED"
	}
	sb.WriteString(fmt.Sprintf("[Run %s %s] after %d step(s)\n", runID, status, res.Steps))
	if res.Reason != "" {
		sb.WriteString("  Reason: " + clipReason(res.Reason))
	}
	return sb.String()
}

func clipReason(s string) string {
	s = strings.ReplaceAll(s, "\n", "\\n")
	if len(s) > maxReasonLength {
		return s[:maxReasonLength] + "..."
	}
	return s
}

// FormatOracle is the startup banner naming the decision backend in use.
func FormatOracle(backend, model string) string {
	return fmt.Sprintf("Oracle: %s (model %s)", backend, model)
}

func FormatRunMetrics(rm *metrics.RunMetrics) string {
	if rm == nil {
		return "No metrics available."
	}
	var sb strings.Builder
	sb.WriteString("Run metrics:\n")
	sb.WriteString(fmt.Sprintf("- Total: %d ms  (success=%v)\n", rm.DurationMs, rm.Succeeded))
	for _, s := range rm.Steps {
		status := "ok"
		if !s.Success {
			status = "err"
		}
		sb.WriteString(fmt.Sprintf("  Step %2d: %-24s %5d ms  [%s]\n",
			s.Step, s.Action, s.DurationMs, status))
	}
	return sb.String()
}
