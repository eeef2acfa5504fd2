package oracle

import (
	"fmt"
	"strings"

	"droidpilot/internal/action"
)

// Main prompt for deciding the next action of a run
func buildDecisionPrompt(req *Request, convo *Context) string {
	var sb strings.Builder

	sb.WriteString("You are an expert mobile-app automation operator. You are given a screenshot of the current screen and must choose exactly ONE next action to advance the task. Respond ONLY with a JSON object of the form {\"action\": \"...\", \"params\": {...}, \"reasoning\": \"...\", \"progress\": 0-100}. Do not include any other text, explanations, or markdown formatting.\n\n")

	sb.WriteString(fmt.Sprintf("TASK: %q\n", req.Task))
	sb.WriteString(fmt.Sprintf("STEP: %d of %d allowed.\n\n", req.Step, req.MaxSteps))

	if len(req.SuccessCriteria) > 0 {
		sb.WriteString("SUCCESS CRITERIA (all must hold before you answer done):\n")
		for _, c := range req.SuccessCriteria {
			sb.WriteString("- " + c + "\n")
		}
		sb.WriteString("\n")
	}
	if len(req.Constraints) > 0 {
		sb.WriteString("CONSTRAINTS (never violate these):\n")
		for _, c := range req.Constraints {
			sb.WriteString("- " + c + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("AVAILABLE ACTIONS:\n")
	sb.WriteString(action.Vocabulary())
	sb.WriteString("\nAll coordinates are screen percentages from 0 to 100, not pixels.\n\n")

	if len(req.History) > 0 {
		sb.WriteString("ACTIONS PERFORMED SO FAR (oldest first):\n")
		for i, h := range req.History {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, h))
		}
		sb.WriteString("\n")
	}

	if len(convo.Exchanges) > 0 {
		sb.WriteString("PREVIOUS DECISIONS (for context):\n")
		for _, ex := range convo.Exchanges {
			sb.WriteString(fmt.Sprintf("%s: %s\n", ex.Summary, ex.Response))
		}
		sb.WriteString("\n")
	}

	if req.Hint != "" {
		sb.WriteString(req.Hint + "\n\n")
	}

	sb.WriteString("HARD RULES:\n")
	sb.WriteString("- Choose exactly one action per response.\n")
	sb.WriteString("- Answer `done` ONLY when the screenshot shows the task is complete.\n")
	sb.WriteString("- Answer `failed` when the task is impossible to complete.\n")
	sb.WriteString("- `reasoning` is a short explanation; `progress` is your 0-100 completion estimate.\n\n")
	sb.WriteString("Assistant JSON response: ")

	return sb.String()
}
