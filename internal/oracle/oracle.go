// Package oracle asks a vision-capable model for the next action given a
// screenshot and the run context. The conversational context is an
// explicit object owned by the caller, trimmed to a fixed window.
package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"droidpilot/internal/action"
)

// KeepExchanges bounds the rolling conversational context.
const KeepExchanges = 10

type Exchange struct {
	Summary  string `json:"summary"`  // one-line step summary sent to the model
	Response string `json:"response"` // the decision JSON the model returned
}

// Context is the oracle's rolling memory of prior exchanges. The control
// loop owns it and passes it on every call.
type Context struct {
	Exchanges []Exchange
}

func (c *Context) Append(summary, response string) {
	c.Exchanges = append(c.Exchanges, Exchange{Summary: summary, Response: response})
	if len(c.Exchanges) > KeepExchanges {
		c.Exchanges = c.Exchanges[len(c.Exchanges)-KeepExchanges:]
	}
}

// Request carries everything one decision needs.
type Request struct {
	Screenshot      []byte
	Task            string
	Step            int
	MaxSteps        int
	History         []string
	SuccessCriteria []string
	Constraints     []string
	Hint            string // stuck-pattern advisory, "" when absent
}

// Decide sends the screenshot and context to the active provider and
// parses exactly one structured decision from the response.
func Decide(ctx context.Context, req *Request, convo *Context, model string) (*action.Decision, error) {
	if active == nil {
		return nil, ErrNotInitialized
	}

	prompt := buildDecisionPrompt(req, convo)
	raw, err := active.GenerateVision(ctx, prompt, req.Screenshot, model)
	if err != nil {
		return nil, fmt.Errorf("failed to generate decision: %w", err)
	}

	payload, err := extractJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("error parsing decision: %w\nRaw Response: %s", err, raw)
	}

	var dec action.Decision
	if err := json.Unmarshal([]byte(payload), &dec); err != nil {
		return nil, fmt.Errorf("error parsing decision JSON: %v\nRaw Response: %s", err, raw)
	}
	if strings.TrimSpace(dec.Action) == "" {
		return nil, fmt.Errorf("decision has no action field\nRaw Response: %s", raw)
	}

	convo.Append(fmt.Sprintf("step %d/%d", req.Step, req.MaxSteps), payload)
	return &dec, nil
}

// extractJSON pulls the first JSON object out of a model response,
// tolerating markdown fences and prose around it.
func extractJSON(text string) (string, error) {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	start := strings.IndexByte(clean, '{')
	if start < 0 {
		return "", fmt.Errorf("no JSON object in response")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(clean); i++ {
		c := clean[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = inString
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return clean[start : i+1], nil
				}
			}
		}
	}
	return "", fmt.Errorf("unterminated JSON object in response")
}
