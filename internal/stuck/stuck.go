// Package stuck inspects the trailing run history for repetition that
// suggests the agent is not making progress.
package stuck

import (
	"fmt"
	"strings"
)

const window = 3

// Hint returns an advisory string for the oracle when the trailing window
// shows a stuck pattern, or "" when it does not. Pure: never mutates
// history, recomputed fresh each step.
func Hint(history []string) string {
	if len(history) < window {
		return ""
	}
	tail := history[len(history)-window:]

	if tail[0] == tail[1] && tail[1] == tail[2] {
		return fmt.Sprintf(
			"WARNING: you have performed %s 3 times in a row with no visible progress. "+
				"Do NOT repeat it. Try one of: shift the coordinates, target the element "+
				"by its visible text instead, scroll to reveal new content, or take a "+
				"completely different approach to the task.", tail[0])
	}

	taps := 0
	for _, entry := range tail {
		if strings.HasPrefix(entry, "tap(") {
			taps++
		}
	}
	if taps >= 2 {
		return "Hint: several recent actions were coordinate taps. If the last tap " +
			"missed its target, adjust the coordinates or tap the element by its " +
			"visible text instead."
	}

	return ""
}
