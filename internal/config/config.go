package config

import (
	"fmt"
	"os"
	"time"
)

// Delays names every fixed pause in the control loop so the timing model
// is explicit and tunable (tests run with the zero value).
type Delays struct {
	LaunchSettle time.Duration // after launching the target app
	ReadySettle  time.Duration // when no app is configured
	ErrorBackoff time.Duration // after a recoverable capture/decision failure
	StepInterval time.Duration // between consecutive steps
}

func DefaultDelays() Delays {
	return Delays{
		LaunchSettle: 2500 * time.Millisecond,
		ReadySettle:  1 * time.Second,
		ErrorBackoff: 2 * time.Second,
		StepInterval: 1500 * time.Millisecond,
	}
}

// Run is everything one automation run needs. AppID empty means "operate
// on whatever is currently foregrounded".
type Run struct {
	AppID           string
	Task            string
	MaxSteps        int
	Backend         string // llm backend: gemini or ollama
	Model           string
	SuccessCriteria []string
	Constraints     []string
	DeviceID        string
	DriverPort      int
	MaestroBin      string
	Delays          Delays
}

func (r *Run) Validate() error {
	if r.Task == "" {
		return fmt.Errorf("a task description is required")
	}
	if r.MaxSteps <= 0 {
		return fmt.Errorf("max steps must be positive, got %d", r.MaxSteps)
	}
	return nil
}

// LogPath returns the run log location, overridable via DROIDPILOT_LOG.
func LogPath() string {
	if p := os.Getenv("DROIDPILOT_LOG"); p != "" {
		return p
	}
	return "droidpilot.log"
}
