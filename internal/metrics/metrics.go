package metrics

import "time"

type StepMetrics struct {
	Step       int       `json:"step"`
	Action     string    `json:"action"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	DurationMs int64     `json:"duration_ms"`
	Success    bool      `json:"success"`
	Err        string    `json:"err,omitempty"`
}

type RunMetrics struct {
	RunID      string        `json:"run_id"`
	Task       string        `json:"task"`
	Start      time.Time     `json:"start"`
	End        time.Time     `json:"end"`
	DurationMs int64         `json:"duration_ms"`
	Succeeded  bool          `json:"succeeded"`
	Steps      []StepMetrics `json:"steps"`
}

// Compute derived fields for a step.
func (s *StepMetrics) Finalize() {
	s.DurationMs = s.End.Sub(s.Start).Milliseconds()
}

// Compute derived fields for a run.
func (m *RunMetrics) Finalize() {
	m.DurationMs = m.End.Sub(m.Start).Milliseconds()
}
