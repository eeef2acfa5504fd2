// Package agent drives one automation run: capture the screen, ask the
// oracle for the next action, translate it into device primitives, and
// repeat until the oracle answers done/failed or the step budget runs out.
package agent

import (
	"context"
	"fmt"
	"time"

	"droidpilot/internal/action"
	"droidpilot/internal/config"
	"droidpilot/internal/device"
	"droidpilot/internal/logger"
	"droidpilot/internal/metrics"
	"droidpilot/internal/oracle"
	"droidpilot/internal/stuck"
	"droidpilot/internal/translate"
)

const timeoutReason = "step budget exhausted before the task completed"

// DecideFunc matches oracle.Decide; substituted in tests.
type DecideFunc func(ctx context.Context, req *oracle.Request, convo *oracle.Context, model string) (*action.Decision, error)

// Result is the sole output of a full run.
type Result struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason"`
	Steps   int    `json:"steps"`
}

// runState is the loop's mutable state. Exactly one exists per run and
// nothing outside Run touches it.
type runState struct {
	steps   int
	history []string
}

type Agent struct {
	RunID  string
	cfg    config.Run
	dev    device.Backend
	decide DecideFunc
	trans  *translate.Translator
	convo  oracle.Context
	rm     *metrics.RunMetrics

	// Notify surfaces short diagnostics to the user; defaults to the log.
	Notify func(string)
}

func New(cfg config.Run, dev device.Backend, decide DecideFunc) *Agent {
	return &Agent{
		cfg:    cfg,
		dev:    dev,
		decide: decide,
		trans:  translate.New(dev),
		Notify: func(s string) { logger.Log.Println(s) },
	}
}

// Metrics returns the per-step records of the last run.
func (a *Agent) Metrics() *metrics.RunMetrics { return a.rm }

// Run executes the step state machine. Only a launch failure at init is
// fatal; capture, decision, and dispatch failures are absorbed per step.
func (a *Agent) Run(ctx context.Context) Result {
	a.rm = &metrics.RunMetrics{RunID: a.RunID, Task: a.cfg.Task, Start: time.Now()}
	defer func() {
		a.rm.End = time.Now()
		a.rm.Finalize()
	}()

	st := &runState{}

	if a.cfg.AppID != "" {
		if err := a.dev.Launch(ctx, a.cfg.AppID); err != nil {
			logger.Log.Printf("[agent] launch of %s failed: %v", a.cfg.AppID, err)
			return Result{Success: false, Reason: fmt.Sprintf("could not launch %s: %v", a.cfg.AppID, err), Steps: 0}
		}
		st.history = append(st.history, "launched")
		pause(ctx, a.cfg.Delays.LaunchSettle)
	} else {
		st.history = append(st.history, "ready")
		pause(ctx, a.cfg.Delays.ReadySettle)
	}

	for st.steps < a.cfg.MaxSteps {
		if err := ctx.Err(); err != nil {
			a.rm.Succeeded = false
			return Result{Success: false, Reason: fmt.Sprintf("run cancelled: %v", err), Steps: st.steps}
		}
		st.steps++

		shot, err := a.dev.Screenshot(ctx, st.steps)
		if err != nil {
			// Consumes budget but appends no history entry.
			a.warn(fmt.Sprintf("[step %d] screen capture failed: %v", st.steps, err))
			pause(ctx, a.cfg.Delays.ErrorBackoff)
			continue
		}

		hint := stuck.Hint(st.history)
		dec, err := a.decide(ctx, &oracle.Request{
			Screenshot:      shot,
			Task:            a.cfg.Task,
			Step:            st.steps,
			MaxSteps:        a.cfg.MaxSteps,
			History:         st.history,
			SuccessCriteria: a.cfg.SuccessCriteria,
			Constraints:     a.cfg.Constraints,
			Hint:            hint,
		}, &a.convo, a.cfg.Model)
		if err != nil {
			a.warn(fmt.Sprintf("[step %d] decision failed: %v", st.steps, err))
			pause(ctx, a.cfg.Delays.ErrorBackoff)
			continue
		}

		logger.Log.Printf("[agent] step %d/%d: %s (progress %d%%) %s",
			st.steps, a.cfg.MaxSteps, dec.Action, dec.Progress, dec.Reasoning)

		in := action.Decode(dec)
		if action.Terminal(in) {
			if _, ok := in.(action.Done); ok {
				a.rm.Succeeded = true
				return Result{Success: true, Reason: dec.Reasoning, Steps: st.steps}
			}
			return Result{Success: false, Reason: dec.Reasoning, Steps: st.steps}
		}

		sm := metrics.StepMetrics{Step: st.steps, Action: in.Summary(), Start: time.Now()}
		err = a.trans.Dispatch(ctx, in)
		sm.End = time.Now()
		sm.Finalize()
		sm.Success = err == nil
		if err != nil {
			sm.Err = err.Error()
			a.warn(fmt.Sprintf("[step %d] %s failed: %v", st.steps, in.Summary(), err))
			st.history = append(st.history, "error")
		} else {
			st.history = append(st.history, in.Summary())
		}
		a.rm.Steps = append(a.rm.Steps, sm)

		pause(ctx, a.cfg.Delays.StepInterval)
	}

	return Result{Success: false, Reason: timeoutReason, Steps: a.cfg.MaxSteps}
}

func (a *Agent) warn(msg string) {
	logger.Log.Println("[agent] " + msg)
	if a.Notify != nil {
		a.Notify(msg)
	}
}

func pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
