package action

import (
	"fmt"
	"strings"
)

// Kind is the closed set of intent kinds the oracle may choose from.
type Kind string

const (
	KindTap          Kind = "tap"
	KindTapText      Kind = "tapText"
	KindDoubleTap    Kind = "doubleTap"
	KindLongPress    Kind = "longPress"
	KindInputText    Kind = "inputText"
	KindEraseText    Kind = "eraseText"
	KindScroll       Kind = "scroll"
	KindSwipe        Kind = "swipe"
	KindBack         Kind = "back"
	KindHideKeyboard Kind = "hideKeyboard"
	KindOpenLink     Kind = "openLink"
	KindPressKey     Kind = "pressKey"
	KindWait         Kind = "wait"
	KindLaunchApp    Kind = "launchApp"
	KindStopApp      Kind = "stopApp"
	KindDone         Kind = "done"
	KindFailed       Kind = "failed"
)

// Decision is the raw payload parsed from one oracle response.
// Reasoning and Progress are observational only and never influence
// control flow.
type Decision struct {
	Action    string         `json:"action"`
	Params    map[string]any `json:"params,omitempty"`
	Reasoning string         `json:"reasoning,omitempty"`
	Progress  int            `json:"progress,omitempty"`
}

// Intent is one decoded decision: a single variant per kind, with the
// kind's defaults already applied. Summary is the one-line form recorded
// in run history.
type Intent interface {
	Summary() string
}

type Tap struct{ X, Y int }

type TapText struct{ Text string }

type DoubleTap struct{ X, Y int }

// LongPress targets visible text when Text is non-empty, else coordinates.
type LongPress struct {
	Text string
	X, Y int
}

type InputText struct{ Text string }

type EraseText struct{ Chars int }

type Scroll struct{}

type Swipe struct{ StartX, StartY, EndX, EndY int }

type Back struct{}

type HideKeyboard struct{}

type OpenLink struct{ URL string }

type PressKey struct{ Key string }

type Wait struct{ TimeoutMs int }

type LaunchApp struct{ AppID string }

type StopApp struct{ AppID string }

type Done struct{}

type Failed struct{}

// Unknown carries a kind outside the vocabulary. The translator logs it
// and performs no backend call.
type Unknown struct{ Name string }

func (a Tap) Summary() string       { return fmt.Sprintf("tap(%d,%d)", a.X, a.Y) }
func (a TapText) Summary() string   { return fmt.Sprintf("tapText(%q)", clip(a.Text, 20)) }
func (a DoubleTap) Summary() string { return fmt.Sprintf("doubleTap(%d,%d)", a.X, a.Y) }

func (a LongPress) Summary() string {
	if a.Text != "" {
		return "longPress"
	}
	return fmt.Sprintf("longPress(%d,%d)", a.X, a.Y)
}

func (a InputText) Summary() string    { return fmt.Sprintf("inputText(%q)", clip(a.Text, 20)) }
func (a EraseText) Summary() string    { return "eraseText" }
func (a Scroll) Summary() string       { return "scroll" }
func (a Swipe) Summary() string        { return fmt.Sprintf("swipe(%d,%d->%d,%d)", a.StartX, a.StartY, a.EndX, a.EndY) }
func (a Back) Summary() string         { return "back" }
func (a HideKeyboard) Summary() string { return "hideKeyboard" }
func (a OpenLink) Summary() string     { return "openLink" }
func (a PressKey) Summary() string     { return "pressKey" }
func (a Wait) Summary() string         { return "wait" }
func (a LaunchApp) Summary() string    { return fmt.Sprintf("launchApp(%q)", a.AppID) }
func (a StopApp) Summary() string      { return fmt.Sprintf("stopApp(%q)", a.AppID) }
func (a Done) Summary() string         { return "done" }
func (a Failed) Summary() string       { return "failed" }
func (a Unknown) Summary() string      { return a.Name }

// Terminal reports whether the intent ends the run.
func Terminal(in Intent) bool {
	switch in.(type) {
	case Done, Failed:
		return true
	}
	return false
}

// clip truncates to n runes, never splitting a multi-byte character.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

// Vocabulary lists every dispatchable kind with a one-line description,
// in the order presented to the oracle.
func Vocabulary() string {
	var sb strings.Builder
	for _, e := range vocab {
		sb.WriteString(fmt.Sprintf("- `%s`: %s\n", e.kind, e.desc))
	}
	return sb.String()
}

var vocab = []struct {
	kind Kind
	desc string
}{
	{KindTap, "tap at params {x, y} (screen percentages 0-100, default 50,50)."},
	{KindTapText, "tap the element with visible text params {text}."},
	{KindDoubleTap, "double tap at params {x, y} (default 50,50)."},
	{KindLongPress, "long press on params {text} if given, else at {x, y}."},
	{KindInputText, "type params {text} into the focused field."},
	{KindEraseText, "erase params {chars} characters (default 50)."},
	{KindScroll, "scroll down one screen."},
	{KindSwipe, "swipe from params {startX, startY} to {endX, endY} (default 50,50 -> 50,20)."},
	{KindBack, "navigate back."},
	{KindHideKeyboard, "dismiss the on-screen keyboard."},
	{KindOpenLink, "open params {url} on the device."},
	{KindPressKey, "press params {key} (default \"enter\")."},
	{KindWait, "wait up to params {timeout} ms for animations (default 3000)."},
	{KindLaunchApp, "launch the app params {appId}."},
	{KindStopApp, "stop the app params {appId}."},
	{KindDone, "the task is complete; put the outcome in reasoning."},
	{KindFailed, "the task cannot be completed; put why in reasoning."},
}
