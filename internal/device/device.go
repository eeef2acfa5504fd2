// Package device wraps the automation backend that drives a phone or
// simulator: primitive gestures, text entry, app lifecycle, and screen
// capture. The Backend interface exists so the control loop can run
// against a recording substitute in tests.
package device

import "context"

type Backend interface {
	// Launch brings the target app to the foreground at the start of a run.
	Launch(ctx context.Context, appID string) error
	LaunchApp(ctx context.Context, appID string) error
	StopApp(ctx context.Context, appID string) error

	Tap(ctx context.Context, x, y int) error
	DoubleTap(ctx context.Context, x, y int) error
	LongPress(ctx context.Context, x, y int) error
	TapText(ctx context.Context, text string) error
	LongPressText(ctx context.Context, text string) error
	InputText(ctx context.Context, text string) error
	EraseText(ctx context.Context, chars int) error
	Scroll(ctx context.Context) error
	Swipe(ctx context.Context, startX, startY, endX, endY int) error
	Back(ctx context.Context) error
	HideKeyboard(ctx context.Context) error
	OpenLink(ctx context.Context, url string) error
	PressKey(ctx context.Context, key string) error
	WaitForAnimation(ctx context.Context, timeoutMs int) error

	// Screenshot captures the current screen as PNG bytes. The step index
	// only names the artifact for debugging.
	Screenshot(ctx context.Context, step int) ([]byte, error)
}
