// Package translate maps decoded action intents onto automation backend
// primitives. One intent, one logical backend operation; retrying is the
// control loop's business, not the translator's.
package translate

import (
	"context"
	"fmt"

	"droidpilot/internal/action"
	"droidpilot/internal/device"
	"droidpilot/internal/logger"
)

type Translator struct {
	backend device.Backend
}

func New(backend device.Backend) *Translator {
	return &Translator{backend: backend}
}

// Dispatch executes the single backend operation for the intent.
// Terminal intents and unknown kinds perform no backend call and never
// fail. The `back` intent has a one-shot fallback: if the hardware back
// call fails, substitute an edge swipe that emulates back navigation.
func (t *Translator) Dispatch(ctx context.Context, in action.Intent) error {
	switch a := in.(type) {
	case action.Tap:
		return t.backend.Tap(ctx, a.X, a.Y)
	case action.TapText:
		return t.backend.TapText(ctx, a.Text)
	case action.DoubleTap:
		return t.backend.DoubleTap(ctx, a.X, a.Y)
	case action.LongPress:
		if a.Text != "" {
			return t.backend.LongPressText(ctx, a.Text)
		}
		return t.backend.LongPress(ctx, a.X, a.Y)
	case action.InputText:
		return t.backend.InputText(ctx, a.Text)
	case action.EraseText:
		return t.backend.EraseText(ctx, a.Chars)
	case action.Scroll:
		return t.backend.Scroll(ctx)
	case action.Swipe:
		return t.backend.Swipe(ctx, a.StartX, a.StartY, a.EndX, a.EndY)
	case action.Back:
		if err := t.backend.Back(ctx); err != nil {
			logger.Log.Printf("[translate] back failed (%v), falling back to edge swipe", err)
			return t.backend.Swipe(ctx, 0, 50, 75, 50)
		}
		return nil
	case action.HideKeyboard:
		return t.backend.HideKeyboard(ctx)
	case action.OpenLink:
		return t.backend.OpenLink(ctx, a.URL)
	case action.PressKey:
		return t.backend.PressKey(ctx, a.Key)
	case action.Wait:
		return t.backend.WaitForAnimation(ctx, a.TimeoutMs)
	case action.LaunchApp:
		// No-op when the oracle omits the app id.
		if a.AppID == "" {
			return nil
		}
		return t.backend.LaunchApp(ctx, a.AppID)
	case action.StopApp:
		if a.AppID == "" {
			return nil
		}
		return t.backend.StopApp(ctx, a.AppID)
	case action.Done, action.Failed:
		return nil
	case action.Unknown:
		logger.Log.Printf("[translate] unknown action kind %q, skipping", a.Name)
		return nil
	}
	return fmt.Errorf("unhandled intent type %T", in)
}
