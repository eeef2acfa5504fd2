package action

import "strconv"

// Decode turns a raw oracle decision into a typed intent, applying each
// kind's defaults for missing parameters. Kinds outside the vocabulary
// decode to Unknown; the caller decides what to do with those.
func Decode(d *Decision) Intent {
	p := d.Params
	switch Kind(d.Action) {
	case KindTap:
		return Tap{X: intOr(p, "x", 50), Y: intOr(p, "y", 50)}
	case KindTapText:
		return TapText{Text: strOr(p, "text", "")}
	case KindDoubleTap:
		return DoubleTap{X: intOr(p, "x", 50), Y: intOr(p, "y", 50)}
	case KindLongPress:
		return LongPress{Text: strOr(p, "text", ""), X: intOr(p, "x", 50), Y: intOr(p, "y", 50)}
	case KindInputText:
		return InputText{Text: strOr(p, "text", "")}
	case KindEraseText:
		return EraseText{Chars: intOr(p, "chars", 50)}
	case KindScroll:
		return Scroll{}
	case KindSwipe:
		return Swipe{
			StartX: intOr(p, "startX", 50),
			StartY: intOr(p, "startY", 50),
			EndX:   intOr(p, "endX", 50),
			EndY:   intOr(p, "endY", 20),
		}
	case KindBack:
		return Back{}
	case KindHideKeyboard:
		return HideKeyboard{}
	case KindOpenLink:
		return OpenLink{URL: strOr(p, "url", "")}
	case KindPressKey:
		return PressKey{Key: strOr(p, "key", "enter")}
	case KindWait:
		return Wait{TimeoutMs: intOr(p, "timeout", 3000)}
	case KindLaunchApp:
		return LaunchApp{AppID: strOr(p, "appId", "")}
	case KindStopApp:
		return StopApp{AppID: strOr(p, "appId", "")}
	case KindDone:
		return Done{}
	case KindFailed:
		return Failed{}
	}
	return Unknown{Name: d.Action}
}

// JSON numbers arrive as float64; models occasionally send numbers as
// strings, so those are accepted too.
func intOr(params map[string]any, key string, def int) int {
	val, ok := params[key]
	if !ok || val == nil {
		return def
	}
	switch v := val.(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return int(f)
		}
	}
	return def
}

func strOr(params map[string]any, key, def string) string {
	val, ok := params[key]
	if !ok {
		return def
	}
	s, ok := val.(string)
	if !ok {
		return def
	}
	return s
}
