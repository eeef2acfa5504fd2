package device

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"droidpilot/internal/logger"
)

const (
	defaultFlowTimeout = 2 * time.Minute
	maxErrorExcerpt    = 400
)

// Maestro executes primitives by generating one-command Maestro flow
// documents and running them through the maestro CLI. Device targeting is
// fixed for the lifetime of the struct.
type Maestro struct {
	Bin         string // maestro binary, default "maestro"
	AppID       string // flow header appId; "any" when no app is configured
	DeviceID    string // simulator/device id, empty = current default
	DriverPort  int    // physical-device driver port, 0 = unset
	FlowTimeout time.Duration
	WorkDir     string // where flow files and screenshots are written
}

func NewMaestro(appID, deviceID string, driverPort int) (*Maestro, error) {
	dir, err := os.MkdirTemp("", "droidpilot-flows-")
	if err != nil {
		return nil, fmt.Errorf("could not create flow workdir: %w", err)
	}
	header := appID
	if header == "" {
		header = "any"
	}
	return &Maestro{
		Bin:         "maestro",
		AppID:       header,
		DeviceID:    deviceID,
		DriverPort:  driverPort,
		FlowTimeout: defaultFlowTimeout,
		WorkDir:     dir,
	}, nil
}

// flow renders a one-command Maestro flow document. String values are
// quoted with strconv.Quote, which is valid YAML double-quoting.
func (m *Maestro) flow(commands ...string) string {
	var sb strings.Builder
	sb.WriteString("appId: " + m.AppID + "\n---\n")
	for _, c := range commands {
		sb.WriteString(c)
		sb.WriteString("\n")
	}
	return sb.String()
}

func point(x, y int) string {
	return fmt.Sprintf("    point: \"%d%%,%d%%\"", x, y)
}

func (m *Maestro) runFlow(ctx context.Context, name, doc string) error {
	path := filepath.Join(m.WorkDir, name+".yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("could not write flow %s: %w", name, err)
	}

	timeout := m.FlowTimeout
	if timeout <= 0 {
		timeout = defaultFlowTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := []string{}
	if m.DeviceID != "" {
		args = append(args, "--device", m.DeviceID)
	}
	args = append(args, "test", path)
	if m.DriverPort > 0 {
		args = append(args, "--driver-host-port", strconv.Itoa(m.DriverPort))
	}

	cmd := exec.CommandContext(runCtx, m.Bin, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("flow %s timed out after %s: %s", name, timeout, excerpt(out))
		}
		return fmt.Errorf("flow %s failed: %w: %s", name, err, excerpt(out))
	}
	logger.Log.Printf("[device] flow %s ok", name)
	return nil
}

// excerpt keeps the tail of the tool output, where maestro prints the
// failing command and its reason.
func excerpt(out []byte) string {
	s := strings.TrimSpace(string(out))
	if len(s) > maxErrorExcerpt {
		s = "..." + s[len(s)-maxErrorExcerpt:]
	}
	return s
}

func (m *Maestro) Launch(ctx context.Context, appID string) error {
	return m.runFlow(ctx, "launch", m.flow("- launchApp: "+strconv.Quote(appID)))
}

func (m *Maestro) LaunchApp(ctx context.Context, appID string) error {
	return m.runFlow(ctx, "launchApp", m.flow("- launchApp: "+strconv.Quote(appID)))
}

func (m *Maestro) StopApp(ctx context.Context, appID string) error {
	return m.runFlow(ctx, "stopApp", m.flow("- stopApp: "+strconv.Quote(appID)))
}

func (m *Maestro) Tap(ctx context.Context, x, y int) error {
	return m.runFlow(ctx, "tap", m.flow("- tapOn:", point(x, y)))
}

func (m *Maestro) DoubleTap(ctx context.Context, x, y int) error {
	return m.runFlow(ctx, "doubleTap", m.flow("- doubleTapOn:", point(x, y)))
}

func (m *Maestro) LongPress(ctx context.Context, x, y int) error {
	return m.runFlow(ctx, "longPress", m.flow("- longPressOn:", point(x, y)))
}

func (m *Maestro) TapText(ctx context.Context, text string) error {
	return m.runFlow(ctx, "tapText", m.flow("- tapOn: "+strconv.Quote(text)))
}

func (m *Maestro) LongPressText(ctx context.Context, text string) error {
	return m.runFlow(ctx, "longPressText", m.flow("- longPressOn: "+strconv.Quote(text)))
}

func (m *Maestro) InputText(ctx context.Context, text string) error {
	return m.runFlow(ctx, "inputText", m.flow("- inputText: "+strconv.Quote(text)))
}

func (m *Maestro) EraseText(ctx context.Context, chars int) error {
	return m.runFlow(ctx, "eraseText", m.flow("- eraseText: "+strconv.Itoa(chars)))
}

func (m *Maestro) Scroll(ctx context.Context) error {
	return m.runFlow(ctx, "scroll", m.flow("- scroll"))
}

func (m *Maestro) Swipe(ctx context.Context, startX, startY, endX, endY int) error {
	return m.runFlow(ctx, "swipe", m.flow(
		"- swipe:",
		fmt.Sprintf("    start: \"%d%%,%d%%\"", startX, startY),
		fmt.Sprintf("    end: \"%d%%,%d%%\"", endX, endY),
	))
}

func (m *Maestro) Back(ctx context.Context) error {
	return m.runFlow(ctx, "back", m.flow("- back"))
}

func (m *Maestro) HideKeyboard(ctx context.Context) error {
	return m.runFlow(ctx, "hideKeyboard", m.flow("- hideKeyboard"))
}

func (m *Maestro) OpenLink(ctx context.Context, url string) error {
	return m.runFlow(ctx, "openLink", m.flow("- openLink: "+strconv.Quote(url)))
}

func (m *Maestro) PressKey(ctx context.Context, key string) error {
	return m.runFlow(ctx, "pressKey", m.flow("- pressKey: "+strconv.Quote(key)))
}

func (m *Maestro) WaitForAnimation(ctx context.Context, timeoutMs int) error {
	return m.runFlow(ctx, "wait", m.flow(
		"- waitForAnimationToEnd:",
		fmt.Sprintf("    timeout: %d", timeoutMs),
	))
}

// Screenshot runs a takeScreenshot flow and reads back the PNG artifact.
// Maestro appends the .png extension itself.
func (m *Maestro) Screenshot(ctx context.Context, step int) ([]byte, error) {
	base := filepath.Join(m.WorkDir, fmt.Sprintf("screen_%03d", step))
	err := m.runFlow(ctx, "screenshot", m.flow("- takeScreenshot: "+strconv.Quote(base)))
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(base + ".png")
	if err != nil {
		return nil, fmt.Errorf("screenshot artifact missing: %w", err)
	}
	return data, nil
}

// Cleanup removes the flow workdir. Safe to call once after a run.
func (m *Maestro) Cleanup() {
	if m.WorkDir != "" {
		_ = os.RemoveAll(m.WorkDir)
	}
}
