package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"droidpilot/internal/agent"
	"droidpilot/internal/config"
	"droidpilot/internal/device"
	"droidpilot/internal/display"
	"droidpilot/internal/listener"
	"droidpilot/internal/logger"
	"droidpilot/internal/metrics"
	"droidpilot/internal/oracle"
)

var (
	flagApp         string
	flagTask        string
	flagMaxSteps    int
	flagBackend     string
	flagModel       string
	flagDevice      string
	flagDriverPort  int
	flagMaestroBin  string
	flagCriteria    []string
	flagConstraints []string
)

var rootCmd = &cobra.Command{
	Use:   "droidpilot",
	Short: "A vision-driven mobile app automation agent",
	Long:          `Drives a phone or simulator toward a natural-language task: capture the screen, ask a vision model for the next action, execute it, repeat.`,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		if err := oracle.Init(oracle.Config{
			Backend:    flagBackend,
			Model:      flagModel,
			OllamaHost: os.Getenv("OLLAMA_HOST"),
		}); err != nil {
			return fmt.Errorf("could not initialize oracle: %w", err)
		}
		fmt.Println(display.FormatOracle(oracle.ActiveBackend(), oracle.AllowedModelOrDefault(flagModel)))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		baseCfg := config.Run{
			AppID:           flagApp,
			MaxSteps:        flagMaxSteps,
			Backend:         flagBackend,
			Model:           flagModel,
			SuccessCriteria: flagCriteria,
			Constraints:     flagConstraints,
			DeviceID:        flagDevice,
			DriverPort:      flagDriverPort,
			MaestroBin:      flagMaestroBin,
			Delays:          config.DefaultDelays(),
		}

		if strings.TrimSpace(flagTask) != "" {
			baseCfg.Task = flagTask
			return runOnce(ctx, baseCfg)
		}
		return runInteractive(ctx, baseCfg)
	},
}

func init() {
	rootCmd.Flags().StringVar(&flagApp, "app", "", "target app id (empty = whatever is foregrounded)")
	rootCmd.Flags().StringVar(&flagTask, "task", "", "task description (empty = interactive mode)")
	rootCmd.Flags().IntVar(&flagMaxSteps, "max-steps", 50, "step budget per run")
	rootCmd.Flags().StringVar(&flagBackend, "backend", "gemini", "oracle backend: gemini or ollama")
	rootCmd.Flags().StringVar(&flagModel, "model", "", "oracle model (backend default when empty)")
	rootCmd.Flags().StringVar(&flagDevice, "device", "", "device/simulator id")
	rootCmd.Flags().IntVar(&flagDriverPort, "driver-port", 0, "physical-device driver port")
	rootCmd.Flags().StringVar(&flagMaestroBin, "maestro-bin", "", "path to the maestro binary")
	rootCmd.Flags().StringArrayVar(&flagCriteria, "criteria", nil, "success criterion (repeatable)")
	rootCmd.Flags().StringArrayVar(&flagConstraints, "constraint", nil, "constraint the agent must honor (repeatable)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newAgent(cfg config.Run) (*agent.Agent, *device.Maestro, error) {
	dev, err := device.NewMaestro(cfg.AppID, cfg.DeviceID, cfg.DriverPort)
	if err != nil {
		return nil, nil, err
	}
	if cfg.MaestroBin != "" {
		dev.Bin = cfg.MaestroBin
	}
	a := agent.New(cfg, dev, oracle.Decide)
	a.RunID = uuid.New().String()[:8]
	return a, dev, nil
}

func runOnce(ctx context.Context, cfg config.Run) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	a, dev, err := newAgent(cfg)
	if err != nil {
		return err
	}
	defer dev.Cleanup()

	a.Notify = func(s string) { fmt.Println(s) }
	logger.Log.Printf("[cli] run %s (%s backend): %q", a.RunID, cfg.Backend, cfg.Task)

	res := a.Run(ctx)
	fmt.Println(display.FormatResult(a.RunID, res))
	fmt.Println(display.FormatRunMetrics(a.Metrics()))

	if !res.Success {
		dev.Cleanup()
		os.Exit(1)
	}
	return nil
}

type runOutcome struct {
	runID   string
	result  agent.Result
	metrics *metrics.RunMetrics
}

// runInteractive reads one task per line and runs them sequentially,
// printing outcomes above the prompt as they land.
func runInteractive(ctx context.Context, baseCfg config.Run) error {
	if err := listener.Init(); err != nil {
		return fmt.Errorf("failed to init terminal input: %w", err)
	}
	defer listener.Close()

	results := make(chan runOutcome, 16)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case out, ok := <-results:
				if !ok {
					return nil
				}
				listener.AsyncPrintln(display.FormatResult(out.runID, out.result))
				listener.AsyncPrintln(display.FormatRunMetrics(out.metrics))
			}
		}
	})

	g.Go(func() error {
		defer close(results)
		listener.AsyncPrintln("Ready. Type a task (or 'exit' to quit).")
		for {
			if gctx.Err() != nil {
				return nil
			}
			inputText := listener.GetInput()
			if strings.TrimSpace(strings.ToLower(inputText)) == "exit" {
				fmt.Println("Goodbye!")
				return nil
			}
			if strings.TrimSpace(inputText) == "" {
				continue
			}

			cfg := baseCfg
			cfg.Task = inputText
			if err := cfg.Validate(); err != nil {
				listener.AsyncPrintln(fmt.Sprintf("[Rejected] %v", err))
				continue
			}

			a, dev, err := newAgent(cfg)
			if err != nil {
				listener.AsyncPrintln(fmt.Sprintf("[Setup failed] %v", err))
				continue
			}
			a.Notify = listener.AsyncPrintln

			listener.AsyncPrintln(fmt.Sprintf("[Run %s STARTED] %q", a.RunID, cfg.Task))
			logger.Log.Printf("[cli] run %s (%s backend): %q", a.RunID, cfg.Backend, cfg.Task)

			res := a.Run(gctx)
			dev.Cleanup()

			select {
			case results <- runOutcome{runID: a.RunID, result: res, metrics: a.Metrics()}:
			case <-gctx.Done():
				return nil
			}
		}
	})

	return g.Wait()
}
