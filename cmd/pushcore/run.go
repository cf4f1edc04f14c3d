package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pushcore/internal/core"
	"github.com/vovakirdan/pushcore/internal/scenario"
	"github.com/vovakirdan/pushcore/internal/sim"
)

var (
	flagTrace   bool
	flagShow    bool
	flagJournal bool
)

// errExpectations is returned when a run finishes but its expectations fail.
var errExpectations = errors.New("expectations failed")

var runCmd = &cobra.Command{
	Use:   "run <scenario>",
	Short: "Run a scenario script",
	Long: `Run every tick of a scenario script and check its expectations.
Exits with status 1 when an expectation fails.

The run is journaled when journal.enabled is set in the config or
--journal is given.

Examples:
  pushcore run scenarios/push_chain.yaml
  pushcore run scenarios/controller.yaml --trace --show
  pushcore run scenarios/reset.yaml --journal --db ./journal.db`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&flagTrace, "trace", false, "Print every tick's outcomes")
	runCmd.Flags().BoolVar(&flagShow, "show", false, "Print the board and action table after the run")
	runCmd.Flags().BoolVar(&flagJournal, "journal", false, "Journal the run regardless of config")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	render := newRenderer()

	sc, err := scenario.LoadFile(args[0])
	if err != nil {
		return err
	}

	eng, err := sc.Build(scenario.Options{
		PhaseTicks: cfg.Controller.PhaseTicks,
		TrackAll:   cfg.History.Enabled,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	var hooks []func(sim.StepResult) error
	if flagTrace {
		hooks = append(hooks, func(res sim.StepResult) error {
			fmt.Println(render.Step(res))
			return nil
		})
	}
	if cfg.Journal.Enabled || flagJournal {
		store, err := openJournal(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		sess, err := store.StartSession(sc.Name, core.NewBounds(sc.Bounds.W, sc.Bounds.H))
		if err != nil {
			return err
		}
		logger.Info("journaling", "session", sess.ID)
		hooks = append(hooks, store.Recorder(sess.ID))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	err = sc.Run(ctx, eng, func(res sim.StepResult) error {
		for _, h := range hooks {
			if err := h(res); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("tick %d: %w", eng.Tick(), err)
	}

	if flagShow {
		frame, err := render.Frame(eng, core.NewBounds(sc.Bounds.W, sc.Bounds.H))
		if err != nil {
			return err
		}
		fmt.Println(frame)
		fmt.Println(render.History(eng))
	}

	mismatches := sc.Verify(eng.World())
	if len(mismatches) == 0 {
		fmt.Printf("%s: %d ticks, %d expectations ok\n", sc.Name, eng.Tick(), len(sc.Expect))
		return nil
	}
	for _, m := range mismatches {
		fmt.Fprintf(os.Stderr, "%s: %s\n", sc.Name, m)
	}
	return fmt.Errorf("%s: %d of %d %w", sc.Name, len(mismatches), len(sc.Expect), errExpectations)
}
