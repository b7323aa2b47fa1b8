package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/virtual-embodiment-lab/obe-new/controller"
	"github.com/virtual-embodiment-lab/obe-new/models"
	"github.com/virtual-embodiment-lab/obe-new/services/ingest"
	"github.com/virtual-embodiment-lab/obe-new/store"
	"github.com/virtual-embodiment-lab/obe-new/utils"
	"github.com/virtual-embodiment-lab/obe-new/views"
)

func newRecordCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a movement log until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(cmd, opts)
			if err != nil {
				return err
			}
			return runRecord(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.String("scene", "", "Scene name used as the log file prefix")
	f.String("output", "", "Root directory for OBE_Movement_Logs/")
	f.String("tz", "", "Time zone for the file name timestamp (IANA or Windows id)")
	f.Float64("log-hz", 0, "Samples per second")
	f.String("name-separator", "", "Text inserted between the scene name and Movement_Log")
	f.Float64("fixed-hz", 0, "Host fixed tick rate")
	f.Float64("duration", 0, "Stop after this many seconds (0 runs until Ctrl+C)")
	f.StringSlice("drop", nil, "Leave these bodies unassigned (Head, LHand, RHand)")
	f.Bool("simulate", true, "Drive the rig from the simulated tracker")
	f.String("log-level", "", "Minimum diagnostic level (debug, info, warn, error)")
	f.String("index", "", "Path of the session index database")
	f.Bool("no-index", false, "Do not record the session in the index")

	return cmd
}

func runRecord(parent context.Context, cfg *utils.Config) error {
	// ── Logger ───────────────────────────────────────────────────────
	logger, err := initLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	utils.L().Info("═══════════════════════════════════════════════════")
	utils.L().Info("  obe-logger  ·  VR movement recorder")
	utils.L().Info("  GOMAXPROCS=%d  ·  PID=%d", runtime.GOMAXPROCS(0), os.Getpid())
	utils.L().Info("═══════════════════════════════════════════════════")

	// ── Session ──────────────────────────────────────────────────────
	sess, err := controller.InitializeSession(controller.SessionConfig{
		Name:          cfg.Session.Name,
		OutputRoot:    cfg.Session.OutputRoot,
		TimeZone:      cfg.Session.TimeZone,
		LogHz:         cfg.Session.LogHz,
		NameSeparator: cfg.Session.NameSeparator,
	})
	if err != nil {
		return err
	}

	// ── Pose source ──────────────────────────────────────────────────
	var (
		rig     models.Rig
		tracker controller.Advancer
	)
	if cfg.Simulation.Enabled {
		tr := ingest.NewSimulatedTracker(cfg.Simulation)
		rig, tracker = tr.Rig(), tr
	} else {
		utils.L().Warn("simulation disabled and no tracker attached: every tick will report missing references")
	}

	// ── Session index ────────────────────────────────────────────────
	index := openIndex(cfg)
	if index != nil {
		defer index.Close()
	}
	rec := &store.SessionRecord{
		ID:        sess.ID,
		Scene:     sess.Name,
		FilePath:  sess.FilePath,
		TimeZone:  sess.TimeZone,
		LogHz:     sess.LogHz,
		StartedAt: sess.StartedAt,
	}
	saveRecord(index, rec)

	// ── Context with OS signal cancellation ──────────────────────────
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if d := cfg.Host.DurationSeconds; d > 0 {
		var timerCancel context.CancelFunc
		ctx, timerCancel = context.WithTimeout(ctx, time.Duration(d*float64(time.Second)))
		defer timerCancel()
		utils.L().Info("recording will auto-stop after %.1fs", d)
	}

	// ── Host loop ────────────────────────────────────────────────────
	host := controller.NewHostController(controller.HostConfig{
		FixedHz:       cfg.Host.FixedHz,
		StatsInterval: time.Duration(cfg.Host.StatsIntervalSeconds) * time.Second,
	}, controller.NewSampler(sess, rig), tracker)

	utils.L().Info("recording — press Ctrl+C to stop")
	runErr := host.Run(ctx)

	rec.EndedAt = time.Now().In(sess.StartedAt.Location())
	rec.Rows = sess.RowsWritten()
	saveRecord(index, rec)

	if runErr != nil {
		return runErr
	}

	report, err := views.CheckLog(sess.FilePath)
	if err != nil {
		utils.L().Warn("could not re-read log: %v", err)
	} else if !report.OK() {
		utils.L().Warn("log has %d problem rows", len(report.Problems))
	}

	ticks, rows, tickErrs := host.Stats()
	pterm.Success.Printfln("Movement log saved to %s", sess.FilePath)
	pterm.Info.Printfln("rows=%d  ticks=%d  tick_errors=%d", rows, ticks, tickErrs)
	return nil
}

func openIndex(cfg *utils.Config) *store.Client {
	if !cfg.Store.Enabled || cfg.Store.Path == "" {
		return nil
	}
	c, err := store.Open(cfg.Store.Path)
	if err != nil {
		utils.L().Warn("session index unavailable, continuing without it: %v", err)
		return nil
	}
	return c
}

func saveRecord(index *store.Client, rec *store.SessionRecord) {
	if index == nil {
		return
	}
	if err := index.SaveSession(rec); err != nil {
		utils.L().Warn("save session %s to index: %v", rec.ID, err)
	}
}
