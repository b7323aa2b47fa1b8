package controller

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/virtual-embodiment-lab/obe-new/utils"
)

// DefaultFixedHz matches a 0.02s fixed physics step.
const DefaultFixedHz = 50.0

// Advancer is implemented by pose sources that need the host clock, such
// as the simulated tracker.
type Advancer interface {
	Advance(t float64)
}

// HostConfig controls the fixed-step driver.
type HostConfig struct {
	FixedHz       float64
	StatsInterval time.Duration // 0 disables the periodic stats line
}

// HostController stands in for the engine's fixed-update scheduler. It
// calls Sampler.OnTick at a fixed rate with the elapsed session time and an
// increasing frame counter until its context is cancelled.
type HostController struct {
	cfg     HostConfig
	sampler *Sampler
	tracker Advancer

	ticks      uint64
	tickErrors uint64
}

// NewHostController creates a driver for sampler. tracker may be nil.
func NewHostController(cfg HostConfig, sampler *Sampler, tracker Advancer) *HostController {
	if cfg.FixedHz <= 0 {
		cfg.FixedHz = DefaultFixedHz
	}
	return &HostController{cfg: cfg, sampler: sampler, tracker: tracker}
}

// Run ticks until ctx is done. Non-fatal tick errors are counted and the
// loop continues; a fatal one stops it.
func (h *HostController) Run(ctx context.Context) error {
	interval := time.Duration(float64(time.Second) / h.cfg.FixedHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var stats <-chan time.Time
	if h.cfg.StatsInterval > 0 {
		st := time.NewTicker(h.cfg.StatsInterval)
		defer st.Stop()
		stats = st.C
	}

	utils.L().Info("host started  (fixed_hz=%.1f, log_hz=%.1f, file=%s)",
		h.cfg.FixedHz, h.sampler.Session().LogHz, h.sampler.Session().FilePath)

	start := time.Now()
	var frame int64

	if err := h.step(0, frame); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			h.LogStats()
			utils.L().Info("host stopped")
			return nil

		case now := <-ticker.C:
			frame++
			if err := h.step(utils.SecondsSince(start, now), frame); err != nil {
				return err
			}

		case <-stats:
			h.LogStats()
		}
	}
}

func (h *HostController) step(t float64, frame int64) error {
	if h.tracker != nil {
		h.tracker.Advance(t)
	}
	atomic.AddUint64(&h.ticks, 1)

	if err := h.sampler.OnTick(t, frame); err != nil {
		atomic.AddUint64(&h.tickErrors, 1)
		if IsFatal(err) {
			return err
		}
	}
	return nil
}

// Stats returns the tick count, rows written and failed ticks.
func (h *HostController) Stats() (ticks, rows, tickErrors uint64) {
	return atomic.LoadUint64(&h.ticks),
		h.sampler.Session().RowsWritten(),
		atomic.LoadUint64(&h.tickErrors)
}

// LogStats prints the current counters.
func (h *HostController) LogStats() {
	ticks, rows, errs := h.Stats()
	utils.L().Info("  ticks=%d  rows=%d  tick_errors=%d", ticks, rows, errs)
}
