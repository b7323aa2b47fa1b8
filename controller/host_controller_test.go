package controller

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/virtual-embodiment-lab/obe-new/models"
)

type recordingAdvancer struct {
	mu    sync.Mutex
	times []float64
}

func (r *recordingAdvancer) Advance(t float64) {
	r.mu.Lock()
	r.times = append(r.times, t)
	r.mu.Unlock()
}

func TestHostControllerRun(t *testing.T) {
	sess := newTestSession(t, 60)
	adv := &recordingAdvancer{}
	host := NewHostController(HostConfig{FixedHz: 200}, NewSampler(sess, testRig()), adv)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	if err := host.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	ticks, rows, errs := host.Stats()
	if ticks < 2 {
		t.Errorf("ticks = %d, want at least 2", ticks)
	}
	if rows == 0 || rows > ticks {
		t.Errorf("rows = %d, want between 1 and %d", rows, ticks)
	}
	if errs != 0 {
		t.Errorf("tick errors = %d, want 0", errs)
	}

	adv.mu.Lock()
	defer adv.mu.Unlock()
	if uint64(len(adv.times)) != ticks {
		t.Errorf("Advance called %d times, want %d", len(adv.times), ticks)
	}
	for i := 1; i < len(adv.times); i++ {
		if adv.times[i] < adv.times[i-1] {
			t.Fatalf("time went backwards: %v then %v", adv.times[i-1], adv.times[i])
		}
	}
}

func TestHostControllerKeepsRunningOnMissingReference(t *testing.T) {
	sess := newTestSession(t, 60)
	rig := testRig()
	rig.RightHand = (*models.StaticBody)(nil)
	host := NewHostController(HostConfig{FixedHz: 200}, NewSampler(sess, rig), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := host.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	ticks, rows, errs := host.Stats()
	if rows != 0 {
		t.Errorf("rows = %d, want 0", rows)
	}
	if errs != ticks {
		t.Errorf("tick errors = %d, want one per tick (%d)", errs, ticks)
	}
}
