package ingest

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/virtual-embodiment-lab/obe-new/models"
	"github.com/virtual-embodiment-lab/obe-new/utils"
)

func TestSimulatedTrackerRig(t *testing.T) {
	tests := []struct {
		name        string
		drop        []string
		wantMissing []string
	}{
		{"all bodies", nil, nil},
		{"drop left hand", []string{"LHand"}, []string{models.BodyLHand}},
		{"drop is case insensitive", []string{"head", "rhand"}, []string{models.BodyHead, models.BodyRHand}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewSimulatedTracker(utils.SimulationConfig{Enabled: true, Drop: tt.drop})
			if diff := cmp.Diff(tt.wantMissing, tr.Rig().Missing()); diff != "" {
				t.Errorf("Missing() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSimulatedTrackerDeterministic(t *testing.T) {
	a := NewSimulatedTracker(utils.SimulationConfig{Enabled: true})
	b := NewSimulatedTracker(utils.SimulationConfig{Enabled: true})

	for _, ts := range []float64{0, 0.5, 1.25, 10} {
		a.Advance(ts)
		b.Advance(ts)
		if diff := cmp.Diff(a.Rig().Sample(), b.Rig().Sample()); diff != "" {
			t.Errorf("t=%v: samples differ (-a +b):\n%s", ts, diff)
		}
	}
	if a.Now() != 10 {
		t.Errorf("Now() = %v, want 10", a.Now())
	}
}

func TestSimulatedTrackerMoves(t *testing.T) {
	tr := NewSimulatedTracker(utils.SimulationConfig{Enabled: true})
	rig := tr.Rig()

	before := rig.Sample()
	tr.Advance(1)
	after := rig.Sample()

	for i, name := range models.BodyNames {
		if before[i] == after[i] {
			t.Errorf("%s did not move between t=0 and t=1", name)
		}
	}

	head := after[0]
	if head.Position.Y < 1.6 || head.Position.Y > 1.8 {
		t.Errorf("head height = %v, want around 1.7", head.Position.Y)
	}
	if after[1].Position.X >= 0 || after[2].Position.X <= 0 {
		t.Errorf("hands on wrong side: left=%v right=%v", after[1].Position.X, after[2].Position.X)
	}
	if tr.Reads() != 6 {
		t.Errorf("Reads() = %d, want 6", tr.Reads())
	}
}
