package ingest

import (
	"math"
	"strings"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/virtual-embodiment-lab/obe-new/models"
	"github.com/virtual-embodiment-lab/obe-new/utils"
)

// motion returns a body's position and rotation at time t (seconds).
type motion func(t float64) (mgl32.Vec3, mgl32.Quat)

// SimulatedBody is a TrackedBody driven by the simulated tracker's clock.
type SimulatedBody struct {
	name  string
	move  motion
	pos   mgl32.Vec3
	rot   mgl32.Quat
	reads *uint64
}

func (b *SimulatedBody) Position() models.Vec3 {
	atomic.AddUint64(b.reads, 1)
	return models.Vec3{X: b.pos.X(), Y: b.pos.Y(), Z: b.pos.Z()}
}

func (b *SimulatedBody) EulerAngles() models.Vec3 {
	return EulerAngles(b.rot)
}

// Name returns the body's column prefix.
func (b *SimulatedBody) Name() string { return b.name }

func (b *SimulatedBody) update(t float64) {
	b.pos, b.rot = b.move(t)
}

// SimulatedTracker produces head and hand poses for a seated user looking
// around and moving their hands. Poses are a pure function of the clock
// passed to Advance, so runs are reproducible.
type SimulatedTracker struct {
	cfg    utils.SimulationConfig
	bodies [3]*SimulatedBody
	now    float64
	reads  uint64
}

// NewSimulatedTracker creates the three bodies at t=0.
func NewSimulatedTracker(cfg utils.SimulationConfig) *SimulatedTracker {
	tr := &SimulatedTracker{cfg: cfg}
	moves := [3]motion{headMotion, handMotion(-1), handMotion(1)}
	for i, name := range models.BodyNames {
		tr.bodies[i] = &SimulatedBody{name: name, move: moves[i], reads: &tr.reads}
		tr.bodies[i].update(0)
	}

	utils.L().Info("simulated tracker ready  (drop=%v)", cfg.Drop)
	return tr
}

// Advance moves every body to time t.
func (tr *SimulatedTracker) Advance(t float64) {
	tr.now = t
	for _, b := range tr.bodies {
		b.update(t)
	}
}

// Now returns the time of the last Advance.
func (tr *SimulatedTracker) Now() float64 { return tr.now }

// Reads returns how many samples have been taken from the tracker.
func (tr *SimulatedTracker) Reads() uint64 {
	return atomic.LoadUint64(&tr.reads)
}

// Rig returns the bodies as a rig, leaving any body named in cfg.Drop
// unassigned.
func (tr *SimulatedTracker) Rig() models.Rig {
	pick := func(i int) models.TrackedBody {
		for _, d := range tr.cfg.Drop {
			if strings.EqualFold(d, tr.bodies[i].name) {
				return nil
			}
		}
		return tr.bodies[i]
	}
	return models.Rig{Head: pick(0), LeftHand: pick(1), RightHand: pick(2)}
}

// ─── motions ────────────────────────────────────────────────────────────

func headMotion(t float64) (mgl32.Vec3, mgl32.Quat) {
	pos := mgl32.Vec3{
		f32(0.05 * math.Sin(0.5*t)),
		f32(1.7 + 0.02*math.Sin(2*math.Pi*0.8*t)),
		f32(0.05 * math.Cos(0.5*t)),
	}
	rot := FromEuler(
		f32(10*math.Sin(0.7*t)),
		f32(30*math.Sin(0.3*t)),
		f32(3*math.Sin(1.1*t)),
	)
	return pos, rot
}

// handMotion swings a hand on the given side (-1 left, +1 right).
func handMotion(side float64) motion {
	phase := 0.0
	if side > 0 {
		phase = math.Pi / 2
	}
	return func(t float64) (mgl32.Vec3, mgl32.Quat) {
		a := 1.5*t + phase
		pos := mgl32.Vec3{
			f32(side * (0.25 + 0.05*math.Sin(a))),
			f32(1.2 + 0.1*math.Sin(a)),
			f32(0.3 + 0.15*math.Cos(a)),
		}
		rot := FromEuler(
			f32(40*math.Sin(a)),
			f32(side*20*math.Sin(t+phase)),
			f32(side*10),
		)
		return pos, rot
	}
}

func f32(v float64) float32 { return float32(v) }
