package controller

import (
	"errors"
	"math"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/virtual-embodiment-lab/obe-new/models"
	"github.com/virtual-embodiment-lab/obe-new/views"
)

func posInf() float64 { return math.Inf(1) }

func testRig() models.Rig {
	return models.Rig{
		Head:      &models.StaticBody{Pose: models.Pose{Position: models.Vec3{X: 0, Y: 1.7, Z: 0}, Rotation: models.Vec3{X: 350, Y: 12.5, Z: 0}}},
		LeftHand:  &models.StaticBody{Pose: models.Pose{Position: models.Vec3{X: -0.2, Y: 1.2, Z: 0.3}}},
		RightHand: &models.StaticBody{Pose: models.Pose{Position: models.Vec3{X: 0.2, Y: 1.2, Z: 0.3}, Rotation: models.Vec3{X: 0, Y: 0, Z: 90}}},
	}
}

func newTestSession(t *testing.T, logHz float64) *Session {
	t.Helper()
	sess, err := InitializeSession(SessionConfig{
		Name:       "Test",
		OutputRoot: t.TempDir(),
		TimeZone:   "UTC",
		LogHz:      logHz,
		Now:        fixedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	})
	if err != nil {
		t.Fatalf("InitializeSession() error = %v", err)
	}
	return sess
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
}

func TestSamplerSkipsTicksBeforeDue(t *testing.T) {
	sess := newTestSession(t, 60)
	s := NewSampler(sess, testRig())

	ticks := []struct {
		time  float64
		frame int64
	}{{0.0, 0}, {0.016, 1}, {0.033, 2}}
	for _, tk := range ticks {
		if err := s.OnTick(tk.time, tk.frame); err != nil {
			t.Fatalf("OnTick(%v, %d) error = %v", tk.time, tk.frame, err)
		}
	}

	want := []string{
		views.HeaderLine,
		"0,0.00,0,1.7,0,350,12.5,0,-0.2,1.2,0.3,0,0,0,0.2,1.2,0.3,0,0,90",
		"2,0.03,0,1.7,0,350,12.5,0,-0.2,1.2,0.3,0,0,0,0.2,1.2,0.3,0,0,90",
	}
	if diff := cmp.Diff(want, readLines(t, sess.FilePath)); diff != "" {
		t.Errorf("log mismatch (-want +got):\n%s", diff)
	}
	if sess.RowsWritten() != 2 {
		t.Errorf("RowsWritten() = %d, want 2", sess.RowsWritten())
	}
	if got, want := sess.NextLogTime(), 2.0/60; math.Abs(got-want) > 1e-12 {
		t.Errorf("NextLogTime() = %v, want %v", got, want)
	}
}

func TestSamplerCadence(t *testing.T) {
	const hz = 60.0
	sess := newTestSession(t, hz)
	s := NewSampler(sess, testRig())

	// 1 kHz ticks for two seconds.
	for i := 0; i <= 2000; i++ {
		if err := s.OnTick(float64(i)/1000, int64(i)); err != nil {
			t.Fatal(err)
		}
	}

	want := math.Floor(2 * hz)
	if got := float64(sess.RowsWritten()); math.Abs(got-want) > 1 {
		t.Errorf("RowsWritten() = %v, want %v ± 1", got, want)
	}

	report, err := views.CheckLog(sess.FilePath)
	if err != nil {
		t.Fatal(err)
	}
	if !report.OK() {
		t.Errorf("CheckLog() problems = %+v", report.Problems)
	}
}

func TestSamplerNoBackfill(t *testing.T) {
	sess := newTestSession(t, 60)
	s := NewSampler(sess, testRig())

	if err := s.OnTick(0, 0); err != nil {
		t.Fatal(err)
	}
	// A one second stall covers ~60 due instants.
	if err := s.OnTick(1.0, 1); err != nil {
		t.Fatal(err)
	}

	if sess.RowsWritten() != 2 {
		t.Errorf("RowsWritten() = %d, want 2", sess.RowsWritten())
	}
	if got, want := sess.NextLogTime(), 2.0/60; math.Abs(got-want) > 1e-12 {
		t.Errorf("NextLogTime() = %v, want %v", got, want)
	}
}

func TestSamplerMissingReference(t *testing.T) {
	sess := newTestSession(t, 60)
	rig := testRig()
	rig.LeftHand = nil
	s := NewSampler(sess, rig)

	for i := 0; i < 10; i++ {
		err := s.OnTick(float64(i)/50, int64(i))

		var refErr *MissingReferenceError
		if !errors.As(err, &refErr) {
			t.Fatalf("OnTick() error = %v, want *MissingReferenceError", err)
		}
		if diff := cmp.Diff([]string{models.BodyLHand}, refErr.Bodies); diff != "" {
			t.Errorf("Bodies mismatch (-want +got):\n%s", diff)
		}
		if IsFatal(err) {
			t.Error("IsFatal() = true for a missing reference")
		}
	}

	if lines := readLines(t, sess.FilePath); len(lines) != 1 {
		t.Errorf("log has %d lines, want header only", len(lines))
	}
	if sess.NextLogTime() != 0 {
		t.Errorf("NextLogTime() = %v, want 0", sess.NextLogTime())
	}
}

func TestSamplerAppendFailure(t *testing.T) {
	sess := newTestSession(t, 60)
	s := NewSampler(sess, testRig())

	if err := os.Remove(sess.FilePath); err != nil {
		t.Fatal(err)
	}

	err := s.OnTick(0, 0)
	var ioErr *IOError
	if !errors.As(err, &ioErr) || ioErr.Op != "append" {
		t.Fatalf("OnTick() error = %v, want append *IOError", err)
	}
	if IsFatal(err) {
		t.Error("IsFatal() = true for an append failure")
	}
	if got, want := sess.NextLogTime(), 1.0/60; math.Abs(got-want) > 1e-12 {
		t.Errorf("NextLogTime() = %v, want %v after failed append", got, want)
	}

	// Not due yet: no further attempt this tick.
	if err := s.OnTick(0.01, 1); err != nil {
		t.Errorf("OnTick() before due error = %v, want nil", err)
	}
	if _, err := os.Stat(sess.FilePath); !os.IsNotExist(err) {
		t.Error("append recreated the deleted log")
	}
}
