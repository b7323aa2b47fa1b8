package controller

import (
	"github.com/virtual-embodiment-lab/obe-new/models"
	"github.com/virtual-embodiment-lab/obe-new/utils"
)

// Sampler is the per-tick half of the movement logger. The host calls
// OnTick once per fixed step; a row is written whenever the session's
// threshold has been reached.
//
// Sampler does no I/O of its own beyond the synchronous append and starts
// no goroutines.
type Sampler struct {
	session *Session
	rig     models.Rig
}

// NewSampler binds a session to the bodies it logs. The rig's bodies are
// borrowed; the sampler never creates or releases them.
func NewSampler(sess *Session, rig models.Rig) *Sampler {
	return &Sampler{session: sess, rig: rig}
}

// Session returns the session the sampler writes to.
func (s *Sampler) Session() *Session {
	return s.session
}

// OnTick samples the rig if a row is due at currentTime. Missed due
// instants are never back-filled: at most one row is written per call and
// the threshold moves by exactly one interval.
//
// The returned errors are non-fatal. A *MissingReferenceError leaves the
// threshold untouched; an *IOError from the append still advances it.
func (s *Sampler) OnTick(currentTime float64, frame int64) error {
	if missing := s.rig.Missing(); len(missing) > 0 {
		err := &MissingReferenceError{Bodies: missing}
		utils.L().Error("%v", err)
		return err
	}

	sess := s.session
	if currentTime < sess.nextLogTime {
		return nil
	}

	row := models.MovementRow{
		Frame: frame,
		Time:  currentTime,
		Poses: s.rig.Sample(),
	}
	err := sess.writer.WriteRow(row.CSVRow())

	sess.nextLogTime += sess.Interval()

	if err != nil {
		ioErr := &IOError{Op: "append", Path: sess.FilePath, Err: err}
		utils.L().Error("%v", ioErr)
		return ioErr
	}
	return nil
}
