package controller

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/virtual-embodiment-lab/obe-new/models"
	"github.com/virtual-embodiment-lab/obe-new/utils"
	"github.com/virtual-embodiment-lab/obe-new/views"
)

// LogDirName is the folder created under the output root.
const LogDirName = "OBE_Movement_Logs"

// DefaultLogHz is the sampling rate used when none is configured.
const DefaultLogHz = 60.0

// SessionConfig holds the inputs of InitializeSession.
type SessionConfig struct {
	Name          string
	OutputRoot    string
	TimeZone      string
	LogHz         float64
	NameSeparator string

	// Now is the clock used for the file name timestamp; time.Now if nil.
	Now func() time.Time
}

// Session is one logging run: a header-initialised CSV file plus the
// sampling threshold that advances as rows are written.
type Session struct {
	ID        string
	Name      string
	TimeZone  string
	StartedAt time.Time
	FilePath  string
	LogHz     float64

	writer      *views.CSVWriter
	nextLogTime float64
}

// InitializeSession creates the log directory, derives a timestamped file
// name in the configured zone and writes the header row. Any error it
// returns is fatal to the session.
func InitializeSession(cfg SessionConfig) (*Session, error) {
	logHz := cfg.LogHz
	if math.IsNaN(logHz) || math.IsInf(logHz, 0) {
		return nil, &ConfigurationError{Key: "log_hz", Value: "non-finite", Err: errors.New("sampling rate must be finite")}
	}
	if logHz <= 0 {
		logHz = DefaultLogHz
	}

	dir := filepath.Join(cfg.OutputRoot, LogDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &IOError{Op: "mkdir", Path: dir, Fatal: true, Err: err}
	}

	loc, err := utils.LoadZone(cfg.TimeZone)
	if err != nil {
		return nil, &ConfigurationError{Key: "time_zone", Value: cfg.TimeZone, Err: err}
	}

	now := time.Now
	if cfg.Now != nil {
		now = cfg.Now
	}
	started := now().In(loc)

	path := filepath.Join(dir, utils.SessionFileName(cfg.Name, cfg.NameSeparator, started))
	w, err := views.NewCSVWriter(path, models.MovementRow{}.CSVHeader())
	if err != nil {
		return nil, &IOError{Op: "create", Path: path, Fatal: true, Err: err}
	}

	utils.L().Info("file path set to: %s", path)

	return &Session{
		ID:        uuid.NewString(),
		Name:      cfg.Name,
		TimeZone:  loc.String(),
		StartedAt: started,
		FilePath:  path,
		LogHz:     logHz,
		writer:    w,
	}, nil
}

// Interval is the time between two due samples, in seconds.
func (s *Session) Interval() float64 {
	return 1.0 / s.LogHz
}

// NextLogTime is the earliest tick time at which the next row is due.
func (s *Session) NextLogTime() float64 {
	return s.nextLogTime
}

// RowsWritten returns the number of rows appended so far.
func (s *Session) RowsWritten() uint64 {
	return s.writer.Rows()
}
