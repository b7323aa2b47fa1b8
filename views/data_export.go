package views

import (
	"encoding/csv"
	"fmt"
	"os"
	"sync"
)

// CSVWriter appends rows to a movement log.
//
// Each row is written with its own open-append-close cycle. Appends never
// create the file: a log deleted mid-session makes WriteRow fail.
type CSVWriter struct {
	mu   sync.Mutex
	path string
	rows uint64
}

// NewCSVWriter creates (or truncates) path and writes the header row.
func NewCSVWriter(path string, header []string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv create %s: %w", path, err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("csv write header: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return nil, fmt.Errorf("csv write header: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("csv close %s: %w", path, err)
	}

	return &CSVWriter{path: path}, nil
}

// OpenCSVWriter returns a writer for an existing log without touching its
// content.
func OpenCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// WriteRow appends a single CSV row. Thread-safe.
func (w *CSVWriter) WriteRow(row []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(w.path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return fmt.Errorf("csv open %s: %w", w.path, err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(row); err != nil {
		f.Close()
		return fmt.Errorf("csv append %s: %w", w.path, err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return fmt.Errorf("csv append %s: %w", w.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("csv close %s: %w", w.path, err)
	}

	w.rows++
	return nil
}

// Path returns the log file location.
func (w *CSVWriter) Path() string {
	return w.path
}

// Rows returns the number of data rows written (excludes header).
func (w *CSVWriter) Rows() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rows
}
