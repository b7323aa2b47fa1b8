package views

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var timeField = regexp.MustCompile(`^-?\d+\.\d{2}$`)

// RowProblem is one violation found in a movement log.
type RowProblem struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// CheckReport summarises a movement log.
type CheckReport struct {
	Path      string       `json:"path"`
	Rows      int          `json:"rows"`
	FirstTime float64      `json:"first_time"`
	LastTime  float64      `json:"last_time"`
	Problems  []RowProblem `json:"problems,omitempty"`
}

// OK reports whether the log satisfied every row and header rule.
func (r *CheckReport) OK() bool { return len(r.Problems) == 0 }

// CheckLog reads a movement log and validates the header and every row.
// It returns an error only when the file cannot be read.
func CheckLog(path string) (*CheckReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	return checkLog(path, f)
}

func checkLog(path string, r io.Reader) (*CheckReport, error) {
	report := &CheckReport{Path: path}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				report.add(pe.Line, pe.Err.Error())
				continue
			}
			return nil, fmt.Errorf("read log: %w", err)
		}

		if line == 1 {
			if got := strings.Join(rec, ","); got != HeaderLine {
				report.add(line, fmt.Sprintf("header mismatch: %q", got))
			}
			continue
		}

		report.Rows++
		if reason := checkRow(rec); reason != "" {
			report.add(line, reason)
			continue
		}

		t, _ := strconv.ParseFloat(rec[1], 64)
		if report.Rows == 1 {
			report.FirstTime = t
		}
		report.LastTime = t
	}

	if line == 0 {
		report.add(1, "empty file")
	}
	return report, nil
}

func checkRow(rec []string) string {
	if len(rec) != len(SchemaColumns) {
		return fmt.Sprintf("%d fields, want %d", len(rec), len(SchemaColumns))
	}
	for i, v := range rec {
		switch KindOf(i) {
		case ColumnFrame:
			if _, err := strconv.ParseUint(v, 10, 64); err != nil {
				return fmt.Sprintf("%s: %q is not a non-negative integer", SchemaColumns[i], v)
			}
		case ColumnTime:
			if !timeField.MatchString(v) {
				return fmt.Sprintf("%s: %q does not have two decimals", SchemaColumns[i], v)
			}
		case ColumnPose:
			if _, err := strconv.ParseFloat(v, 32); err != nil {
				return fmt.Sprintf("%s: %q is not a number", SchemaColumns[i], v)
			}
		}
	}
	return ""
}

func (r *CheckReport) add(line int, reason string) {
	r.Problems = append(r.Problems, RowProblem{Line: line, Reason: reason})
}
