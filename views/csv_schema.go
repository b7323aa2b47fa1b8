package views

import (
	"strings"

	"github.com/virtual-embodiment-lab/obe-new/models"
)

// CSVSchema defines the column layout of a movement log.
// This file serves as the single source of truth for column ordering.

// ColumnKind describes how a column's values are encoded.
type ColumnKind int

const (
	ColumnFrame ColumnKind = iota // non-negative integer
	ColumnTime                    // seconds, exactly two decimals
	ColumnPose                    // decimal float
)

var kindNames = map[ColumnKind]string{
	ColumnFrame: "frame",
	ColumnTime:  "time",
	ColumnPose:  "pose",
}

func (k ColumnKind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// SchemaColumns is the canonical movement log header.
var SchemaColumns = models.MovementRow{}.CSVHeader()

// HeaderLine is the exact first line of every movement log, without the
// trailing newline.
var HeaderLine = strings.Join(SchemaColumns, ",")

// KindOf returns the encoding of the column at index i.
func KindOf(i int) ColumnKind {
	switch i {
	case 0:
		return ColumnFrame
	case 1:
		return ColumnTime
	default:
		return ColumnPose
	}
}
