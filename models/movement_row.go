package models

// MovementRow is one sample of the whole rig. The logger writes one of
// these per due tick.
type MovementRow struct {
	Frame int64   `json:"frame"`
	Time  float64 `json:"time"` // seconds since session start
	Poses [3]Pose `json:"poses"`
}

var _ CSVRowWriter = (*MovementRow)(nil)

// FieldCount is the number of columns in every movement log row.
const FieldCount = 2 + len(BodyNames)*len(AxisNames)

// CSVHeader returns Frame, Time and then X..Roll for each body in order.
func (MovementRow) CSVHeader() []string {
	h := make([]string, 0, FieldCount)
	h = append(h, "Frame", "Time")
	for _, body := range BodyNames {
		for _, axis := range AxisNames {
			h = append(h, body+axis)
		}
	}
	return h
}

// CSVRow serialises the sample. Time keeps two decimals; pose values keep
// full float32 precision.
func (m *MovementRow) CSVRow() []string {
	row := make([]string, 0, FieldCount)
	row = append(row, itoa64(m.Frame), ftoa(m.Time, 2))
	for _, p := range m.Poses {
		row = append(row,
			ftoa32(p.Position.X), ftoa32(p.Position.Y), ftoa32(p.Position.Z),
			ftoa32(p.Rotation.X), ftoa32(p.Rotation.Y), ftoa32(p.Rotation.Z))
	}
	return row
}
