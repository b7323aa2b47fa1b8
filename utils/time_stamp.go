package utils

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // zone lookups must not depend on the host's zoneinfo
)

// windowsZones maps the Windows time zone ids the VR builds were configured
// with to their IANA names.
var windowsZones = map[string]string{
	"Eastern Standard Time":  "America/New_York",
	"Central Standard Time":  "America/Chicago",
	"Mountain Standard Time": "America/Denver",
	"Pacific Standard Time":  "America/Los_Angeles",
	"GMT Standard Time":      "Europe/London",
	"UTC":                    "UTC",
}

// LoadZone resolves an IANA or Windows time zone id. It never falls back to
// the host's local zone.
func LoadZone(id string) (*time.Location, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("empty time zone id")
	}
	if iana, ok := windowsZones[id]; ok {
		id = iana
	}
	loc, err := time.LoadLocation(id)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", id, err)
	}
	return loc, nil
}

// FileTimestamp formats t as yyyyMMdd_HHmmssfff (milliseconds, no dot).
func FileTimestamp(t time.Time) string {
	return fmt.Sprintf("%s%03d", t.Format("20060102_150405"), t.Nanosecond()/int(time.Millisecond))
}

// SessionFileName returns the movement log file name:
//
//	<scene><sep>Movement_Log_<yyyyMMdd_HHmmssfff>.csv
//
// sep is normally empty so names match logs recorded by earlier builds.
func SessionFileName(scene, sep string, t time.Time) string {
	return fmt.Sprintf("%s%sMovement_Log_%s.csv", scene, sep, FileTimestamp(t))
}

// SecondsSince returns the elapsed time since start as float seconds, the
// unit the sampling loop works in.
func SecondsSince(start, now time.Time) float64 {
	return now.Sub(start).Seconds()
}
