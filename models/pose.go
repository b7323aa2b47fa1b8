package models

import "reflect"

// Vec3 is a position or a set of Euler angles as reported by a pose source.
type Vec3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Pose is one body's sampled position and rotation. Rotation holds Euler
// angles in degrees, X/Y/Z read as yaw/pitch/roll.
type Pose struct {
	Position Vec3 `json:"position"`
	Rotation Vec3 `json:"rotation"`
}

// TrackedBody is a live pose source owned by the tracking subsystem.
// Values are read as-is every sample; no smoothing or validation.
type TrackedBody interface {
	Position() Vec3
	EulerAngles() Vec3
}

// Body name prefixes, in logging order.
const (
	BodyHead  = "Head"
	BodyLHand = "LHand"
	BodyRHand = "RHand"
)

var (
	BodyNames = [...]string{BodyHead, BodyLHand, BodyRHand}
	AxisNames = [...]string{"X", "Y", "Z", "Yaw", "Pitch", "Roll"}
)

// Rig holds non-owning references to the three logged bodies.
type Rig struct {
	Head      TrackedBody
	LeftHand  TrackedBody
	RightHand TrackedBody
}

// Bodies returns the rig's bodies in logging order.
func (r Rig) Bodies() [3]TrackedBody {
	return [3]TrackedBody{r.Head, r.LeftHand, r.RightHand}
}

// Missing returns the names of the bodies that are not set. A typed nil
// pointer stored in the interface counts as missing.
func (r Rig) Missing() []string {
	var missing []string
	for i, b := range r.Bodies() {
		if isNil(b) {
			missing = append(missing, BodyNames[i])
		}
	}
	return missing
}

// Sample reads the current pose of each body. Callers check Missing first.
func (r Rig) Sample() [3]Pose {
	var poses [3]Pose
	for i, b := range r.Bodies() {
		poses[i] = Pose{Position: b.Position(), Rotation: b.EulerAngles()}
	}
	return poses
}

func isNil(b TrackedBody) bool {
	if b == nil {
		return true
	}
	v := reflect.ValueOf(b)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// StaticBody is a TrackedBody with a fixed pose.
type StaticBody struct {
	Pose Pose
}

func (s *StaticBody) Position() Vec3    { return s.Pose.Position }
func (s *StaticBody) EulerAngles() Vec3 { return s.Pose.Rotation }
