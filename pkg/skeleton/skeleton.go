// Package skeleton defines the per-frame body data consumed by the
// rasterizer: joint identifiers, tracking states, tracked joints and the
// static segment table describing which bones are drawn and how thick.
package skeleton

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownJoint is returned by ParseJointType for unrecognised names.
var ErrUnknownJoint = errors.New("unknown joint")

// JointType identifies an anatomical landmark. Values follow the Kinect v2
// body joint order.
type JointType int

const (
	SpineBase JointType = iota
	SpineMid
	Neck
	Head
	ShoulderLeft
	ElbowLeft
	WristLeft
	HandLeft
	ShoulderRight
	ElbowRight
	WristRight
	HandRight
	HipLeft
	KneeLeft
	AnkleLeft
	FootLeft
	HipRight
	KneeRight
	AnkleRight
	FootRight
	SpineShoulder
	HandTipLeft
	ThumbLeft
	HandTipRight
	ThumbRight

	// JointCount is the number of joint types.
	JointCount = int(ThumbRight) + 1
)

var jointNames = [JointCount]string{
	"SpineBase", "SpineMid", "Neck", "Head",
	"ShoulderLeft", "ElbowLeft", "WristLeft", "HandLeft",
	"ShoulderRight", "ElbowRight", "WristRight", "HandRight",
	"HipLeft", "KneeLeft", "AnkleLeft", "FootLeft",
	"HipRight", "KneeRight", "AnkleRight", "FootRight",
	"SpineShoulder", "HandTipLeft", "ThumbLeft", "HandTipRight", "ThumbRight",
}

func (j JointType) String() string {
	if j < 0 || int(j) >= JointCount {
		return fmt.Sprintf("JointType(%d)", int(j))
	}
	return jointNames[j]
}

// Valid reports whether j is one of the defined joint types.
func (j JointType) Valid() bool {
	return j >= 0 && int(j) < JointCount
}

// ParseJointType resolves a joint name case-insensitively ("spinemid",
// "SpineMid"). Underscores and dashes are ignored.
func ParseJointType(name string) (JointType, error) {
	key := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(name))
	for i, n := range jointNames {
		if strings.ToLower(n) == key {
			return JointType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownJoint, name)
}

// AllJoints returns every joint type in enumeration order.
func AllJoints() []JointType {
	out := make([]JointType, JointCount)
	for i := range out {
		out[i] = JointType(i)
	}
	return out
}

// TrackingState is the sensor's confidence in a joint position.
type TrackingState int

const (
	NotTracked TrackingState = iota
	Inferred
	Tracked
)

func (s TrackingState) String() string {
	switch s {
	case Tracked:
		return "Tracked"
	case Inferred:
		return "Inferred"
	default:
		return "NotTracked"
	}
}

// ParseTrackingState accepts "tracked", "inferred" and "nottracked" (any
// case, underscores or dashes ignored).
func ParseTrackingState(s string) (TrackingState, error) {
	switch strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(s)) {
	case "tracked":
		return Tracked, nil
	case "inferred":
		return Inferred, nil
	case "nottracked", "":
		return NotTracked, nil
	}
	return NotTracked, fmt.Errorf("unknown tracking state %q", s)
}

// Point is a position in sensor (camera) space, in meters. X grows to the
// right, Y grows upward and Z points away from the sensor.
type Point struct {
	X, Y, Z float64
}

// Joint is a single tracked landmark.
type Joint struct {
	Type     JointType
	Position Point
	State    TrackingState
}

// Skeleton maps joint types to their tracked positions for one frame.
// A joint missing from the map counts as NotTracked.
type Skeleton map[JointType]Joint

// Lookup returns the joint for t. Missing joints are reported NotTracked.
func (s Skeleton) Lookup(t JointType) Joint {
	if j, ok := s[t]; ok {
		return j
	}
	return Joint{Type: t, State: NotTracked}
}

// IsTracked reports whether t is present with a state other than NotTracked.
func (s Skeleton) IsTracked(t JointType) bool {
	return s.Lookup(t).State != NotTracked
}

// Set stores a joint under its own type.
func (s Skeleton) Set(j Joint) {
	s[j.Type] = j
}
