package skeleton

// Group orders segments within a frame: torso bones are drawn before limbs.
type Group int

const (
	Torso Group = iota
	Limb
)

func (g Group) String() string {
	if g == Limb {
		return "limb"
	}
	return "torso"
}

// Segment is one bone in the static body table. WidthFrom and WidthTo are
// the bone thickness in grid cells at each end; they differ for tapered
// bones. Round requests circular caps at both endpoints.
type Segment struct {
	From, To  JointType
	WidthFrom int
	WidthTo   int
	Round     bool
	Group     Group
}

// Tapered reports whether the two ends have different widths.
func (s Segment) Tapered() bool {
	return s.WidthFrom != s.WidthTo
}

func bone(from, to JointType, width int, g Group) Segment {
	return Segment{From: from, To: to, WidthFrom: width, WidthTo: width, Group: g}
}

func limb(from, to JointType, wFrom, wTo int) Segment {
	return Segment{From: from, To: to, WidthFrom: wFrom, WidthTo: wTo, Round: true, Group: Limb}
}

// DefaultSegments returns the body table used by the traffic light: a wide
// chest tapering into the hip, thin shoulders, and round-capped limbs.
// The returned slice is a fresh copy.
func DefaultSegments() []Segment {
	return []Segment{
		// Torso
		{From: SpineShoulder, To: SpineMid, WidthFrom: 8, WidthTo: 6, Group: Torso},
		bone(SpineMid, SpineBase, 6, Torso),
		bone(SpineShoulder, ShoulderLeft, 2, Torso),
		bone(SpineShoulder, ShoulderRight, 2, Torso),
		bone(SpineBase, HipLeft, 2, Torso),
		bone(SpineBase, HipRight, 2, Torso),

		// Right arm
		limb(ShoulderRight, ElbowRight, 2, 2),
		limb(ElbowRight, WristRight, 2, 2),
		limb(WristRight, HandRight, 2, 2),

		// Left arm
		limb(ShoulderLeft, ElbowLeft, 2, 2),
		limb(ElbowLeft, WristLeft, 2, 2),
		limb(WristLeft, HandLeft, 2, 2),

		// Right leg
		limb(HipRight, KneeRight, 3, 2),
		limb(KneeRight, AnkleRight, 2, 2),
		limb(AnkleRight, FootRight, 2, 2),

		// Left leg
		limb(HipLeft, KneeLeft, 3, 2),
		limb(KneeLeft, AnkleLeft, 2, 2),
		limb(AnkleLeft, FootLeft, 2, 2),
	}
}

// HeadShape describes the circle drawn for the head.
type HeadShape struct {
	Joint  JointType
	Radius int
}

// DefaultHead is a radius-4 circle at the Head joint.
func DefaultHead() HeadShape {
	return HeadShape{Joint: Head, Radius: 4}
}
