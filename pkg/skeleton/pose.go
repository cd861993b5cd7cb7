package skeleton

// Standing returns a fixed, fully tracked upright pose about two meters in
// front of the sensor, arms relaxed. It is useful as a reference frame.
func Standing() Skeleton {
	const z = 2.0
	s := Skeleton{}
	add := func(t JointType, x, y float64) {
		s.Set(Joint{Type: t, Position: Point{X: x, Y: y, Z: z}, State: Tracked})
	}
	add(Head, 0, 0.55)
	add(Neck, 0, 0.42)
	add(SpineShoulder, 0, 0.38)
	add(SpineMid, 0, 0.12)
	add(SpineBase, 0, -0.12)

	for _, side := range []struct {
		sign                                        float64
		shoulder, elbow, wrist, hand                JointType
		hip, knee, ankle, foot, handTip, thumbJoint JointType
	}{
		{-1, ShoulderLeft, ElbowLeft, WristLeft, HandLeft, HipLeft, KneeLeft, AnkleLeft, FootLeft, HandTipLeft, ThumbLeft},
		{1, ShoulderRight, ElbowRight, WristRight, HandRight, HipRight, KneeRight, AnkleRight, FootRight, HandTipRight, ThumbRight},
	} {
		add(side.shoulder, side.sign*0.18, 0.36)
		add(side.elbow, side.sign*0.32, 0.15)
		add(side.wrist, side.sign*0.40, -0.05)
		add(side.hand, side.sign*0.42, -0.12)
		add(side.handTip, side.sign*0.43, -0.18)
		add(side.thumbJoint, side.sign*0.39, -0.12)
		add(side.hip, side.sign*0.09, -0.16)
		add(side.knee, side.sign*0.11, -0.50)
		add(side.ankle, side.sign*0.12, -0.82)
		add(side.foot, side.sign*0.16, -0.88)
	}
	return s
}
