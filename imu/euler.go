package imu

import "math"

// quaternionToOrientation converts a unit quaternion to roll/pitch/yaw in
// degrees using the standard aerospace (ZYX) Euler sequence.
func quaternionToOrientation(q Quaternion) Orientation3D {
	q0, q1, q2, q3 := float64(q.Q0), float64(q.Q1), float64(q.Q2), float64(q.Q3)

	sinrCosp := 2 * (q0*q1 + q2*q3)
	cosrCosp := 1 - 2*(q1*q1+q2*q2)
	roll := math.Atan2(sinrCosp, cosrCosp)

	sinp := 2 * (q0*q2 - q3*q1)
	var pitch float64
	switch {
	case sinp >= 1:
		pitch = math.Pi / 2
	case sinp <= -1:
		pitch = -math.Pi / 2
	default:
		pitch = math.Asin(sinp)
	}

	sinyCosp := 2 * (q0*q3 + q1*q2)
	cosyCosp := 1 - 2*(q2*q2+q3*q3)
	yaw := math.Atan2(sinyCosp, cosyCosp)

	const rad2deg = 180 / math.Pi
	return Orientation3D{
		Roll:  float32(roll * rad2deg),
		Pitch: float32(pitch * rad2deg),
		Yaw:   float32(yaw * rad2deg),
	}
}
