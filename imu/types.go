// Package imu implements the IMU pipeline (C10): bounded raw-sample
// queues, a movement detector, a gyro offset compensator, and an
// orientation estimator behind an injected OrientationFilter. The filter
// math itself (Madgwick) is an external collaborator; this package only
// owns the pipeline that feeds it and the bookkeeping around its output.
package imu

// RawSample is one 3-axis integer reading straight from the sensor.
type RawSample struct {
	X, Y, Z int16
}

// Vector3D is a 3-axis floating point reading, used after unit conversion.
type Vector3D struct {
	X, Y, Z float32
}

// Quaternion is a unit orientation quaternion.
type Quaternion struct {
	Q0, Q1, Q2, Q3 float32
}

// IdentityQuaternion is the initial orientation before any filter step.
var IdentityQuaternion = Quaternion{Q0: 1}

// Orientation3D is the Euler-angle projection of a Quaternion.
type Orientation3D struct {
	Pitch, Roll, Yaw float32
}

func (v Vector3D) sub(o Vector3D) Vector3D {
	return Vector3D{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func rawToVector(r RawSample) Vector3D {
	return Vector3D{X: float32(r.X), Y: float32(r.Y), Z: float32(r.Z)}
}
