package imu

import "robotfw/queue"

// OrientationFilter is the injected sensor-fusion step (e.g. a Madgwick
// filter). This package owns only the pipeline feeding it and the Euler
// conversion/yaw-unwrap bookkeeping around its output; the filter's
// internal math is an external collaborator.
type OrientationFilter interface {
	// Step advances the filter by one paired gyro/accel sample and returns
	// the updated orientation quaternion.
	Step(gyro, accel Vector3D) Quaternion
	Reset()
}

// Estimator consumes the compensated-gyro queue and the accelerometer
// queue (both cap 32) in lockstep, runs one filter step per paired sample,
// and tracks yaw unwrap across the +-180 degree boundary so the reported
// heading keeps counting past +-180 degrees rather than wrapping.
type Estimator struct {
	filter OrientationFilter

	quat Quaternion

	turns   int
	lastYaw float32
}

// NewEstimator binds filter and starts at the identity quaternion.
func NewEstimator(filter OrientationFilter) *Estimator {
	return &Estimator{filter: filter, quat: IdentityQuaternion}
}

// Reset zeroes turn count and last-yaw tracking and asks the filter to
// reset its own internal state.
func (e *Estimator) Reset() {
	e.turns = 0
	e.lastYaw = 0
	e.quat = IdentityQuaternion
	if e.filter != nil {
		e.filter.Reset()
	}
}

// Consume drains paired samples from gyro and accel for as long as both
// have data, running the filter and updating the unwrapped heading for each
// pair. It
// returns the number of paired steps it ran.
func (e *Estimator) Consume(gyro, accel *queue.Queue[Vector3D]) int {
	steps := 0
	for gyro.Count() > 0 && accel.Count() > 0 {
		g, gRes := gyro.Read()
		a, aRes := accel.Read()
		if gRes == queue.Empty || aRes == queue.Empty {
			break
		}
		e.quat = e.filter.Step(g, a)
		e.trackYaw(quaternionToOrientation(e.quat).Yaw)
		steps++
	}
	return steps
}

// trackYaw accumulates full turns so Heading() can report a signed value
// that grows past +-360 degrees instead of wrapping at the +-180 boundary.
func (e *Estimator) trackYaw(yaw float32) {
	delta := yaw - e.lastYaw
	switch {
	case delta > 180:
		e.turns--
	case delta < -180:
		e.turns++
	}
	e.lastYaw = yaw
}

// Heading returns the unwrapped yaw in degrees.
func (e *Estimator) Heading() float32 {
	return e.lastYaw + float32(e.turns)*360
}

// Orientation returns the current quaternion's Euler projection.
func (e *Estimator) Orientation() Orientation3D { return quaternionToOrientation(e.quat) }

// Quat returns the current orientation quaternion.
func (e *Estimator) Quat() Quaternion { return e.quat }
