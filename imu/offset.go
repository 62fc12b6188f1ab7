package imu

import "robotfw/queue"

const offsetAverageWindow = 1000

// OffsetCompensator re-consumes the gyro queue through its own cursor
// (a second bounded consumer at cap 8, matching C10's fan-out) and, while
// the robot is idle, accumulates samples toward a bias estimate. Every
// offsetAverageWindow idle samples it recomputes the offset and publishes
// bias-corrected samples downstream.
type OffsetCompensator struct {
	sum   Vector3D
	count int
	offset Vector3D
}

// Consume drains src, subtracts the current offset from each sample, and
// writes the result into dst. While moving==false, samples also feed the
// running average used to refine the offset.
func (o *OffsetCompensator) Consume(src *queue.Queue[RawSample], dst *queue.Queue[Vector3D], moving bool) {
	for {
		raw, res := src.Read()
		if res == queue.Empty {
			return
		}
		v := rawToVector(raw)

		if !moving {
			o.sum.X += v.X
			o.sum.Y += v.Y
			o.sum.Z += v.Z
			o.count++
			if o.count >= offsetAverageWindow {
				o.offset = Vector3D{
					X: o.sum.X / offsetAverageWindow,
					Y: o.sum.Y / offsetAverageWindow,
					Z: o.sum.Z / offsetAverageWindow,
				}
				o.sum = Vector3D{}
				o.count = 0
			}
		}

		dst.Write(v.sub(o.offset))
	}
}

// Offset returns the current bias estimate.
func (o *OffsetCompensator) Offset() Vector3D { return o.offset }

// ConvertRaw drains src into dst applying only the unit conversion, with no
// offset compensation. Used for the accelerometer path, which the original
// firmware does not bias-correct (only the gyro has a resting offset worth
// compensating).
func ConvertRaw(src *queue.Queue[RawSample], dst *queue.Queue[Vector3D]) {
	for {
		raw, res := src.Read()
		if res == queue.Empty {
			return
		}
		dst.Write(rawToVector(raw))
	}
}
