package imu

import "robotfw/queue"

const (
	idleThresholdDps  = 2.0
	idleSampleStreak  = 200
	ignoreWindowTicks = 200
)

// MovementDetector consumes the raw gyro queue and reports whether the
// robot is currently moving: idle is declared only after idleSampleStreak
// consecutive samples stay within idleThresholdDps of the reference
// reading; any sample outside that band recenters the reference and marks
// moving immediately. A startup ignore window suppresses the verdict while
// the sensor and reference are still settling.
type MovementDetector struct {
	ref        Vector3D
	idleStreak int
	ignored    int
	isMoving   bool
}

// NewMovementDetector starts in the moving state during the ignore window.
func NewMovementDetector() *MovementDetector {
	return &MovementDetector{isMoving: true}
}

func withinBand(v, ref Vector3D, band float32) bool {
	return absf(v.X-ref.X) <= band && absf(v.Y-ref.Y) <= band && absf(v.Z-ref.Z) <= band
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// Consume drains the gyro queue, feeding every sample through the
// detector. Overflowed samples still count as a sample, since they still
// carry real data; only the out-of-band/in-band classification matters.
func (m *MovementDetector) Consume(q *queue.Queue[RawSample]) {
	for {
		raw, res := q.Read()
		if res == queue.Empty {
			return
		}
		m.observe(rawToVector(raw))
	}
}

func (m *MovementDetector) observe(v Vector3D) {
	if m.ignored < ignoreWindowTicks {
		m.ignored++
		m.ref = v
		m.isMoving = true
		return
	}

	if withinBand(v, m.ref, idleThresholdDps) {
		m.idleStreak++
		if m.idleStreak >= idleSampleStreak {
			m.isMoving = false
		}
		return
	}

	m.ref = v
	m.idleStreak = 0
	m.isMoving = true
}

// IsMoving reports the latest verdict.
func (m *MovementDetector) IsMoving() bool { return m.isMoving }
