// Package battery implements the battery and charger observer (C11): a
// bias-corrected EMA voltage filter, level mapping, low-battery hysteresis,
// and a charger state machine, built on the adapted ltc4015 driver for the
// charger chip's telemetry and status pins.
package battery

// emaAlpha is the exponential-moving-average coefficient applied every
// 100ms tick.
const emaAlpha = 0.9

// EMA is a bias-corrected exponential moving average: the usual
// filtered = alpha*filtered + (1-alpha)*sample is scaled by
// 1/(1-alpha^n) so the estimate isn't biased toward the zero starting
// value during the first few samples.
type EMA struct {
	value float32
	n     int
}

// biasCorrectionSamples bounds how many terms the bias correction factors
// in; alpha^n is negligible well before this, so capping n keeps Update
// O(1) instead of growing with uptime.
const biasCorrectionSamples = 64

// Update feeds one sample and returns the bias-corrected filtered value.
func (e *EMA) Update(sample float32) float32 {
	e.value = emaAlpha*e.value + (1-emaAlpha)*sample
	if e.n < biasCorrectionSamples {
		e.n++
	}
	correction := 1 - powf(emaAlpha, e.n)
	if correction <= 0 {
		return e.value
	}
	return e.value / correction
}

// powf is integer-exponent float32 power, avoiding a math.Pow float64
// round trip on the hot path for a small bounded exponent.
func powf(base float32, exp int) float32 {
	result := float32(1)
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}
