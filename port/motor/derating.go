// Package motor implements the motor port driver: request handling,
// DRV8833-style dual H-bridge output, the thermal model and the
// current/thermal derating stage (C9 motor specifics).
package motor

import "robotfw/x/mathx"

// DeratingParams bounds the temperature window derating ramps across.
type DeratingParams struct {
	MaxSafeTemperature    float32 // below this, thermal_factor == 1
	MaxAllowedTemperature float32 // at/above this, thermal_factor == 0
}

// DeratingResult carries the derated control value plus the two
// supplemental telemetry fields the original firmware publishes alongside
// it (not named in the distilled command set, but present on the wire
// status payload as diagnostic percentages).
type DeratingResult struct {
	DeratedControl      int16
	RelativeMotorCurrent float32 // percent of MaxCurrent, 0 if MaxCurrent == 0
	MaxPowerRatio        float32 // min(current_factor, thermal_factor), the factor actually applied
}

// linearMapConstrained maps x from [inLo,inHi] onto [outLo,outHi], clamped
// to the output range; it is the float32 counterpart to mathx.MapU16,
// needed because temperature and current are floating point here.
func linearMapConstrained(x, inLo, inHi, outLo, outHi float32) float32 {
	if inHi == inLo {
		return outLo
	}
	t := (x - inLo) / (inHi - inLo)
	v := outLo + t*(outHi-outLo)
	return mathx.Clamp(v, outLo, outHi)
}

// Derate applies the current-limit and thermal-headroom factors to a
// requested control value, matching the original firmware's
// MotorDerating_Run_OnUpdate exactly:
//
//	current_factor = 1, or maxCurrent/current when current exceeds maxCurrent
//	thermal_factor = linear_map(temp, MaxSafeTemperature, MaxAllowedTemperature, 1, 0), clamped
//	final = control * min(current_factor, thermal_factor)
func Derate(params DeratingParams, control int16, maxCurrent, current, temp float32) DeratingResult {
	currentFactor := float32(1.0)
	relative := float32(0)
	if maxCurrent != 0 {
		if current > maxCurrent {
			currentFactor = maxCurrent / current
		}
		relative = 100 * current / maxCurrent
	}

	thermalFactor := linearMapConstrained(temp, params.MaxSafeTemperature, params.MaxAllowedTemperature, 1, 0)

	ratio := mathx.Min(currentFactor, thermalFactor)
	derated := ratio * float32(control)

	return DeratingResult{
		DeratedControl:       int16(roundHalfAwayFromZero(derated)),
		RelativeMotorCurrent: relative,
		MaxPowerRatio:        ratio,
	}
}

func roundHalfAwayFromZero(v float32) float32 {
	if v >= 0 {
		return float32(int32(v + 0.5))
	}
	return float32(int32(v - 0.5))
}
