package battery

import "robotfw/drivers/ltc4015"

// ChargerPhase is the charger state machine's externally visible state.
type ChargerPhase uint8

const (
	NotPluggedIn ChargerPhase = iota
	Charging
	Charged
	Fault
)

// ChargerObserver derives a ChargerPhase from the ltc4015 charger chip's
// state/status registers each tick, matching the original two-open-drain-
// pin state machine's shape (NotPluggedIn <-> Charging <-> Charged, with
// Fault as a sink) but built on the richer register telemetry the adapted
// driver already exposes.
type ChargerObserver struct {
	dev   *ltc4015.Device
	phase ChargerPhase
}

// NewChargerObserver binds an observer to dev.
func NewChargerObserver(dev *ltc4015.Device) *ChargerObserver {
	return &ChargerObserver{dev: dev}
}

// faultMask is the set of ChargerState fault bits that sink the state
// machine into Fault regardless of current phase.
const faultMask = ltc4015.StMaxChargeTimeFault | ltc4015.StBatMissingFault | ltc4015.StBatShortFault

// Update polls the charger chip and advances the phase. Errors reading the
// chip are treated as NotPluggedIn (consistent with an absent/unpowered
// charger) rather than surfaced, since this observer's only output is the
// coarse phase.
func (c *ChargerObserver) Update() ChargerPhase {
	state, err := c.dev.ChargerState()
	if err != nil {
		c.phase = NotPluggedIn
		return c.phase
	}

	sys, err := c.dev.SystemStatus()
	if err != nil {
		c.phase = NotPluggedIn
		return c.phase
	}

	switch {
	case state&faultMask != 0:
		c.phase = Fault
	case sys&ltc4015.SysOkToCharge == 0:
		c.phase = NotPluggedIn
	case state&ltc4015.StTimerTerm != 0 || state&ltc4015.StCOverXTerm != 0:
		c.phase = Charged
	case state&(ltc4015.StPrecharge|ltc4015.StCcCvCharge|ltc4015.StAbsorbCharge|ltc4015.StEqualizeCharge) != 0:
		c.phase = Charging
	default:
		c.phase = NotPluggedIn
	}

	return c.phase
}

// Phase returns the last computed phase without re-polling.
func (c *ChargerObserver) Phase() ChargerPhase { return c.phase }
