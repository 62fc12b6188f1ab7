package motor

import "robotfw/port"

// presenceState drives the non-blocking motor presence probe: apply a small
// PWM and look for a persistent ADC-current rise within a bounded window.
type presenceState struct {
	probing      bool
	ticks        int
	baseline     uint8
	sawRiseTicks int
}

const (
	presenceWindowTicks    = 50 // bounded probe window
	presenceRiseDelta      = 12
	presenceSustainTicks   = 5
	presenceProbeDuty      = 40
)

// Driver implements port.Driver for a single DRV8833 H-bridge channel.
type Driver struct {
	Deratingparams DeratingParams
	Thermalparams  ThermalParams

	request DriveRequest
	thermal *ThermalModel

	lastDuty   int16
	lastResult DeratingResult

	measuredCurrent float32
	measuredSpeed   float32
	measuredPos     int32
	adcRaw          uint8

	presence presenceState
}

// New returns a motor driver configured with the given derating and
// thermal parameters.
func New(derate DeratingParams, thermal ThermalParams) *Driver {
	return &Driver{
		Deratingparams: derate,
		Thermalparams:  thermal,
		thermal:        NewThermalModel(thermal),
	}
}

// SetRequest stores the host's latest drive request.
func (d *Driver) SetRequest(req DriveRequest) { d.request = req }

// Status returns the fields published into the port's status slot.
func (d *Driver) Status() (ackVersion uint8, duty int16, relativeCurrent, maxPowerRatio float32, temp float32) {
	return d.request.Version, d.lastDuty, d.lastResult.RelativeMotorCurrent, d.lastResult.MaxPowerRatio, d.thermal.Temp
}

func (d *Driver) Init(p *port.Port)                     {}
func (d *Driver) DeInit(p *port.Port, done func())      { done() }
func (d *Driver) UpdateConfiguration(p *port.Port, cfg []byte) {}
func (d *Driver) InterruptHandler(p *port.Port, gpioLevel bool) {}
func (d *Driver) ReadSensorInfo(p *port.Port, page uint8, buf []byte) int { return 0 }

// UpdateAnalogData feeds one ADC sample, synchronized to the PWM switching
// phase by the caller (the event-system channel that ties ADC conversion to
// PWM edges lives in the glue package; this driver only consumes the
// resulting sample).
func (d *Driver) UpdateAnalogData(p *port.Port, adc uint8) {
	d.adcRaw = adc
	d.measuredCurrent = float32(adc) * currentPerADCCount
}

const currentPerADCCount = 0.02 // amps per ADC count, fixed by the current-sense divider

// Update runs one control tick: compute the pre-derating control value,
// derate it against current and thermal limits, record the derated duty for
// Status, and integrate the thermal model. It does not write to any pin.
func (d *Driver) Update(p *port.Port) {
	control := controlValue(d.request, d.measuredSpeed, d.measuredPos)

	maxCurrent := float32(d.request.PowerLimit) * currentPerADCCount
	result := Derate(d.Deratingparams, control, maxCurrent, d.measuredCurrent, d.thermal.Temp)

	d.lastResult = result
	d.lastDuty = result.DeratedControl
	d.thermal.Step(d.measuredCurrent)
}

// TestPresence applies a small PWM and watches for a sustained current rise
// above baseline+delta within a bounded window. Each call advances the
// probe by one tick; it is driven from the port's periodic slot like
// Update, never from within Update itself, so the two never double-count
// ticks.
func (d *Driver) TestPresence(p *port.Port, status *port.PresenceStatus) bool {
	if !d.presence.probing {
		d.presence = presenceState{probing: true, baseline: d.adcRaw}
		d.lastDuty = presenceProbeDuty
		return false
	}

	d.presence.ticks++
	if int(d.adcRaw) >= int(d.presence.baseline)+presenceRiseDelta {
		d.presence.sawRiseTicks++
	} else {
		d.presence.sawRiseTicks = 0
	}

	switch {
	case d.presence.sawRiseTicks >= presenceSustainTicks:
		*status = port.Present
		d.presence = presenceState{}
		return true
	case d.presence.ticks >= presenceWindowTicks:
		*status = port.NotPresent
		d.presence = presenceState{}
		return true
	default:
		return false
	}
}
