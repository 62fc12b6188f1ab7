// Package commslink tracks host liveness over the master link and the
// master/Bluetooth status values the host pushes, including the
// stale-status timeouts the original firmware applies to both.
package commslink

// MasterStatus mirrors the enum the host writes via the SetMasterStatus
// command (spec command 0x04).
type MasterStatus uint8

const (
	StatusUnknown MasterStatus = iota
	StatusNotConfigured
	StatusConfiguring
	StatusUpdating
	StatusOperational
	StatusControlled
)

// BluetoothStatus mirrors the enum written via SetBluetoothStatus (0x05).
type BluetoothStatus uint8

const (
	BTOff BluetoothStatus = iota
	BTAdvertising
	BTConnected
)

const (
	// consecutiveTimeoutLimit is how many back-to-back rx-timeouts the
	// transport can report before liveness raises link loss.
	consecutiveTimeoutLimit = 4

	// bluetoothStaleTicks is how many scheduler ticks a Bluetooth status
	// value is trusted before reverting to BTOff-equivalent "unknown".
	bluetoothStaleTicks = 5000 // 5s at a 1ms tick

	// masterStatusStaleTicks bounds how long a master status value is
	// trusted without a refresh before it reverts to StatusUnknown.
	masterStatusStaleTicks = 5000

	startupGraceTicks = 10000 // expected boot-to-first-command window
	updateGraceTicks  = 30000 // expected firmware-update window
)

// Liveness tracks consecutive master-link rx-timeouts and raises a single
// edge-triggered link-loss event after four in a row, matching spec.md's
// comms-observer policy.
type Liveness struct {
	consecutive int
	lost        bool
}

// OnTimeout is called once per rx-timeout reported by the transport.
// It returns true exactly once, on the tick where the run reaches the
// consecutive-timeout limit.
func (l *Liveness) OnTimeout() (justLost bool) {
	l.consecutive++
	if l.consecutive >= consecutiveTimeoutLimit && !l.lost {
		l.lost = true
		return true
	}
	return false
}

// OnFrameReceived clears the consecutive-timeout run and the link-loss
// latch; any received frame is proof the host is alive.
func (l *Liveness) OnFrameReceived() {
	l.consecutive = 0
	l.lost = false
}

// Lost reports whether link loss has been latched since the last
// OnFrameReceived.
func (l *Liveness) Lost() bool { return l.lost }

// startupPhase distinguishes "host hasn't spoken yet, but is still within
// its expected startup/update window" from a genuinely dead host.
type startupPhase uint8

const (
	phaseStartup startupPhase = iota
	phaseUpdate
	phaseSteady
)

// Observer tracks the host-pushed master/Bluetooth status along with the
// startup-time and update-time countdowns and the staleness timeouts the
// original firmware applies to both status values.
type Observer struct {
	liveness Liveness

	master        MasterStatus
	masterAge     int
	masterHaveSet bool

	bluetooth    BluetoothStatus
	bluetoothAge int

	phase        startupPhase
	phaseTicksLeft int
}

// NewObserver starts in the startup grace window: the host hasn't spoken
// yet, but this isn't treated as link loss until the window elapses.
func NewObserver() *Observer {
	return &Observer{phase: phaseStartup, phaseTicksLeft: startupGraceTicks}
}

// SetMasterStatus records a host-pushed master status (command 0x04).
func (o *Observer) SetMasterStatus(s MasterStatus) {
	o.master = s
	o.masterAge = 0
	o.masterHaveSet = true
	o.liveness.OnFrameReceived()
	if s == StatusUpdating {
		o.phase = phaseUpdate
		o.phaseTicksLeft = updateGraceTicks
	} else {
		o.phase = phaseSteady
	}
}

// MasterStatus returns the last pushed master status, or StatusUnknown if
// none was ever set or the value has gone stale.
func (o *Observer) MasterStatus() MasterStatus {
	if !o.masterHaveSet || o.masterAge >= masterStatusStaleTicks {
		return StatusUnknown
	}
	return o.master
}

// SetBluetoothStatus records a host-pushed Bluetooth status (command 0x05).
func (o *Observer) SetBluetoothStatus(s BluetoothStatus) {
	o.bluetooth = s
	o.bluetoothAge = 0
}

// BluetoothStatus returns the last pushed value, reverting to BTOff once
// it has gone stale (the original's BluetoothStatusObserver timeout).
func (o *Observer) BluetoothStatus() BluetoothStatus {
	if o.bluetoothAge >= bluetoothStaleTicks {
		return BTOff
	}
	return o.bluetooth
}

// OnFrameReceived should be called whenever the transport delivers a
// frame, independent of which command it carried.
func (o *Observer) OnFrameReceived() {
	o.liveness.OnFrameReceived()
	if o.phase != phaseSteady {
		o.phase = phaseSteady
	}
}

// OnRxTimeout should be called once per tick the transport reports a
// timeout. It returns true exactly once, when the link should be
// considered lost due to repeated timeouts (outside the startup/update
// grace window, which tolerates silence).
func (o *Observer) OnRxTimeout() (linkLost bool) {
	if o.phase != phaseSteady {
		o.phaseTicksLeft--
		if o.phaseTicksLeft <= 0 {
			o.phase = phaseSteady
		}
		return false
	}
	return o.liveness.OnTimeout()
}

// Tick ages the status values by one scheduler tick; call once per 1ms
// tick (or once per whatever period the caller polls at, adjusting the
// stale-tick constants accordingly).
func (o *Observer) Tick() {
	if o.masterAge < masterStatusStaleTicks {
		o.masterAge++
	}
	if o.bluetoothAge < bluetoothStaleTicks {
		o.bluetoothAge++
	}
}

// Starting reports whether the observer is still inside its startup or
// update grace window (host silence here is expected, not a fault).
func (o *Observer) Starting() bool { return o.phase != phaseSteady }
