// Package watchdog feeds the hardware watchdog on a fixed schedule and
// manages deliberate reboots (optionally into the bootloader), deferring
// the actual reset until the in-flight response has finished transmitting.
package watchdog

import "robotfw/asyncop"

// HW is the narrow hardware boundary: kicking the watchdog timer and
// performing the actual MCU reset are platform-specific and stay outside
// this package.
type HW interface {
	// Feed kicks the hardware watchdog so it doesn't expire.
	Feed()
	// WriteBootloaderMarker writes the four retained-memory registers the
	// ROM bootloader checks for "boot to bootloader" (each set to
	// 0xFFFFFFFF). A cold boot that isn't a bootloader request leaves them
	// untouched.
	WriteBootloaderMarker()
	// Reset performs the actual MCU reset. It does not return.
	Reset()
}

// StartupReason is read once at boot from the reset-controller (plus the
// retained-memory bootloader markers) and exposed to the rest of the
// runtime as a single value.
type StartupReason uint8

const (
	ReasonPowerUp StartupReason = iota
	ReasonWatchdog
	ReasonBrownOut
	ReasonBootloaderRequest
)

// Feeder kicks the watchdog from a scheduler task; it must be registered
// at a period comfortably inside the hardware watchdog's timeout.
type Feeder struct {
	hw HW
}

func NewFeeder(hw HW) *Feeder { return &Feeder{hw: hw} }

// Tick feeds the watchdog. Call once per scheduler period.
func (f *Feeder) Tick() { f.hw.Feed() }

// RebootArgs selects a plain reset or a reset into the bootloader.
type RebootArgs struct {
	ToBootloader bool
}

// RebootManager exposes a deliberate reboot as an async op so the command
// table can drive it through the normal Start/GetResult lifecycle: Start
// is accepted immediately, but the worker waits for TxDone before
// actually resetting, so the host's response isn't cut off mid-transfer.
type RebootManager struct {
	hw     HW
	op     asyncop.Op[RebootArgs, struct{}]
	txDone func() bool
}

// NewRebootManager binds hw and a txDone predicate the worker polls to
// learn that the pending protocol response has finished transmitting.
func NewRebootManager(hw HW, txDone func() bool) *RebootManager {
	return &RebootManager{hw: hw, txDone: txDone}
}

// RequestReboot starts the async reboot op; returns false if one is
// already pending.
func (r *RebootManager) RequestReboot(args RebootArgs) bool {
	return r.op.TryStart(args)
}

// Update drives the pending reboot, if any. Call every tick from the
// scheduler; once the in-flight response has finished transmitting it
// writes the bootloader marker (if requested) and resets — this call
// does not return when it actually fires the reset.
func (r *RebootManager) Update() {
	r.op.Update(func(args RebootArgs, canceled bool) (done bool, _ struct{}) {
		if canceled {
			return true, struct{}{}
		}
		if !r.txDone() {
			return false, struct{}{}
		}
		if args.ToBootloader {
			r.hw.WriteBootloaderMarker()
		}
		r.hw.Reset()
		return true, struct{}{}
	})
}

// Pending reports whether a reboot is queued and waiting on TX-complete.
func (r *RebootManager) Pending() bool { return r.op.Pending() }

// Cancel aborts a pending reboot that hasn't fired yet.
func (r *RebootManager) Cancel() { r.op.RequestCancel() }
