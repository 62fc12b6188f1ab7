// Package port implements the common port framework shared by motor and
// sensor ports (C9): the driver vtable, the port's lifecycle fields, and
// the SetPortType state machine that swaps a bound driver for another one.
package port

// PresenceStatus is the result of a non-blocking presence probe.
type PresenceStatus uint8

const (
	NotPresent PresenceStatus = iota
	Present
	UnknownPresence
	PresenceError
)

// InterfaceKind is the shared peripheral, if any, a bound driver claims.
type InterfaceKind uint8

const (
	InterfaceNone InterfaceKind = iota
	InterfaceI2C
	InterfaceUART
)

// Driver is the polymorphic capability set every port driver implements.
// None of the methods may block; long operations are modeled as repeated
// Update calls.
type Driver interface {
	Init(p *Port)
	// DeInit releases all I/O asynchronously; done is invoked once the
	// release has completed (it may be called synchronously from within
	// DeInit for drivers with nothing to wait for).
	DeInit(p *Port, done func())
	Update(p *Port)
	UpdateConfiguration(p *Port, cfg []byte)
	UpdateAnalogData(p *Port, adc uint8)
	InterruptHandler(p *Port, gpioLevel bool)
	ReadSensorInfo(p *Port, page uint8, buf []byte) int
	// TestPresence drives a non-blocking probe forward. It returns true
	// once the probe has a verdict, written to *status; false means "call
	// me again next tick".
	TestPresence(p *Port, status *PresenceStatus) bool
}

// SetPortTypeState is the lifecycle of an in-flight driver swap.
type SetPortTypeState uint8

const (
	STNone SetPortTypeState = iota
	STBusy
	STDeinitDone
	STDone
	STError
)

// Port is the shared state every sensor or motor port carries. Private is
// owned by the currently bound driver; it is invalidated across a driver
// swap.
type Port struct {
	Index     int
	Driver    Driver
	Private   any
	Interface InterfaceKind
	Sercom    int // shared peripheral instance index, -1 if none claimed

	setState   SetPortTypeState
	pendingNew Driver
}

// New returns an unbound port at the given index with no driver installed.
func New(index int) *Port {
	return &Port{Index: index, Sercom: -1}
}

// SetTypeState reports the in-flight driver-swap state.
func (p *Port) SetTypeState() SetPortTypeState { return p.setState }

// BeginSetType starts swapping the bound driver for next. It is a no-op
// (returns false) if a swap is already in flight. The outgoing driver's
// DeInit is invoked immediately; its completion callback moves the state
// machine to DeinitDone as soon as it fires, and the next Advance call binds
// the new driver.
func (p *Port) BeginSetType(next Driver) bool {
	if p.setState != STNone {
		return false
	}
	p.pendingNew = next
	p.setState = STBusy

	if p.Driver == nil {
		p.setState = STDeinitDone
		return true
	}
	// The callback may fire synchronously (within this call) or later, from
	// a subsequent Update; either way it transitions the state directly so
	// BeginSetType's caller doesn't need to keep polling a local variable.
	p.Driver.DeInit(p, func() {
		if p.setState == STBusy {
			p.setState = STDeinitDone
		}
	})
	return true
}

// Advance drives the state machine forward by one step. It must be called
// every tick while SetTypeState() != STNone.
func (p *Port) Advance() {
	switch p.setState {
	case STDeinitDone:
		p.Driver = p.pendingNew
		p.pendingNew = nil
		p.Private = nil
		if p.Driver == nil {
			p.setState = STError
			return
		}
		p.Driver.Init(p)
		p.setState = STDone
	case STDone, STError:
		p.setState = STNone
	}
}
