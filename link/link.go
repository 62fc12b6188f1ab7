// Package link implements the I2C-slave master-link transport: the state
// machine between the hardware address-match/data/stop events and the
// protocol engine (robotfw/protocol). The ISR side calls the On* methods
// with a short critical section (copying at most a few bytes); the
// scheduler side calls Poll once per tick to notice completed frames and
// timeouts.
package link

import "sync"

const (
	headerBytes    = 6
	maxPayload     = 255
	scratchSize    = headerBytes + maxPayload

	// DefaultRxTimeoutTicks is the number of 1ms scheduler ticks allowed to
	// elapse with no frame received before an rx-timeout fires.
	DefaultRxTimeoutTicks = 100
)

// DefaultResponse is served on every address-match-for-transmit until the
// protocol engine has produced a real response, so a host reading faster
// than the MCU can process still sees a syntactically valid frame.
// It is a Pending status with an empty payload: payload CRC-16 0xFFFF and
// header CRC-7 0x73, as protocol.EncodeResponse would produce.
var DefaultResponse = []byte{byte(statusPending), 0, 0xFF, 0xFF, 0x73}

const statusPending = 2 // mirrors protocol.Pending; kept local to avoid an import cycle

// Transport tracks the receive scratch buffer, the double-buffered transmit
// snapshot, and the rx-timeout credit.
type Transport struct {
	mu sync.Mutex

	rxBuf   [scratchSize]byte
	rxLen   int
	rxBusy  bool

	nextTx   []byte
	activeTx []byte
	txPos    int

	ticksSinceRx int
	rxTimeoutAt  int

	frameReady bool
	readyFrame []byte

	txInFlight bool
}

// NewTransport returns a transport with the given rx-timeout expressed in
// 1ms scheduler ticks.
func NewTransport(rxTimeoutTicks int) *Transport {
	if rxTimeoutTicks <= 0 {
		rxTimeoutTicks = DefaultRxTimeoutTicks
	}
	t := &Transport{rxTimeoutAt: rxTimeoutTicks}
	t.nextTx = append([]byte(nil), DefaultResponse...)
	return t
}

// OnAddressMatchRx begins buffering a new incoming frame. Called from the
// I2C-slave ISR on address-match with direction = MCU-receive.
func (t *Transport) OnAddressMatchRx() {
	t.mu.Lock()
	t.rxBusy = true
	t.rxLen = 0
	t.mu.Unlock()
}

// OnDataByte appends one received byte while direction = MCU-receive.
// Bytes beyond the scratch buffer are dropped; the stop handler observes
// the correct length regardless since frames never exceed scratchSize.
func (t *Transport) OnDataByte(b byte) {
	t.mu.Lock()
	if t.rxBusy && t.rxLen < len(t.rxBuf) {
		t.rxBuf[t.rxLen] = b
		t.rxLen++
	}
	t.mu.Unlock()
}

// OnStop delivers the buffered frame to the scheduler side and resets the
// rx-timeout credit. Called from the I2C-slave ISR on a stop condition that
// follows an MCU-receive transaction.
func (t *Transport) OnStop() {
	t.mu.Lock()
	if t.rxBusy {
		frame := make([]byte, t.rxLen)
		copy(frame, t.rxBuf[:t.rxLen])
		t.readyFrame = frame
		t.frameReady = true
		t.rxBusy = false
		t.ticksSinceRx = 0
	}
	t.mu.Unlock()
}

// OnAddressMatchTx snapshots the pending response into the active transmit
// buffer. Called on address-match with direction = MCU-transmit.
func (t *Transport) OnAddressMatchTx() {
	t.mu.Lock()
	t.activeTx = t.nextTx
	t.txPos = 0
	t.txInFlight = true
	t.mu.Unlock()
}

// OnStopTx marks the in-flight transmit transaction as finished. Called
// from the I2C-slave ISR on a stop condition that follows an
// MCU-transmit transaction.
func (t *Transport) OnStopTx() {
	t.mu.Lock()
	t.txInFlight = false
	t.mu.Unlock()
}

// TxIdle reports whether no transmit transaction is currently in flight.
// The restart manager polls this before actually resetting, so a
// deliberate reboot never cuts off a response the host is reading.
func (t *Transport) TxIdle() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.txInFlight
}

// NextTxByte returns the next byte to place in the data register on a
// data-ready event, repeating the last byte if the host reads past the end
// of the active buffer (it will simply re-read the same response until the
// next Start, matching the external interface contract).
func (t *Transport) NextTxByte() byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.activeTx) == 0 {
		return 0
	}
	if t.txPos >= len(t.activeTx) {
		return t.activeTx[len(t.activeTx)-1]
	}
	b := t.activeTx[t.txPos]
	t.txPos++
	return b
}

// SetResponse installs the real response, replacing the default one, once
// the protocol engine has produced it. It becomes visible on the next
// address-match-for-transmit.
func (t *Transport) SetResponse(resp []byte) {
	t.mu.Lock()
	t.nextTx = append(t.nextTx[:0], resp...)
	t.mu.Unlock()
}

// TakeFrame returns a completed received frame and clears the ready flag,
// or reports false if none is pending. Called from the scheduler tick.
func (t *Transport) TakeFrame() ([]byte, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.frameReady {
		return nil, false
	}
	f := t.readyFrame
	t.frameReady = false
	t.readyFrame = nil
	return f, true
}

// Tick advances the rx-timeout counter by one scheduler tick and reports
// whether a timeout newly fired (it fires once per timeout interval, not
// on every subsequent tick once the threshold is crossed).
func (t *Transport) Tick() (timedOut bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ticksSinceRx++
	if t.ticksSinceRx == t.rxTimeoutAt {
		return true
	}
	return false
}
