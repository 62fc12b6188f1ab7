package glue

import (
	"testing"

	"robotfw/bytespan"
	"robotfw/crc"
	"robotfw/errstore"
	"robotfw/imu"
	"robotfw/led"
	"robotfw/port/motor"
	"robotfw/protocol"
	"robotfw/statusslot"
)

type fakeFrameTx struct {
	frames [][]led.Color
}

func (f *fakeFrameTx) Transmit(colors []led.Color) {
	cp := make([]led.Color, len(colors))
	copy(cp, colors)
	f.frames = append(f.frames, cp)
}

type fakeFilter struct{}

func (fakeFilter) Step(gyro, accel imu.Vector3D) imu.Quaternion { return imu.IdentityQuaternion }
func (fakeFilter) Reset()                                       {}

type fakeHW struct {
	resetCalled  bool
	bootloaderMk bool
}

func (f *fakeHW) Feed()                  {}
func (f *fakeHW) WriteBootloaderMarker() { f.bootloaderMk = true }
func (f *fakeHW) Reset()                 { f.resetCalled = true }

func newTestRuntime(t *testing.T) (*Runtime, *fakeHW) {
	t.Helper()
	hw := &fakeHW{}
	flashA := errstore.NewMemFlash(2048)
	flashB := errstore.NewMemFlash(2048)
	r := NewRuntime(flashA, flashB, hw, &fakeFrameTx{}, fakeFilter{})
	return r, hw
}

// buildFrame assembles a wire-correct request: op, cmd, payload_len,
// payload_crc16, header_crc7, then the payload bytes themselves.
func buildFrame(op protocol.Op, cmd uint8, payload []byte) []byte {
	buf := make([]byte, protocol.RequestHdrSz+len(payload))
	buf[0] = byte(op)
	buf[1] = cmd
	buf[2] = uint8(len(payload))
	pcrc := crc.CRC16(0xFFFF, bytespan.ConstSpan(payload))
	buf[3] = byte(pcrc)
	buf[4] = byte(pcrc >> 8)
	buf[5] = crc.CRC7(0xFF, bytespan.ConstSpan(buf[:5]))
	copy(buf[protocol.RequestHdrSz:], payload)
	return buf
}

// decodeResponse splits an encoded response into its status and payload.
func decodeResponse(resp []byte) (protocol.Status, []byte) {
	status := protocol.Status(resp[0])
	n := int(resp[1])
	return status, resp[protocol.ResponseHdrSz : protocol.ResponseHdrSz+n]
}

func dispatchStart(r *Runtime, cmd uint8, payload []byte) (protocol.Status, []byte) {
	var resp [protocol.MaxResponse]byte
	n := r.Engine.Dispatch(buildFrame(protocol.OpStart, cmd, payload), resp[:])
	return decodeResponse(resp[:n])
}

func dispatchGetResult(r *Runtime, cmd uint8) (protocol.Status, []byte) {
	var resp [protocol.MaxResponse]byte
	n := r.Engine.Dispatch(buildFrame(protocol.OpGetResult, cmd, nil), resp[:])
	return decodeResponse(resp[:n])
}

func TestPingRespondsOk(t *testing.T) {
	r, _ := newTestRuntime(t)
	status, payload := dispatchStart(r, 0x00, nil)
	if status != protocol.Ok || len(payload) != 0 {
		t.Fatalf("want Ok with empty payload, got %v %v", status, payload)
	}
}

func TestSetMasterStatusUpdatesObserver(t *testing.T) {
	r, _ := newTestRuntime(t)
	status, _ := dispatchStart(r, 0x04, []byte{4}) // StatusOperational
	if status != protocol.Ok {
		t.Fatalf("want Ok, got %v", status)
	}
	if r.Comms.MasterStatus() != 4 {
		t.Fatalf("want master status 4, got %v", r.Comms.MasterStatus())
	}
}

func TestMotorPortCountReportsSix(t *testing.T) {
	r, _ := newTestRuntime(t)
	status, payload := dispatchStart(r, 0x10, nil)
	if status != protocol.Ok || len(payload) != 1 || payload[0] != numMotorPorts {
		t.Fatalf("want %d motor ports, got %v %v", numMotorPorts, status, payload)
	}
}

func TestSetMotorPortTypeRunsAsyncToCompletion(t *testing.T) {
	r, _ := newTestRuntime(t)
	status, _ := dispatchStart(r, 0x12, []byte{0, 1})
	if status != protocol.Pending && status != protocol.Ok {
		t.Fatalf("want Pending or an immediate Ok, got %v", status)
	}

	for i := 0; i < 5 && r.MotorPorts[0].Driver == nil; i++ {
		for j := range r.setMotorType {
			r.driveSetPortType(r.MotorPorts[j], &r.setMotorType[j], motorDriverFor)
		}
	}

	if r.MotorPorts[0].Driver == nil {
		t.Fatalf("want a driver bound to motor port 0 after SetPortType completes")
	}
}

func TestMotorDriveEchoesVersionByte(t *testing.T) {
	r, _ := newTestRuntime(t)
	r.setMotorType[0].TryStart(portTypeArgs{port: 0, typeID: 1})
	for i := 0; i < 5; i++ {
		r.driveSetPortType(r.MotorPorts[0], &r.setMotorType[0], motorDriverFor)
	}

	hdr := byte(1<<3) | 0 // segment length 1, port 0
	status, payload := dispatchStart(r, 0x14, []byte{hdr, 7})
	if status != protocol.Ok || len(payload) != 1 || payload[0] != 7 {
		t.Fatalf("want echoed version byte 7, got %v %v", status, payload)
	}
}

func TestMotorDrivePowerRequestFlipsDutySign(t *testing.T) {
	r, _ := newTestRuntime(t)
	r.setMotorType[0].TryStart(portTypeArgs{port: 0, typeID: 1})
	for i := 0; i < 5; i++ {
		r.driveSetPortType(r.MotorPorts[0], &r.setMotorType[0], motorDriverFor)
	}

	drivePower := func(power int16) int16 {
		segment := []byte{1, byte(motor.RequestPower), byte(uint16(power)), byte(uint16(power) >> 8), 0, 0}
		hdr := byte(len(segment)<<3) | 0
		status, payload := dispatchStart(r, 0x14, append([]byte{hdr}, segment...))
		if status != protocol.Ok || len(payload) != 1 {
			t.Fatalf("want Ok with one echoed version byte, got %v %v", status, payload)
		}
		drv := r.MotorPorts[0].Driver.(*motor.Driver)
		drv.Update(r.MotorPorts[0])
		_, duty, _, _, _ := drv.Status()
		return duty
	}

	if duty := drivePower(100); duty <= 0 {
		t.Fatalf("want a positive duty for Power=+100, got %d", duty)
	}
	if duty := drivePower(-100); duty >= 0 {
		t.Fatalf("want a negative duty for Power=-100, got %d", duty)
	}
}

func TestRebootToBootloaderWaitsForTxIdle(t *testing.T) {
	r, hw := newTestRuntime(t)
	r.Transport.OnAddressMatchTx() // simulate an in-flight response transmission

	dispatchStart(r, 0x0B, []byte{1})

	r.Reboot.Update()
	if hw.resetCalled {
		t.Fatalf("reset must not fire while the transport is still transmitting")
	}

	r.Transport.OnStopTx()
	r.Reboot.Update()
	if !hw.resetCalled || !hw.bootloaderMk {
		t.Fatalf("want reset + bootloader marker once tx is idle")
	}
}

func TestErrorInjectAndReadRoundTrip(t *testing.T) {
	r, _ := newTestRuntime(t)

	status, _ := dispatchStart(r, 0x40, []byte{9})
	if status != protocol.Ok {
		t.Fatalf("want Ok injecting an error, got %v", status)
	}

	status, payload := dispatchStart(r, 0x3D, nil)
	if status != protocol.Ok || len(payload) != 4 {
		t.Fatalf("want a 4-byte count, got %v %v", status, payload)
	}

	status, payload = dispatchStart(r, 0x3E, []byte{0, 0, 0, 0})
	if status != protocol.Ok || len(payload) == 0 || payload[0] != 9 {
		t.Fatalf("want error id 9 read back, got %v %v", status, payload)
	}
}

func TestStatusSlotPollReturnsEnabledSlots(t *testing.T) {
	r, _ := newTestRuntime(t)
	r.Status.Write(statusslot.SlotBattery, []byte{1, 2, 3, 4})

	status, _ := dispatchStart(r, 0x3B, []byte{byte(statusslot.SlotBattery), 1})
	if status != protocol.Ok {
		t.Fatalf("want Ok enabling a slot, got %v", status)
	}

	status, payload := dispatchStart(r, 0x3C, nil)
	if status != protocol.Ok || len(payload) == 0 {
		t.Fatalf("want a non-empty poll response once a slot is enabled, got %v %v", status, payload)
	}
}

func TestGetResultDispatchIsUnusedWithoutAPendingOp(t *testing.T) {
	r, _ := newTestRuntime(t)
	status, _ := dispatchGetResult(r, 0x12)
	if status != protocol.InvalidOperation {
		t.Fatalf("want InvalidOperation polling a command with no Start in flight, got %v", status)
	}
}
