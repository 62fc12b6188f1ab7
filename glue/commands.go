package glue

import (
	"math"

	"robotfw/asyncop"
	"robotfw/bytespan"
	"robotfw/commslink"
	"robotfw/config"
	"robotfw/errstore"
	"robotfw/led"
	"robotfw/port"
	"robotfw/port/motor"
	"robotfw/port/sensor"
	"robotfw/protocol"
	"robotfw/statusslot"
	"robotfw/watchdog"
)

// motorDriverFor and sensorDriverFor map a host-chosen driver-type id to a
// constructor, or nil for id 0 ("unbind this port"). Real boards register
// board-specific I2C buses by closing over them before wiring; these zero-
// arg constructors cover the drivers that need no peripheral handle.
func motorDriverFor(typeID uint8) port.Driver {
	switch typeID {
	case 1:
		return motor.New(config.MotorDerating, config.MotorThermal)
	default:
		return nil
	}
}

func sensorDriverFor(typeID uint8) port.Driver {
	switch typeID {
	case 1:
		return &sensor.BumperSwitch{}
	case 2:
		return &sensor.HCSR04{Now: monotonicMicros}
	case 6:
		return sensor.Dummy{}
	default:
		return nil
	}
}

// sensorDriverFor binds typeID 7 (a UART diagnostic peripheral) to
// whichever UART line the board bring-up layer assigned to that sensor
// port; every other id falls back to the zero-peripheral table above.
func (r *Runtime) sensorDriverFor(portIdx int, typeID uint8) port.Driver {
	if typeID == 7 {
		if line := r.uartLines[portIdx]; line != nil {
			return sensor.NewUARTDebug(line, 0)
		}
		return nil
	}
	return sensorDriverFor(typeID)
}

// monotonicMicros is overridden by the board bring-up layer with the real
// free-running microsecond timer; it exists here only so HC-SR04 ports can
// be constructed before that wiring is supplied.
var monotonicMicros = func() uint32 { return 0 }

// driveSetPortType advances one port's asyncop-backed SetPortType
// operation: Start begins the driver swap (if one isn't already in
// flight), and every tick the worker reports Busy until the port's own
// BeginSetType/Advance state machine reaches STDone or STError.
func (r *Runtime) driveSetPortType(p *port.Port, op *asyncop.Op[portTypeArgs, struct{}], driverFor func(uint8) port.Driver) {
	op.Update(func(args portTypeArgs, canceled bool) (bool, struct{}) {
		if canceled {
			return true, struct{}{}
		}
		switch p.SetTypeState() {
		case port.STNone:
			p.BeginSetType(driverFor(args.typeID))
			return false, struct{}{}
		case port.STDone:
			return true, struct{}{}
		case port.STError:
			return true, struct{}{}
		default:
			return false, struct{}{}
		}
	})
}

// driveSetConfig advances one port's asyncop-backed SetPortConfig
// operation. Driver.UpdateConfiguration can't block, so the worker applies
// it and reports Done on its very first Update call; the op still goes
// through the regular Started/Busy/Done lifecycle so GetResult reports
// Pending until that tick has actually run.
func (r *Runtime) driveSetConfig(p *port.Port, op *asyncop.Op[portConfigArgs, struct{}]) {
	op.Update(func(args portConfigArgs, canceled bool) (bool, struct{}) {
		if canceled || p.Driver == nil {
			return true, struct{}{}
		}
		p.Driver.UpdateConfiguration(p, args.cfg[:args.n])
		return true, struct{}{}
	})
}

// driveTestPresence advances one port's asyncop-backed TestPresence
// operation, polling the driver's non-blocking probe once per tick until
// it resolves.
func (r *Runtime) driveTestPresence(p *port.Port, op *asyncop.Op[struct{}, port.PresenceStatus]) {
	op.Update(func(_ struct{}, canceled bool) (bool, port.PresenceStatus) {
		if canceled || p.Driver == nil {
			return true, port.NotPresent
		}
		var status port.PresenceStatus
		done := p.Driver.TestPresence(p, &status)
		return done, status
	})
}

// registerCommands installs every command-id handler from spec.md's
// external-interface table (§6) onto the engine's command table.
func (r *Runtime) registerCommands() {
	r.Table.Register(0x00, &protocol.Handler{Start: cmdPing})
	r.Table.Register(0x01, &protocol.Handler{Start: cmdHardwareVersion})
	r.Table.Register(0x02, &protocol.Handler{Start: cmdFirmwareVersion})
	r.Table.Register(0x04, &protocol.Handler{Start: r.cmdSetMasterStatus})
	r.Table.Register(0x05, &protocol.Handler{Start: r.cmdSetBluetoothStatus})
	r.Table.Register(0x06, &protocol.Handler{Start: cmdOperationMode})

	r.Table.Register(0x0B, &protocol.Handler{
		Start:     r.cmdRebootStart,
		GetResult: r.cmdRebootGetResult,
	})

	r.Table.Register(0x10, &protocol.Handler{Start: cmdMotorPortCount})
	r.Table.Register(0x11, &protocol.Handler{Start: r.cmdMotorPortTypes})
	r.Table.Register(0x12, &protocol.Handler{
		Start:     r.cmdSetMotorPortType,
		GetResult: r.cmdGetSetMotorPortTypeResult,
	})
	r.Table.Register(0x13, &protocol.Handler{
		Start:     r.cmdSetMotorConfig,
		GetResult: r.cmdGetSetMotorConfigResult,
	})
	r.Table.Register(0x14, &protocol.Handler{Start: r.cmdMotorDrive})
	r.Table.Register(0x15, &protocol.Handler{
		Start:     r.cmdTestMotorStart,
		GetResult: r.cmdTestMotorGetResult,
	})

	r.Table.Register(0x20, &protocol.Handler{Start: cmdSensorPortCount})
	r.Table.Register(0x21, &protocol.Handler{Start: r.cmdSensorPortTypes})
	r.Table.Register(0x22, &protocol.Handler{
		Start:     r.cmdSetSensorPortType,
		GetResult: r.cmdGetSetSensorPortTypeResult,
	})
	r.Table.Register(0x23, &protocol.Handler{
		Start:     r.cmdSetSensorConfig,
		GetResult: r.cmdGetSetSensorConfigResult,
	})
	r.Table.Register(0x24, &protocol.Handler{Start: r.cmdSensorReadInfo})
	r.Table.Register(0x25, &protocol.Handler{
		Start:     r.cmdTestSensorStart,
		GetResult: r.cmdTestSensorGetResult,
	})

	r.Table.Register(0x30, &protocol.Handler{Start: cmdLEDScenarioList})
	r.Table.Register(0x31, &protocol.Handler{Start: r.cmdLEDSelectScenario})
	r.Table.Register(0x32, &protocol.Handler{Start: cmdLEDRingSize})
	r.Table.Register(0x33, &protocol.Handler{Start: r.cmdLEDSetUserFrame})

	r.Table.Register(0x3A, &protocol.Handler{Start: r.cmdStatusSlotReset})
	r.Table.Register(0x3B, &protocol.Handler{Start: r.cmdStatusSlotEnableDisable})
	r.Table.Register(0x3C, &protocol.Handler{Start: r.cmdStatusSlotPoll})

	r.Table.Register(0x3D, &protocol.Handler{Start: r.cmdErrorCount})
	r.Table.Register(0x3E, &protocol.Handler{Start: r.cmdErrorRead})
	r.Table.Register(0x3F, &protocol.Handler{Start: r.cmdErrorClear})
	r.Table.Register(0x40, &protocol.Handler{Start: r.cmdErrorInject})

	r.Table.Register(0x41, &protocol.Handler{Start: r.cmdResetOrientation})
}

func cmdPing(req bytespan.ConstSpan, resp bytespan.MutSpan) (protocol.Status, int) {
	return protocol.Ok, 0
}

func cmdHardwareVersion(req bytespan.ConstSpan, resp bytespan.MutSpan) (protocol.Status, int) {
	return protocol.Ok, putU32(resp, hardwareVersion)
}

func cmdFirmwareVersion(req bytespan.ConstSpan, resp bytespan.MutSpan) (protocol.Status, int) {
	return protocol.Ok, putU32(resp, firmwareVersion)
}

// hardwareVersion/firmwareVersion are overridden at wiring time by config.
var (
	hardwareVersion uint32 = 1
	firmwareVersion uint32 = 1
)

func cmdOperationMode(req bytespan.ConstSpan, resp bytespan.MutSpan) (protocol.Status, int) {
	return protocol.Ok, resp.CopyFrom(bytespan.ConstSpan("app"))
}

func (r *Runtime) cmdSetMasterStatus(req bytespan.ConstSpan, resp bytespan.MutSpan) (protocol.Status, int) {
	if req.Len() < 1 {
		return protocol.PayloadLengthError, 0
	}
	r.Comms.SetMasterStatus(commslink.MasterStatus(req[0]))
	return protocol.Ok, 0
}

func (r *Runtime) cmdSetBluetoothStatus(req bytespan.ConstSpan, resp bytespan.MutSpan) (protocol.Status, int) {
	if req.Len() < 1 {
		return protocol.PayloadLengthError, 0
	}
	r.Comms.SetBluetoothStatus(commslink.BluetoothStatus(req[0]))
	return protocol.Ok, 0
}

func (r *Runtime) cmdRebootStart(req bytespan.ConstSpan, resp bytespan.MutSpan) (protocol.Status, int) {
	toBootloader := req.Len() >= 1 && req[0] != 0
	if !r.Reboot.RequestReboot(watchdog.RebootArgs{ToBootloader: toBootloader}) {
		return protocol.Busy, 0
	}
	return protocol.Pending, 0
}

func (r *Runtime) cmdRebootGetResult(resp bytespan.MutSpan) (protocol.Status, int) {
	if r.Reboot.Pending() {
		return protocol.Pending, 0
	}
	return protocol.Ok, 0
}

func cmdMotorPortCount(req bytespan.ConstSpan, resp bytespan.MutSpan) (protocol.Status, int) {
	resp[0] = numMotorPorts
	return protocol.Ok, 1
}

func (r *Runtime) cmdMotorPortTypes(req bytespan.ConstSpan, resp bytespan.MutSpan) (protocol.Status, int) {
	for i, p := range r.MotorPorts {
		if p.Driver != nil {
			resp[i] = 1
		} else {
			resp[i] = 0
		}
	}
	return protocol.Ok, numMotorPorts
}

func (r *Runtime) cmdSetMotorPortType(req bytespan.ConstSpan, resp bytespan.MutSpan) (protocol.Status, int) {
	if req.Len() < 2 {
		return protocol.PayloadLengthError, 0
	}
	idx := int(req[0])
	if idx < 0 || idx >= numMotorPorts {
		return protocol.InvalidOperation, 0
	}
	if !r.setMotorType[idx].TryStart(portTypeArgs{port: idx, typeID: req[1]}) {
		return protocol.Busy, 0
	}
	r.setMotorTypeActive = idx
	return protocol.Pending, 0
}

func (r *Runtime) cmdGetSetMotorPortTypeResult(resp bytespan.MutSpan) (protocol.Status, int) {
	if _, ok := r.setMotorType[r.setMotorTypeActive].GetResult(); !ok {
		return protocol.Pending, 0
	}
	return protocol.Ok, 0
}

func (r *Runtime) cmdMotorDrive(req bytespan.ConstSpan, resp bytespan.MutSpan) (protocol.Status, int) {
	off := 0
	outN := 0
	for off < req.Len() {
		hdr := req[off]
		off++
		portIdx := int(hdr & 0x07)
		segLen := int(hdr >> 3)
		if off+segLen > req.Len() || portIdx >= numMotorPorts {
			return protocol.PayloadLengthError, outN
		}
		drv, ok := r.MotorPorts[portIdx].Driver.(*motor.Driver)
		if ok && segLen >= 1 {
			dr := decodeDriveRequest(req[off : off+segLen])
			drv.SetRequest(dr)
			resp[outN] = dr.Version
			outN++
		}
		off += segLen
	}
	return protocol.Ok, outN
}

// decodeDriveRequest decodes one SetControlValue segment into a
// motor.DriveRequest. Layout: version(1), kind(1), then a 4-byte request
// value interpreted per kind (Speed: float32, Position: int32, Power:
// int16 in the low 2 bytes), then PowerLimit(2)/SpeedLimit(2) and finally
// PositionBreakpoint(4) — each field present only if the segment is long
// enough to carry it, so a host that only ever drives Speed/Power can send
// a short segment and leave the limits/breakpoint at their zero value.
func decodeDriveRequest(data bytespan.ConstSpan) motor.DriveRequest {
	var dr motor.DriveRequest
	if data.Len() < 1 {
		return dr
	}
	dr.Version = data[0]
	if data.Len() < 2 {
		return dr
	}
	dr.Kind = motor.RequestKind(data[1])
	if data.Len() >= 6 {
		switch dr.Kind {
		case motor.RequestSpeed:
			dr.Speed = math.Float32frombits(getU32(data[2:6]))
		case motor.RequestPosition:
			dr.Position = int32(getU32(data[2:6]))
		case motor.RequestPower:
			dr.Power = int16(getU16(data[2:4]))
		}
	}
	if data.Len() >= 10 {
		dr.PowerLimit = int16(getU16(data[6:8]))
		dr.SpeedLimit = int16(getU16(data[8:10]))
	}
	if data.Len() >= 14 {
		dr.PositionBreakpoint = int32(getU32(data[10:14]))
	}
	return dr
}

func (r *Runtime) cmdSetMotorConfig(req bytespan.ConstSpan, resp bytespan.MutSpan) (protocol.Status, int) {
	if req.Len() < 1 {
		return protocol.PayloadLengthError, 0
	}
	idx := int(req[0])
	if idx < 0 || idx >= numMotorPorts || r.MotorPorts[idx].Driver == nil {
		return protocol.InvalidOperation, 0
	}
	var args portConfigArgs
	args.n = copy(args.cfg[:], req[1:])
	if !r.configMotor[idx].TryStart(args) {
		return protocol.Busy, 0
	}
	r.configMotorActive = idx
	return protocol.Pending, 0
}

func (r *Runtime) cmdGetSetMotorConfigResult(resp bytespan.MutSpan) (protocol.Status, int) {
	if _, ok := r.configMotor[r.configMotorActive].GetResult(); !ok {
		return protocol.Pending, 0
	}
	return protocol.Ok, 0
}

func (r *Runtime) cmdTestMotorStart(req bytespan.ConstSpan, resp bytespan.MutSpan) (protocol.Status, int) {
	if req.Len() < 1 {
		return protocol.PayloadLengthError, 0
	}
	idx := int(req[0])
	if idx < 0 || idx >= numMotorPorts {
		return protocol.InvalidOperation, 0
	}
	if !r.testMotor[idx].TryStart(struct{}{}) {
		return protocol.Busy, 0
	}
	r.testMotorPort = idx
	return protocol.Pending, 0
}

func (r *Runtime) cmdTestMotorGetResult(resp bytespan.MutSpan) (protocol.Status, int) {
	status, ok := r.testMotor[r.testMotorPort].GetResult()
	if !ok {
		return protocol.Pending, 0
	}
	resp[0] = byte(status)
	return protocol.Ok, 1
}

func cmdSensorPortCount(req bytespan.ConstSpan, resp bytespan.MutSpan) (protocol.Status, int) {
	resp[0] = numSensorPorts
	return protocol.Ok, 1
}

func (r *Runtime) cmdSensorPortTypes(req bytespan.ConstSpan, resp bytespan.MutSpan) (protocol.Status, int) {
	for i, p := range r.SensorPorts {
		if p.Driver != nil {
			resp[i] = 1
		} else {
			resp[i] = 0
		}
	}
	return protocol.Ok, numSensorPorts
}

func (r *Runtime) cmdSetSensorPortType(req bytespan.ConstSpan, resp bytespan.MutSpan) (protocol.Status, int) {
	if req.Len() < 2 {
		return protocol.PayloadLengthError, 0
	}
	idx := int(req[0])
	if idx < 0 || idx >= numSensorPorts {
		return protocol.InvalidOperation, 0
	}
	if !r.setSensorType[idx].TryStart(portTypeArgs{port: idx, typeID: req[1]}) {
		return protocol.Busy, 0
	}
	r.setSensorTypeActive = idx
	return protocol.Pending, 0
}

func (r *Runtime) cmdGetSetSensorPortTypeResult(resp bytespan.MutSpan) (protocol.Status, int) {
	if _, ok := r.setSensorType[r.setSensorTypeActive].GetResult(); !ok {
		return protocol.Pending, 0
	}
	return protocol.Ok, 0
}

func (r *Runtime) cmdSensorReadInfo(req bytespan.ConstSpan, resp bytespan.MutSpan) (protocol.Status, int) {
	if req.Len() < 1 {
		return protocol.PayloadLengthError, 0
	}
	idx := int(req[0])
	if idx < 0 || idx >= numSensorPorts || r.SensorPorts[idx].Driver == nil {
		return protocol.InvalidOperation, 0
	}
	n := r.SensorPorts[idx].Driver.ReadSensorInfo(r.SensorPorts[idx], 0, resp)
	return protocol.Ok, n
}

func (r *Runtime) cmdSetSensorConfig(req bytespan.ConstSpan, resp bytespan.MutSpan) (protocol.Status, int) {
	if req.Len() < 1 {
		return protocol.PayloadLengthError, 0
	}
	idx := int(req[0])
	if idx < 0 || idx >= numSensorPorts || r.SensorPorts[idx].Driver == nil {
		return protocol.InvalidOperation, 0
	}
	var args portConfigArgs
	args.n = copy(args.cfg[:], req[1:])
	if !r.configSensor[idx].TryStart(args) {
		return protocol.Busy, 0
	}
	r.configSensorActive = idx
	return protocol.Pending, 0
}

func (r *Runtime) cmdGetSetSensorConfigResult(resp bytespan.MutSpan) (protocol.Status, int) {
	if _, ok := r.configSensor[r.configSensorActive].GetResult(); !ok {
		return protocol.Pending, 0
	}
	return protocol.Ok, 0
}

func (r *Runtime) cmdTestSensorStart(req bytespan.ConstSpan, resp bytespan.MutSpan) (protocol.Status, int) {
	if req.Len() < 1 {
		return protocol.PayloadLengthError, 0
	}
	idx := int(req[0])
	if idx < 0 || idx >= numSensorPorts {
		return protocol.InvalidOperation, 0
	}
	if !r.testSensor[idx].TryStart(struct{}{}) {
		return protocol.Busy, 0
	}
	r.testSensorPort = idx
	return protocol.Pending, 0
}

func (r *Runtime) cmdTestSensorGetResult(resp bytespan.MutSpan) (protocol.Status, int) {
	status, ok := r.testSensor[r.testSensorPort].GetResult()
	if !ok {
		return protocol.Pending, 0
	}
	resp[0] = byte(status)
	return protocol.Ok, 1
}

func cmdLEDScenarioList(req bytespan.ConstSpan, resp bytespan.MutSpan) (protocol.Status, int) {
	n := int(led.TrafficLight) + 1
	for i := 0; i < n; i++ {
		resp[i] = byte(i)
	}
	return protocol.Ok, n
}

func (r *Runtime) cmdLEDSelectScenario(req bytespan.ConstSpan, resp bytespan.MutSpan) (protocol.Status, int) {
	if req.Len() < 1 {
		return protocol.PayloadLengthError, 0
	}
	scenario := led.Scenario(req[0])
	r.Display.SetScenario(scenario)
	r.Events.Publish(r.Events.NewMessage(TopicLEDScenarioChanged, scenario, false))
	return protocol.Ok, 0
}

func cmdLEDRingSize(req bytespan.ConstSpan, resp bytespan.MutSpan) (protocol.Status, int) {
	resp[0] = 12
	return protocol.Ok, 1
}

func (r *Runtime) cmdLEDSetUserFrame(req bytespan.ConstSpan, resp bytespan.MutSpan) (protocol.Status, int) {
	const ringSize = 12
	if req.Len() < ringSize*3 {
		return protocol.PayloadLengthError, 0
	}
	var frame [ringSize]led.Color
	for i := 0; i < ringSize; i++ {
		frame[i] = led.Color{G: req[i*3], R: req[i*3+1], B: req[i*3+2]}
	}
	r.Display.SetUserFrame(frame)
	return protocol.Ok, 0
}

func (r *Runtime) cmdStatusSlotReset(req bytespan.ConstSpan, resp bytespan.MutSpan) (protocol.Status, int) {
	r.Status.Reset()
	r.Collector.Reset()
	return protocol.Ok, 0
}

func (r *Runtime) cmdStatusSlotEnableDisable(req bytespan.ConstSpan, resp bytespan.MutSpan) (protocol.Status, int) {
	if req.Len() < 2 {
		return protocol.PayloadLengthError, 0
	}
	idx := int(req[0])
	if idx < 0 || idx >= statusslot.SlotCount {
		return protocol.InvalidOperation, 0
	}
	if req[1] != 0 {
		r.Collector.EnableSlot(idx)
	} else {
		r.Collector.DisableSlot(idx)
	}
	return protocol.Ok, 0
}

func (r *Runtime) cmdStatusSlotPoll(req bytespan.ConstSpan, resp bytespan.MutSpan) (protocol.Status, int) {
	entries := r.Collector.Read(resp.Len())
	n := 0
	for _, e := range entries {
		resp[n] = e.SlotIndex
		n++
		resp[n] = uint8(len(e.Data))
		n++
		n += copy(resp[n:], e.Data)
	}
	return protocol.Ok, n
}

func (r *Runtime) cmdErrorCount(req bytespan.ConstSpan, resp bytespan.MutSpan) (protocol.Status, int) {
	return protocol.Ok, putU32(resp, uint32(r.Errors.Count()))
}

func (r *Runtime) cmdErrorRead(req bytespan.ConstSpan, resp bytespan.MutSpan) (protocol.Status, int) {
	if req.Len() < 4 {
		return protocol.PayloadLengthError, 0
	}
	idx := int(getU32(req))
	rec, ok := r.Errors.Read(idx)
	if !ok {
		return protocol.CommandError, 0
	}
	resp[0] = rec.ErrorID
	n := 1
	n += putU32(resp[n:], rec.HardwareVer)
	n += putU32(resp[n:], rec.FirmwareVer)
	n += copy(resp[n:], rec.Payload[:])
	return protocol.Ok, n
}

func (r *Runtime) cmdErrorClear(req bytespan.ConstSpan, resp bytespan.MutSpan) (protocol.Status, int) {
	r.Errors.Clear()
	return protocol.Ok, 0
}

func (r *Runtime) cmdErrorInject(req bytespan.ConstSpan, resp bytespan.MutSpan) (protocol.Status, int) {
	if req.Len() < 1 {
		return protocol.PayloadLengthError, 0
	}
	var rec errstore.Record
	rec.ErrorID = req[0]
	rec.HardwareVer = hardwareVersion
	rec.FirmwareVer = firmwareVersion
	r.Errors.Append(rec)
	r.Events.Publish(r.Events.NewMessage(TopicErrorStored, rec.ErrorID, false))
	return protocol.Ok, 0
}

func (r *Runtime) cmdResetOrientation(req bytespan.ConstSpan, resp bytespan.MutSpan) (protocol.Status, int) {
	r.Orientation.Reset()
	return protocol.Ok, 0
}

// publishPortSlots writes each bound port's telemetry into its status slot.
func (r *Runtime) publishPortSlots() {
	for i, p := range r.MotorPorts {
		drv, ok := p.Driver.(*motor.Driver)
		if !ok {
			continue
		}
		ackVersion, duty, relCurrent, maxPowerRatio, temp := drv.Status()
		var buf [11]byte
		buf[0] = ackVersion
		buf[1] = byte(duty)
		buf[2] = byte(duty >> 8)
		putFloat32(buf[3:], relCurrent)
		putFloat32(buf[7:], maxPowerRatio)
		_ = temp
		r.Status.Write(statusslot.MotorSlot(i), buf[:])
	}

	for i, p := range r.SensorPorts {
		if p.Driver == nil {
			continue
		}
		var buf [32]byte
		n := p.Driver.ReadSensorInfo(p, 0, buf[:])
		r.Status.Write(statusslot.SensorSlot(i), buf[:n])
	}
}

// publishIMUSlots writes the gyro-offset and orientation slots from the
// latest pipeline output. The accelerometer slot is not written.
func (r *Runtime) publishIMUSlots() {
	off := r.Offset.Offset()
	var gyroBuf [6]byte
	putFloat16ish(gyroBuf[0:2], off.X)
	putFloat16ish(gyroBuf[2:4], off.Y)
	putFloat16ish(gyroBuf[4:6], off.Z)
	r.Status.Write(statusslot.SlotGyro, gyroBuf[:])

	o := r.Orientation.Orientation()
	var orientBuf [12]byte
	putFloat32(orientBuf[0:4], o.Pitch)
	putFloat32(orientBuf[4:8], o.Roll)
	putFloat32(orientBuf[8:12], r.Orientation.Heading())
	r.Status.Write(statusslot.SlotOrientation, orientBuf[:])
}

func putU32(dst []byte, v uint32) int {
	if len(dst) < 4 {
		return 0
	}
	dst[0] = byte(v)
	dst[1] = byte(v >> 8)
	dst[2] = byte(v >> 16)
	dst[3] = byte(v >> 24)
	return 4
}

func getU32(src []byte) uint32 {
	return uint32(src[0]) | uint32(src[1])<<8 | uint32(src[2])<<16 | uint32(src[3])<<24
}

func getU16(src []byte) uint16 {
	return uint16(src[0]) | uint16(src[1])<<8
}

func putFloat32(dst []byte, v float32) {
	bits := math.Float32bits(v)
	dst[0] = byte(bits)
	dst[1] = byte(bits >> 8)
	dst[2] = byte(bits >> 16)
	dst[3] = byte(bits >> 24)
}

// putFloat16ish packs a float32 into 2 bytes as a fixed-point
// hundredths-of-a-degree-per-second value, matching the 6-byte gyro slot's
// budget (3 axes x 2 bytes, per the original layout).
func putFloat16ish(dst []byte, v float32) {
	fixed := int16(v * 100)
	dst[0] = byte(fixed)
	dst[1] = byte(fixed >> 8)
}
