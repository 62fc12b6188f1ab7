// Package errstore implements the error journal (C13): a two-block
// wear-leveled flash log of fixed-size 64-byte records, with allocate /
// write / mark-valid programming in three flash writes per record and
// block erase-and-reinit on a layout mismatch.
package errstore

// RecordSize is the on-flash size of one error record, resolved from the
// original firmware's packed ErrorInfo_t: error_id(1) + hw_version(4) +
// fw_version(4) + payload(54) + the leading status byte.
const (
	payloadSize    = 54
	recordBodySize = 1 + 4 + 4 + payloadSize // 63
	RecordSize     = 1 + recordBodySize      // 64, including the status byte
)

// Record is one decoded error entry.
type Record struct {
	ErrorID        uint8
	HardwareVer    uint32
	FirmwareVer    uint32
	Payload        [payloadSize]byte
}

func (r Record) encodeBody(dst []byte) {
	dst[0] = r.ErrorID
	dst[1] = byte(r.HardwareVer)
	dst[2] = byte(r.HardwareVer >> 8)
	dst[3] = byte(r.HardwareVer >> 16)
	dst[4] = byte(r.HardwareVer >> 24)
	dst[5] = byte(r.FirmwareVer)
	dst[6] = byte(r.FirmwareVer >> 8)
	dst[7] = byte(r.FirmwareVer >> 16)
	dst[8] = byte(r.FirmwareVer >> 24)
	copy(dst[9:], r.Payload[:])
}

func decodeRecordBody(src []byte) Record {
	var r Record
	r.ErrorID = src[0]
	r.HardwareVer = uint32(src[1]) | uint32(src[2])<<8 | uint32(src[3])<<16 | uint32(src[4])<<24
	r.FirmwareVer = uint32(src[5]) | uint32(src[6])<<8 | uint32(src[7])<<16 | uint32(src[8])<<24
	copy(r.Payload[:], src[9:9+payloadSize])
	return r
}

// statusByte bit positions: programming only ever clears bits (1 -> 0).
const (
	statusBitAllocated = 1 << 7
	statusBitValid     = 1 << 6
	statusBitDeleted   = 1 << 5
	statusReservedMask = 0x1F // bits 4..0, must remain 1
)

// Programming only clears bits, so a flag reads true once its bit has been
// cleared from the erased (1) state to 0 — never the other way around. An
// allocated object whose Valid bit was never cleared (a write cut short
// before its final program) counts as deleted, so it is never read back.
func isAllocated(status byte) bool { return status&statusBitAllocated == 0 }
func isDeleted(status byte) bool {
	return status&statusBitDeleted == 0 || (isAllocated(status) && status&statusBitValid != 0)
}
