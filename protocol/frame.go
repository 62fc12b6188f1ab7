package protocol

import (
	"robotfw/bytespan"
	"robotfw/crc"
)

const (
	MaxPayload   = 255
	RequestHdrSz = 6 // op, cmd, payload_len, payload_crc16(2), header_crc7
	MaxRequest   = RequestHdrSz + MaxPayload

	ResponseHdrSz = 5 // status, payload_len, payload_crc16(2), header_crc7
	MaxResponse   = ResponseHdrSz + MaxPayload
)

// Request is a decoded request frame. Payload aliases the caller's buffer.
type Request struct {
	Op         Op
	Cmd        uint8
	PayloadLen uint8
	Payload    bytespan.ConstSpan
}

// headerCRC7 computes the CRC-7 over the header bytes that precede the
// header_crc7 field itself, initialized to 0xFF per the wire format.
func headerCRC7(headerBytes bytespan.ConstSpan) uint8 {
	return crc.CRC7(0xFF, headerBytes)
}

func payloadCRC16(payload bytespan.ConstSpan) uint16 {
	return crc.CRC16(0xFFFF, payload)
}

// ParseRequest decodes a raw buffer received from the transport into a
// Request, or reports that it failed CRC checks. It does not allocate: the
// returned Request's Payload slices into raw.
func ParseRequest(raw []byte) (Request, Status) {
	if len(raw) < RequestHdrSz {
		return Request{}, CommandIntegrityError
	}
	op := Op(raw[0])
	cmd := raw[1]
	payloadLen := raw[2]
	wantPayloadCRC := uint16(raw[3]) | uint16(raw[4])<<8
	wantHeaderCRC := raw[5]

	gotHeaderCRC := headerCRC7(bytespan.ConstSpan(raw[:5]))
	if gotHeaderCRC != wantHeaderCRC {
		return Request{}, CommandIntegrityError
	}

	if int(payloadLen) > len(raw)-RequestHdrSz {
		return Request{}, PayloadLengthError
	}
	payload := raw[RequestHdrSz : RequestHdrSz+int(payloadLen)]

	gotPayloadCRC := payloadCRC16(bytespan.ConstSpan(payload))
	if gotPayloadCRC != wantPayloadCRC {
		return Request{}, PayloadIntegrityError
	}

	return Request{Op: op, Cmd: cmd, PayloadLen: payloadLen, Payload: bytespan.ConstSpan(payload)}, Ok
}

// EncodeResponse serializes status and payload into dst, returning the
// number of bytes written. dst must be at least ResponseHdrSz+len(payload).
// Per the response payload policy, payload is dropped (forced to length 0)
// unless status is Ok or CommandError.
func EncodeResponse(dst []byte, status Status, payload []byte) int {
	if !payloadAllowed(status) {
		payload = nil
	}
	dst[0] = byte(status)
	dst[1] = byte(len(payload))
	pcrc := payloadCRC16(bytespan.ConstSpan(payload))
	dst[2] = byte(pcrc)
	dst[3] = byte(pcrc >> 8)
	dst[4] = headerCRC7(bytespan.ConstSpan(dst[:4]))
	n := copy(dst[ResponseHdrSz:], payload)
	return ResponseHdrSz + n
}
