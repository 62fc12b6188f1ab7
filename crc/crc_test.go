package crc

import (
	"testing"

	"robotfw/bytespan"
)

func TestCRC16Deterministic(t *testing.T) {
	data := bytespan.ConstSpan{0x01, 0x02, 0x03, 0x04}
	a := CRC16(0xFFFF, data)
	b := CRC16(0xFFFF, data)
	if a != b {
		t.Fatalf("CRC16 not deterministic: %x vs %x", a, b)
	}
}

func TestCRC16EmptyIsInit(t *testing.T) {
	if got := CRC16(0xFFFF, nil); got != 0xFFFF {
		t.Fatalf("CRC16 of empty span should be the init value, got %x", got)
	}
}

func TestCRC7Bounded(t *testing.T) {
	data := bytespan.ConstSpan{0xAA, 0x55, 0x10, 0x20, 0x30}
	got := CRC7(0xFF, data)
	if got > 0x7F {
		t.Fatalf("CRC7 must fit in 7 bits, got %#x", got)
	}
}

func TestCRC7DetectsCorruption(t *testing.T) {
	data := bytespan.ConstSpan{0x01, 0x12, 0x03, 0x04, 0x05}
	good := CRC7(0xFF, data)
	corrupt := bytespan.ConstSpan{0x01, 0x13, 0x03, 0x04, 0x05}
	if CRC7(0xFF, corrupt) == good {
		t.Fatal("single-bit corruption should change the CRC7")
	}
}
