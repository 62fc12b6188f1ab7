package config

import "testing"

func TestDeviceAddressesAreDistinct(t *testing.T) {
	if DeviceAddress == BootloaderAddress {
		t.Fatalf("device and bootloader addresses must differ")
	}
}

func TestMotorThermalLimitsAreOrdered(t *testing.T) {
	if MotorDerating.MaxSafeTemperature >= MotorDerating.MaxAllowedTemperature {
		t.Fatalf("safe temperature must be below the allowed maximum")
	}
}

func TestBatteryRangesAreOrdered(t *testing.T) {
	for _, p := range []struct {
		name string
		v    float32
		max  float32
	}{
		{"main", MainBattery.MinV, MainBattery.MaxV},
		{"motor", MotorBattery.MinV, MotorBattery.MaxV},
	} {
		if p.v >= p.max {
			t.Fatalf("%s battery min voltage must be below max", p.name)
		}
	}
}
