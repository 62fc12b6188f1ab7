package motor

import (
	"testing"

	"robotfw/port"
)

func TestPresenceDetectsSustainedCurrentRise(t *testing.T) {
	d := New(DeratingParams{MaxSafeTemperature: 60, MaxAllowedTemperature: 90}, ThermalParams{AmbientTemp: 25})
	p := port.New(0)
	var status port.PresenceStatus

	if done := d.TestPresence(p, &status); done {
		t.Fatal("first call should only arm the probe")
	}

	d.adcRaw = 0 // baseline established at 0
	for i := 0; i < presenceSustainTicks-1; i++ {
		d.adcRaw = presenceRiseDelta + 5
		if done := d.TestPresence(p, &status); done {
			t.Fatalf("should not conclude before sustain threshold, tick %d", i)
		}
	}
	d.adcRaw = presenceRiseDelta + 5
	if done := d.TestPresence(p, &status); !done || status != port.Present {
		t.Fatalf("want Present after sustained rise, done=%v status=%v", done, status)
	}
}

func TestPresenceTimesOutWithoutRise(t *testing.T) {
	d := New(DeratingParams{MaxSafeTemperature: 60, MaxAllowedTemperature: 90}, ThermalParams{AmbientTemp: 25})
	p := port.New(0)
	var status port.PresenceStatus
	d.TestPresence(p, &status) // arm

	done := false
	for i := 0; i < presenceWindowTicks && !done; i++ {
		done = d.TestPresence(p, &status)
	}
	if !done || status != port.NotPresent {
		t.Fatalf("want NotPresent after window elapses, done=%v status=%v", done, status)
	}
}

func TestUpdatePublishesDeratedDuty(t *testing.T) {
	d := New(DeratingParams{MaxSafeTemperature: 60, MaxAllowedTemperature: 90}, ThermalParams{AmbientTemp: 25})
	p := port.New(0)
	d.SetRequest(DriveRequest{Version: 3, Kind: RequestPower, Power: 150})
	d.Update(p)
	version, duty, _, _, _ := d.Status()
	if version != 3 {
		t.Fatalf("want echoed version 3, got %d", version)
	}
	if duty != 150 {
		t.Fatalf("want duty 150 with no limits active, got %d", duty)
	}
}
