package battery

import "testing"

func TestEMAConvergesTowardConstantInput(t *testing.T) {
	var e EMA
	var last float32
	for i := 0; i < 200; i++ {
		last = e.Update(10.0)
	}
	if last < 9.9 || last > 10.1 {
		t.Fatalf("want EMA to converge near 10.0, got %v", last)
	}
}

func TestEMABiasCorrectedEarlyOn(t *testing.T) {
	var e EMA
	first := e.Update(10.0)
	// With bias correction the very first sample should read back near the
	// true input value, not near zero (alpha*0 + (1-alpha)*10 undercorrected).
	if first < 9.0 {
		t.Fatalf("want first bias-corrected sample near 10.0, got %v", first)
	}
}

func TestMonitorReportsAbsentBelowDetectionVoltage(t *testing.T) {
	var m Monitor
	m.Params = Params{DetectionV: 6.0, MinV: 6.5, MaxV: 8.4}
	for i := 0; i < 20; i++ {
		m.Update(0)
	}
	r := m.Update(0)
	if r.Present {
		t.Fatal("expected absent below detection voltage")
	}
}

func TestMonitorMapsVoltageToLevel(t *testing.T) {
	var m Monitor
	m.Params = Params{DetectionV: 6.0, MinV: 6.5, MaxV: 8.4}
	var r Reading
	for i := 0; i < 200; i++ {
		r = m.Update(8.4)
	}
	if !r.Present {
		t.Fatal("expected present at max voltage")
	}
	if r.LevelPct < 99 {
		t.Fatalf("want level near 100%% at max voltage, got %v", r.LevelPct)
	}
}

func TestLowBatteryHysteresis(t *testing.T) {
	var m Monitor
	m.Params = Params{DetectionV: 6.0, MinV: 6.5, MaxV: 8.4}

	// Settle near the low threshold: pick a voltage mapping to ~5%.
	lowV := float32(6.5) + 0.05*(8.4-6.5)
	var r Reading
	for i := 0; i < 200; i++ {
		r = m.Update(lowV)
	}
	if !r.Low {
		t.Fatalf("want low latched at ~5%%, got level %v low %v", r.LevelPct, r.Low)
	}

	// Rise to 12%: still below the 15% exit threshold, should stay low.
	midV := float32(6.5) + 0.12*(8.4-6.5)
	for i := 0; i < 200; i++ {
		r = m.Update(midV)
	}
	if !r.Low {
		t.Fatal("expected hysteresis to keep low latched below the 15% exit threshold")
	}

	// Rise above 15%: should clear.
	highV := float32(6.5) + 0.20*(8.4-6.5)
	for i := 0; i < 200; i++ {
		r = m.Update(highV)
	}
	if r.Low {
		t.Fatal("expected low to clear above the 15% exit threshold")
	}
}
