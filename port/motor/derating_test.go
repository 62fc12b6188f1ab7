package motor

import "testing"

func approxEqual(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func TestDerateNoLimitsPassesThrough(t *testing.T) {
	params := DeratingParams{MaxSafeTemperature: 60, MaxAllowedTemperature: 90}
	res := Derate(params, 100, 0 /* no current limit configured */, 0, 25)
	if res.DeratedControl != 100 {
		t.Fatalf("want control unchanged at 100, got %d", res.DeratedControl)
	}
	if res.RelativeMotorCurrent != 0 {
		t.Fatalf("want 0%% relative current when max is 0, got %v", res.RelativeMotorCurrent)
	}
}

func TestDerateCurrentLimitReducesOutput(t *testing.T) {
	params := DeratingParams{MaxSafeTemperature: 60, MaxAllowedTemperature: 90}
	res := Derate(params, 100, 2.0, 4.0, 25) // current double the limit -> factor 0.5
	if !approxEqual(res.MaxPowerRatio, 0.5, 0.01) {
		t.Fatalf("want ratio ~0.5, got %v", res.MaxPowerRatio)
	}
	if res.DeratedControl != 50 {
		t.Fatalf("want derated control 50, got %d", res.DeratedControl)
	}
	if !approxEqual(res.RelativeMotorCurrent, 200, 0.1) {
		t.Fatalf("want 200%% relative current, got %v", res.RelativeMotorCurrent)
	}
}

func TestDerateThermalCutoffAtMaxTemp(t *testing.T) {
	params := DeratingParams{MaxSafeTemperature: 60, MaxAllowedTemperature: 90}
	res := Derate(params, 100, 0, 0, 90) // at max allowed temp -> thermal factor 0
	if res.DeratedControl != 0 {
		t.Fatalf("want 0 output at max temp, got %d", res.DeratedControl)
	}
}

func TestDerateThermalFullBelowSafeTemp(t *testing.T) {
	params := DeratingParams{MaxSafeTemperature: 60, MaxAllowedTemperature: 90}
	res := Derate(params, 100, 0, 0, 30) // well below safe temp -> thermal factor 1
	if res.DeratedControl != 100 {
		t.Fatalf("want full output below safe temp, got %d", res.DeratedControl)
	}
}

func TestDerateTakesTheMoreRestrictiveFactor(t *testing.T) {
	params := DeratingParams{MaxSafeTemperature: 60, MaxAllowedTemperature: 90}
	// current_factor 0.5, thermal_factor somewhere mid-range above 0.5.
	res := Derate(params, 100, 2.0, 4.0, 65)
	if !approxEqual(res.MaxPowerRatio, 0.5, 0.02) {
		t.Fatalf("want current to be the binding factor at ~0.5, got %v", res.MaxPowerRatio)
	}
}

func TestThermalModelHeatsUnderLoadAndCoolsAtRest(t *testing.T) {
	m := NewThermalModel(ThermalParams{HeatingCoeff: 0.01, CoolingCoeff: 0.05, AmbientTemp: 25, Resistance: 1})
	start := m.Temp
	for i := 0; i < 100; i++ {
		m.Step(2.0)
	}
	if m.Temp <= start {
		t.Fatalf("expected temperature to rise under sustained current, got %v from %v", m.Temp, start)
	}
	hot := m.Temp
	for i := 0; i < 500; i++ {
		m.Step(0)
	}
	if m.Temp >= hot {
		t.Fatalf("expected temperature to fall back toward ambient at rest, got %v from %v", m.Temp, hot)
	}
}
