package battery

import "robotfw/x/mathx"

// Params are one battery's voltage thresholds.
type Params struct {
	DetectionV float32
	MinV       float32
	MaxV       float32
}

const (
	lowEnterPercent = 10
	lowExitPercent  = 15
)

// Reading is one battery's derived state for a tick.
type Reading struct {
	Present    bool
	LevelPct   float32
	Low        bool
	FilteredV  float32
}

// Monitor tracks one battery across ticks: its EMA filter and the
// low-battery hysteresis latch.
type Monitor struct {
	Params Params
	ema    EMA
	low    bool
}

// Update applies the EMA filter to a fresh voltage sample, maps it to a
// presence/level/low-battery Reading, and updates the hysteresis latch.
func (m *Monitor) Update(sampleV float32) Reading {
	filtered := m.ema.Update(sampleV)

	if filtered <= m.Params.DetectionV {
		m.low = false
		return Reading{Present: false, LevelPct: 0, Low: false, FilteredV: filtered}
	}

	level := mapConstrained(filtered, m.Params.MinV, m.Params.MaxV, 0, 100)

	switch {
	case !m.low && level < lowEnterPercent:
		m.low = true
	case m.low && level > lowExitPercent:
		m.low = false
	}

	return Reading{Present: true, LevelPct: level, Low: m.low, FilteredV: filtered}
}

func mapConstrained(x, inLo, inHi, outLo, outHi float32) float32 {
	if inHi == inLo {
		return outLo
	}
	t := (x - inLo) / (inHi - inLo)
	v := outLo + t*(outHi-outLo)
	return mathx.Clamp(v, outLo, outHi)
}
