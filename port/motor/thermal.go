package motor

// ThermalParams are the per-channel coefficients of the integrating thermal
// model.
type ThermalParams struct {
	HeatingCoeff float32
	CoolingCoeff float32
	AmbientTemp  float32
	Resistance   float32
}

// ThermalModel integrates one channel's temperature estimate from its
// measured current, one tick at a time:
//
//	ΔT = heating_coeff * I^2 * R - cooling_coeff * (T - T_ambient)
type ThermalModel struct {
	Params ThermalParams
	Temp   float32
}

// NewThermalModel starts the model at ambient temperature.
func NewThermalModel(p ThermalParams) *ThermalModel {
	return &ThermalModel{Params: p, Temp: p.AmbientTemp}
}

// Step integrates one tick given the channel's measured current.
func (m *ThermalModel) Step(current float32) {
	heating := m.Params.HeatingCoeff * current * current * m.Params.Resistance
	cooling := m.Params.CoolingCoeff * (m.Temp - m.Params.AmbientTemp)
	m.Temp += heating - cooling
}
