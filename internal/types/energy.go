package types

// EnergyUnit selects how energy values are rendered. Stored values are
// always kcal; the unit only affects display-time formatting.
type EnergyUnit string

const (
	EnergyKcal EnergyUnit = "kcal"
	EnergyKJ   EnergyUnit = "kJ"
)

// Valid reports whether u is one of the supported units.
func (u EnergyUnit) Valid() bool {
	return u == EnergyKcal || u == EnergyKJ
}
