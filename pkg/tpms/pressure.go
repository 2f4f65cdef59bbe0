package tpms

import (
	"math"
	"strconv"
	"strings"
)

type PressureUnit string

const (
	UnitBar PressureUnit = "bar"
	UnitPSI PressureUnit = "psi"
	UnitKPa PressureUnit = "kpa"
)

// valid bar range is (0, MaxPressureBar]
const MaxPressureBar = 99.99

var toBar = map[PressureUnit]float64{
	UnitBar: 1.0,
	UnitPSI: 0.0689476,
	UnitKPa: 0.01,
}

var fromBar = map[PressureUnit]float64{
	UnitBar: 1.0,
	UnitPSI: 14.5038,
	UnitKPa: 100.0,
}

// ParsePressureUnit accepts bar, psi and kPa in any letter case.
func ParsePressureUnit(raw string) (PressureUnit, error) {
	unit := PressureUnit(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := toBar[unit]; !ok {
		return "", validationError("Pressure unit must be 'bar', 'psi', or 'kPa'")
	}
	return unit, nil
}

func ParsePressureValue(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, validationError("Pressure must be a valid number")
	}
	return v, nil
}

// ConvertPressure converts value from one unit to another through bar,
// rejecting anything outside (0, 99.99] bar. If either unit is empty the value
// is only checked to be a finite number and returned unchanged.
func ConvertPressure(value float64, from, to string) (float64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, validationError("Pressure must be a valid number")
	}
	if from == "" || to == "" {
		return value, nil
	}

	fromUnit, err := ParsePressureUnit(from)
	if err != nil {
		return 0, err
	}
	toUnit, err := ParsePressureUnit(to)
	if err != nil {
		return 0, err
	}

	bar := value * toBar[fromUnit]
	if bar <= 0 || bar > MaxPressureBar {
		return 0, validationError("Pressure in %s must be between 0 and %.2f when converted to bar", fromUnit, MaxPressureBar)
	}
	return bar * fromBar[toUnit], nil
}

// roundPressure keeps two decimals, the precision readings are stored with.
func roundPressure(v float64) float64 {
	return math.Round(v*100) / 100
}
