package tpms

// Classification is the outcome of classifying one converted reading.
type Classification struct {
	Ratio     float64
	AlertType string
}

// DeviationRatio is value / optimal, both in the tire's stored unit.
func DeviationRatio(value, optimal float64) (float64, error) {
	if optimal <= 0 {
		return 0, validationError("Optimal pressure must be greater than 0")
	}
	return value / optimal, nil
}

func Classify(catalog *AlertCatalog, value, optimal float64) (Classification, error) {
	ratio, err := DeviationRatio(value, optimal)
	if err != nil {
		return Classification{}, err
	}
	return Classification{Ratio: ratio, AlertType: catalog.Classify(ratio)}, nil
}
