package analysis

// Impact classifies the strength and direction of a correlation.
type Impact string

const (
	ImpactPositive Impact = "positive-impact"
	ImpactNegative Impact = "negative-impact"
	ImpactMinimal  Impact = "minimal-impact"
)

// ClassifyImpact bands a correlation coefficient. The thresholds are
// exclusive: exactly 0.3 or -0.3 is minimal-impact.
func ClassifyImpact(r float64) Impact {
	switch {
	case r > 0.3:
		return ImpactPositive
	case r < -0.3:
		return ImpactNegative
	default:
		return ImpactMinimal
	}
}

// Description returns the report wording for a rainfall impact band.
func (i Impact) Description() string {
	switch i {
	case ImpactPositive:
		return "Rainfall has a positive impact on crop yield"
	case ImpactNegative:
		return "Too much rainfall may reduce crop yield"
	default:
		return "Rainfall has minimal impact on crop yield"
	}
}
