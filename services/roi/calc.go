package roi

import "math"

// Plan economics used by the ROI estimate.
const (
	PlanPrice      = 297.0
	RecoveryFactor = 0.7
)

// Estimate is the computed ROI breakdown for a clinic's figures.
type Estimate struct {
	PerdidaMensual       float64 `json:"perdidaMensual"`
	RecuperacionEstimada float64 `json:"recuperacionEstimada"`
	ROI                  float64 `json:"roi"`
}

// Calculate derives the monthly loss, the recoverable share and the ROI
// percentage over the plan price, rounded to the nearest integer.
func Calculate(monthlyPatients, averageTicket, conversionLoss float64) Estimate {
	perdida := monthlyPatients * (conversionLoss / 100) * averageTicket
	recuperacion := perdida * RecoveryFactor
	return Estimate{
		PerdidaMensual:       perdida,
		RecuperacionEstimada: recuperacion,
		ROI:                  math.Round((recuperacion - PlanPrice) / PlanPrice * 100),
	}
}
