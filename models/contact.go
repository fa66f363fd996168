package models

import "time"

// ROIFigures carries the computed ROI inputs a lead submitted. All fields are
// nullable so the cleanup cascade can clear them without deleting the Contact.
type ROIFigures struct {
	MonthlyPatients *float64 `bson:"monthlyPatients" json:"monthlyPatients"`
	AverageTicket   *float64 `bson:"averageTicket" json:"averageTicket"`
	ConversionLoss  *float64 `bson:"conversionLoss" json:"conversionLoss"`
	ROI             *float64 `bson:"roi" json:"roi"`
}

// Complete reports whether every ROI subfield is populated.
func (r *ROIFigures) Complete() bool {
	if r == nil {
		return false
	}
	return r.MonthlyPatients != nil && r.AverageTicket != nil && r.ConversionLoss != nil && r.ROI != nil
}

// Contact is a lead's submitted details, optionally tied to a Booking or to a
// bare session token. Multiple contacts per email are allowed; read paths pick
// the most recent one matching the lookup key.
type Contact struct {
	ID           string      `bson:"id" json:"id"`
	Nombre       string      `bson:"nombre" json:"nombre"`
	Email        string      `bson:"email" json:"email"`
	Telefono     string      `bson:"telefono" json:"telefono"`
	Clinica      string      `bson:"clinica" json:"clinica"`
	Mensaje      string      `bson:"mensaje,omitempty" json:"mensaje,omitempty"`
	BookingID    string      `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	SessionToken string      `bson:"sessionToken,omitempty" json:"sessionToken,omitempty"`
	ROI          *ROIFigures `bson:"roi,omitempty" json:"roi,omitempty"`
	CreatedAt    time.Time   `bson:"createdAt" json:"createdAt"`
}
