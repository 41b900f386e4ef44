package request

import (
	"strings"
	"time"

	"previsit-intake/internal/usecase/commands"
)

type CreateBookingRequest struct {
	ID          string    `json:"id,omitempty"`
	PatientName string    `json:"patient_name"`
	PhoneNumber string    `json:"phone_number"`
	DoctorName  string    `json:"doctor_name,omitempty"`
	Start       time.Time `json:"start" binding:"required"`
	End         time.Time `json:"end" binding:"required"`
	Timezone    string    `json:"timezone,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

func (r CreateBookingRequest) ToInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		ID:          strings.TrimSpace(r.ID),
		PatientName: r.PatientName,
		PhoneNumber: r.PhoneNumber,
		DoctorName:  r.DoctorName,
		Start:       r.Start,
		End:         r.End,
		Timezone:    r.Timezone,
		Notes:       r.Notes,
	}
}

type AvailabilityRequest struct {
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
}
