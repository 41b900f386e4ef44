package response

import (
	"time"

	"previsit-intake/internal/pkg/errs"
	"previsit-intake/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID          string    `json:"id"`
	PatientName string    `json:"patient_name"`
	PhoneNumber string    `json:"phone_number"`
	DoctorName  string    `json:"doctor_name,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Timezone    string    `json:"timezone"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	if v == nil {
		return nil, nil
	}
	var res BookingResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, errs.Wrapf(err, "map booking %s", v.ID)
	}
	return &res, nil
}

func FromBookingViews(vs []*queries.BookingView) ([]*BookingResponse, error) {
	res := make([]*BookingResponse, 0, len(vs))
	for _, v := range vs {
		b, err := FromBookingView(v)
		if err != nil {
			return nil, err
		}
		res = append(res, b)
	}
	return res, nil
}

type CreateBookingResponse struct {
	Success bool             `json:"success"`
	EventID string           `json:"event_id"`
	Booking *BookingResponse `json:"booking"`
}

type AvailabilityResponse struct {
	Available bool               `json:"available"`
	Conflicts []*BookingResponse `json:"conflicts"`
}

func FromAvailability(a *queries.Availability) (*AvailabilityResponse, error) {
	conflicts, err := FromBookingViews(a.Conflicts)
	if err != nil {
		return nil, err
	}
	return &AvailabilityResponse{Available: a.Available, Conflicts: conflicts}, nil
}

type CalendarResponse struct {
	Month  string             `json:"month"`
	Events []*BookingResponse `json:"events"`
}

type SlotResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type SuggestionsResponse struct {
	Day   string         `json:"day"`
	Slots []SlotResponse `json:"slots"`
}

func FromSlotViews(day string, vs []queries.SlotView) *SuggestionsResponse {
	slots := make([]SlotResponse, 0, len(vs))
	for _, v := range vs {
		slots = append(slots, SlotResponse(v))
	}
	return &SuggestionsResponse{Day: day, Slots: slots}
}
