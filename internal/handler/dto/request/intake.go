package request

import (
	"previsit-intake/internal/usecase"
)

type AnswerRequest struct {
	EventID  string `json:"event_id" binding:"required"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type GenerateReportRequest struct {
	EventID    string `json:"event_id" binding:"required"`
	Regenerate bool   `json:"regenerate,omitempty"`
}

// WorkflowProcessRequest drives one step of the unified workflow. Free-text
// UserMessage is not interpreted and is rejected by the handler.
type WorkflowProcessRequest struct {
	UserMessage    string                `json:"user_message,omitempty"`
	Booking        *CreateBookingRequest `json:"booking,omitempty"`
	EventID        string                `json:"event_id,omitempty"`
	Question       string                `json:"question,omitempty"`
	Answer         string                `json:"answer,omitempty"`
	GenerateReport bool                  `json:"generate_report,omitempty"`
	Regenerate     bool                  `json:"regenerate,omitempty"`
}

func (r WorkflowProcessRequest) ToInput() usecase.ProcessInput {
	in := usecase.ProcessInput{
		BookingID:      r.EventID,
		Question:       r.Question,
		Answer:         r.Answer,
		GenerateReport: r.GenerateReport,
		Regenerate:     r.Regenerate,
	}
	if r.Booking != nil {
		b := r.Booking.ToInput()
		in.Booking = &b
	}
	return in
}
