package report

import (
	"time"
)

type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
}

// Content is what a report generator produces.
type Content struct {
	PrimaryConcern     string       `json:"primary_concern"`
	Medications        []Medication `json:"medications"`
	MedicalHistory     string       `json:"medical_history"`
	AIInsights         string       `json:"ai_insights"`
	SuggestedQuestions []string     `json:"suggested_questions"`
	Notes              string       `json:"notes"`
}

type Report struct {
	bookingID   string
	content     Content
	generatedAt time.Time
}

func NewReport(bookingID string, content Content, generatedAt time.Time) *Report {
	if content.Medications == nil {
		content.Medications = []Medication{}
	}
	if content.SuggestedQuestions == nil {
		content.SuggestedQuestions = []string{}
	}
	return &Report{bookingID: bookingID, content: content, generatedAt: generatedAt}
}

func (r *Report) BookingID() string      { return r.bookingID }
func (r *Report) Content() Content       { return r.content }
func (r *Report) GeneratedAt() time.Time { return r.generatedAt }

func (r *Report) PrimaryConcern() string       { return r.content.PrimaryConcern }
func (r *Report) Medications() []Medication    { return r.content.Medications }
func (r *Report) MedicalHistory() string       { return r.content.MedicalHistory }
func (r *Report) AIInsights() string           { return r.content.AIInsights }
func (r *Report) SuggestedQuestions() []string { return r.content.SuggestedQuestions }
func (r *Report) Notes() string                { return r.content.Notes }
