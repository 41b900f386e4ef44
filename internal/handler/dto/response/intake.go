package response

import (
	"time"

	"previsit-intake/internal/domain/intake"
	"previsit-intake/internal/pkg/errs"
	"previsit-intake/internal/usecase"
	"previsit-intake/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type QAPairResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func FromQAPairs(history []intake.QAPair) []QAPairResponse {
	res := make([]QAPairResponse, 0, len(history))
	for _, qa := range history {
		res = append(res, QAPairResponse{Question: qa.Question, Answer: qa.Answer})
	}
	return res
}

type MedicationResponse struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	Duration  string `json:"duration,omitempty"`
}

type ReportResponse struct {
	EventID            string               `json:"event_id"`
	Title              string               `json:"title"`
	PatientName        string               `json:"patient_name"`
	DoctorName         string               `json:"doctor_name,omitempty"`
	PrimaryConcern     string               `json:"primary_concern"`
	Medications        []MedicationResponse `json:"medications" copier:"-"`
	MedicalHistory     string               `json:"medical_history"`
	AIInsights         string               `json:"ai_insights"`
	SuggestedQuestions []string             `json:"suggested_questions"`
	Notes              string               `json:"notes"`
	Generated          bool                 `json:"generated"`
	GeneratedAt        *time.Time           `json:"generated_at,omitempty"`
}

func FromReportView(v *queries.ReportView) (*ReportResponse, error) {
	if v == nil {
		return nil, nil
	}
	var res ReportResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, errs.Wrapf(err, "map report %s", v.BookingID)
	}
	res.EventID = v.BookingID
	res.Medications = make([]MedicationResponse, 0, len(v.Medications))
	for _, m := range v.Medications {
		res.Medications = append(res.Medications, MedicationResponse(m))
	}
	if res.SuggestedQuestions == nil {
		res.SuggestedQuestions = []string{}
	}
	return &res, nil
}

type QuestionResponse struct {
	EventID       string  `json:"event_id"`
	Question      *string `json:"question"`
	QuestionCount int     `json:"question_count"`
	IsComplete    bool    `json:"is_complete"`
}

func FromNextQuestion(eventID string, r *queries.NextQuestionResult) *QuestionResponse {
	return &QuestionResponse{
		EventID:       eventID,
		Question:      r.Question,
		QuestionCount: r.Count,
		IsComplete:    r.IsComplete,
	}
}

type AnswerResponse struct {
	Success       bool    `json:"success"`
	QuestionCount int     `json:"question_count"`
	IsComplete    bool    `json:"is_complete"`
	NextQuestion  *string `json:"next_question"`
}

type HistoryResponse struct {
	EventID       string           `json:"event_id"`
	QAHistory     []QAPairResponse `json:"qa_history"`
	Report        *ReportResponse  `json:"report"`
	QuestionCount int              `json:"question_count"`
	IsComplete    bool             `json:"is_complete"`
}

func FromHistoryView(v *queries.HistoryView) (*HistoryResponse, error) {
	report, err := FromReportView(v.Report)
	if err != nil {
		return nil, err
	}
	return &HistoryResponse{
		EventID:       v.BookingID,
		QAHistory:     FromQAPairs(v.History),
		Report:        report,
		QuestionCount: v.Count,
		IsComplete:    v.IsComplete,
	}, nil
}

type GenerateReportResponse struct {
	Success  bool            `json:"success"`
	Memoized bool            `json:"memoized"`
	Report   *ReportResponse `json:"report"`
}

type WorkflowStateResponse struct {
	EventID       string           `json:"event_id"`
	State         string           `json:"state"`
	Exists        bool             `json:"exists"`
	QuestionCount int              `json:"question_count"`
	IsComplete    bool             `json:"is_complete"`
	ReportExists  bool             `json:"report_exists"`
	Progress      string           `json:"progress"`
	Booking       *BookingResponse `json:"booking,omitempty"`
	QAHistory     []QAPairResponse `json:"qa_history"`
	Report        *ReportResponse  `json:"report,omitempty"`
}

func FromStateView(v *usecase.StateView) (*WorkflowStateResponse, error) {
	if v == nil {
		return nil, nil
	}
	b, err := FromBookingView(v.Booking)
	if err != nil {
		return nil, err
	}
	report, err := FromReportView(v.Report)
	if err != nil {
		return nil, err
	}
	return &WorkflowStateResponse{
		EventID:       v.BookingID,
		State:         v.State.String(),
		Exists:        v.Exists,
		QuestionCount: v.Count,
		IsComplete:    v.IsComplete,
		ReportExists:  v.ReportExists,
		Progress:      v.Progress,
		Booking:       b,
		QAHistory:     FromQAPairs(v.History),
		Report:        report,
	}, nil
}

type WorkflowProcessResponse struct {
	Status        string                 `json:"status"`
	EventID       string                 `json:"event_id"`
	Booking       *BookingResponse       `json:"booking,omitempty"`
	NextQuestion  *string                `json:"next_question,omitempty"`
	QuestionCount int                    `json:"question_count"`
	IsComplete    bool                   `json:"is_complete"`
	Report        *ReportResponse        `json:"report,omitempty"`
	WorkflowState *WorkflowStateResponse `json:"workflow_state,omitempty"`
	Message       string                 `json:"message,omitempty"`
}

func FromProcessResult(r *usecase.ProcessResult) (*WorkflowProcessResponse, error) {
	b, err := FromBookingView(r.Booking)
	if err != nil {
		return nil, err
	}
	report, err := FromReportView(r.Report)
	if err != nil {
		return nil, err
	}
	state, err := FromStateView(r.State)
	if err != nil {
		return nil, err
	}
	return &WorkflowProcessResponse{
		Status:        string(r.Status),
		EventID:       r.BookingID,
		Booking:       b,
		NextQuestion:  r.NextQuestion,
		QuestionCount: r.Count,
		IsComplete:    r.IsComplete,
		Report:        report,
		WorkflowState: state,
		Message:       r.Message,
	}, nil
}
