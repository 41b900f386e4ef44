package llm

import (
	"fmt"
	"strings"
	"time"

	"previsit-intake/internal/domain/intake"
	"previsit-intake/internal/usecase/shared"
)

const questionSystemPrompt = `You are a medical assistant collecting pre-visit information from a patient.

On the very first turn, before any other question, ask:
"Before you leave, I would like to ask you a few questions as to why you are visiting today. Would you like to continue?"
If the patient agreed, the next question is:
"Could you tell me the main reason for your visit today?"

After that, ask ONE follow-up question based on the answers so far. Keep it
conversational and medically relevant, and do not repeat topics already covered.

Reply with the question only.`

const firstQuestionInstruction = "This is the first interaction. Ask the consent question."

const reportSystemPrompt = `You are a medical assistant turning a patient's pre-visit answers into a structured report for the doctor.

Return only a JSON object with these fields:
- "primary_concern": 2-4 sentences on the reason for the visit (symptoms, duration, severity, context).
- "medications": array of {"name", "dosage", "frequency", "duration"} for every medication, vitamin or supplement mentioned.
- "medical_history": a paragraph covering chronic conditions, surgeries, hospitalizations, family history and allergies.
- "ai_insights": 3-5 sentences on possible diagnoses, red flags and recommendations for the doctor.
- "suggested_questions": 5-8 questions the doctor should ask during the visit.
- "notes": anything else the doctor should know before the appointment.

Use empty strings or empty arrays when the conversation has no information for a field.`

func formatQA(pair intake.QAPair) string {
	return fmt.Sprintf("Q: %s\nA: %s", pair.Question, pair.Answer)
}

// questionTurns is the user-side conversation sent for the next question.
func questionTurns(history []intake.QAPair) []string {
	turns := make([]string, 0, len(history)+1)
	for _, pair := range history {
		turns = append(turns, formatQA(pair))
	}
	if len(history) == 0 {
		turns = append(turns, firstQuestionInstruction)
	}
	return turns
}

func reportPrompt(subject shared.ReportSubject, history []intake.QAPair) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Patient: %s\n", subject.PatientName)
	if subject.DoctorName != "" {
		fmt.Fprintf(&sb, "Doctor: %s\n", subject.DoctorName)
	}
	fmt.Fprintf(&sb, "Appointment: %s (%s)\n\nQ&A History:\n", subject.Start.Format(time.RFC3339), subject.Timezone)
	for i, pair := range history {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(formatQA(pair))
	}
	return sb.String()
}
