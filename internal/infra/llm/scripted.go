package llm

import (
	"context"
	"fmt"
	"strings"

	"previsit-intake/internal/domain/intake"
	"previsit-intake/internal/domain/report"
	"previsit-intake/internal/usecase/shared"
)

// scriptedQuestions are asked in order when no model is configured.
var scriptedQuestions = [intake.MaxQuestions]string{
	"Before you leave, I would like to ask you a few questions as to why you are visiting today. Would you like to continue?",
	"Could you tell me the main reason for your visit today?",
	"How long have you been experiencing this, and has it changed over time?",
	"Are you currently taking any medications, vitamins or supplements? Please include dosage and how often.",
	"Do you have any chronic conditions, past surgeries or hospitalizations?",
	"Do you have any allergies to medications or anything else?",
	"Is there anything else you would like the doctor to know before your appointment?",
}

// ScriptedQuestionGenerator walks a fixed question list.
type ScriptedQuestionGenerator struct{}

func NewScriptedQuestionGenerator() shared.QuestionGenerator {
	return ScriptedQuestionGenerator{}
}

func (ScriptedQuestionGenerator) NextQuestion(_ context.Context, history []intake.QAPair) (string, error) {
	if len(history) >= len(scriptedQuestions) {
		return "", fmt.Errorf("llm: no scripted question after %d answers", len(history))
	}
	return scriptedQuestions[len(history)], nil
}

// ScriptedReportGenerator assembles a report from the answers by position.
type ScriptedReportGenerator struct{}

func NewScriptedReportGenerator() shared.ReportGenerator {
	return ScriptedReportGenerator{}
}

func (ScriptedReportGenerator) Generate(_ context.Context, subject shared.ReportSubject, history []intake.QAPair) (report.Content, error) {
	answer := func(i int) string {
		if i < len(history) {
			return strings.TrimSpace(history[i].Answer)
		}
		return ""
	}

	content := report.Content{
		PrimaryConcern: answer(1),
		Medications:    []report.Medication{},
		MedicalHistory: strings.TrimSpace(strings.Join(nonEmpty(answer(4), answer(5)), " ")),
		SuggestedQuestions: []string{
			"When did your symptoms first start?",
			"What makes the symptoms better or worse?",
			"How are the symptoms affecting your daily activities?",
		},
		Notes: strings.TrimSpace(strings.Join(nonEmpty(answer(2), answer(6)), " ")),
	}
	if meds := answer(3); meds != "" && !isNegative(meds) {
		content.Medications = append(content.Medications, report.Medication{Name: meds})
	}
	if subject.PatientName != "" {
		content.AIInsights = fmt.Sprintf("Summary prepared from %d intake answers for %s.", len(history), subject.PatientName)
	}
	return content, nil
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func isNegative(s string) bool {
	switch strings.ToLower(strings.Trim(s, " .!")) {
	case "no", "none", "nope", "n/a":
		return true
	}
	return false
}
