package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"previsit-intake/internal/domain/report"
)

// extractJSON strips a markdown code fence around model output, if any.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if _, after, ok := strings.Cut(text, "```json"); ok {
		body, _, _ := strings.Cut(after, "```")
		return strings.TrimSpace(body)
	}
	if _, after, ok := strings.Cut(text, "```"); ok {
		body, _, _ := strings.Cut(after, "```")
		return strings.TrimSpace(body)
	}
	return text
}

func parseReport(text string) (report.Content, error) {
	var content report.Content
	if err := json.Unmarshal([]byte(extractJSON(text)), &content); err != nil {
		return report.Content{}, fmt.Errorf("llm: report is not valid json: %w", err)
	}
	return content, nil
}
