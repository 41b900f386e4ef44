package intake

import (
	"previsit-intake/internal/pkg/errs"
)

// MaxQuestions is the fixed length of every pre-visit intake.
const MaxQuestions = 7

type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Session is the ordered answer log for one booking.
type Session struct {
	bookingID string
	history   []QAPair
}

func NewSession(bookingID string, history []QAPair) *Session {
	h := make([]QAPair, len(history))
	copy(h, history)
	return &Session{bookingID: bookingID, history: h}
}

func (s *Session) Count() int { return len(s.history) }

func (s *Session) IsComplete() bool {
	return IsComplete(len(s.history))
}

// Append records the next answer. It refuses once the session is complete.
func (s *Session) Append(pair QAPair) error {
	if s.IsComplete() {
		return errs.Wrapf(errs.ErrIntakeComplete, "booking %s already has %d answers", s.bookingID, len(s.history))
	}
	s.history = append(s.history, pair)
	return nil
}

func IsComplete(count int) bool {
	return count >= MaxQuestions
}
