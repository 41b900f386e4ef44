package repository

import (
	"context"

	"previsit-intake/internal/domain/intake"
	"previsit-intake/internal/infra"
)

type IntakeRepository struct {
	db DBTX
}

func NewIntakeRepository(db DBTX) *IntakeRepository {
	return &IntakeRepository{db: db}
}

func (r *IntakeRepository) History(ctx context.Context, bookingID string) ([]intake.QAPair, error) {
	rows, err := r.db.Query(ctx,
		`SELECT question, answer FROM intake_answers WHERE booking_id = $1 ORDER BY position`,
		bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load intake history", err)
	}
	defer rows.Close()

	history := []intake.QAPair{}
	for rows.Next() {
		var pair intake.QAPair
		if err := rows.Scan(&pair.Question, &pair.Answer); err != nil {
			return nil, infra.WrapRepoErr("failed to read intake answer", err)
		}
		history = append(history, pair)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate intake history", err)
	}
	return history, nil
}

// Append stores the answer at a zero-based position; a taken position is a
// duplicate key.
func (r *IntakeRepository) Append(ctx context.Context, bookingID string, position int, pair intake.QAPair) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO intake_answers (booking_id, position, question, answer) VALUES ($1, $2, $3, $4)`,
		bookingID, position, pair.Question, pair.Answer)
	if err == nil {
		return nil
	}
	if pgErrCode(err) == pgErrCodeUniqueViolation {
		return infra.WrapRepoErr("intake position already recorded", err, infra.KindDuplicateKey)
	}
	return infra.WrapRepoErr("failed to record intake answer", err)
}
