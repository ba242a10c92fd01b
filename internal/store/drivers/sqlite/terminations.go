package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/clearlens/camwatch/internal/domain"
)

type terminationsRepo struct {
	db dbtx
}

func (r *terminationsRepo) CreateTermination(ctx context.Context, t domain.Termination) error {
	var reason sql.NullString
	if t.Reason != "" {
		reason = sql.NullString{String: t.Reason, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_terminations (user_id, reason, terminated_at, created_at)
		 VALUES (?, ?, ?, ?)`,
		t.UserID, reason, t.TerminatedAt, time.Now().UTC())
	return mapConflict(err)
}

func (r *terminationsRepo) GetTerminationByUserID(ctx context.Context, userID string) (domain.Termination, error) {
	var (
		t      domain.Termination
		reason sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, reason, terminated_at, created_at
		 FROM user_terminations WHERE user_id = ?`, userID).
		Scan(&t.UserID, &reason, &t.TerminatedAt, &t.CreatedAt)
	if err != nil {
		return domain.Termination{}, mapNotFound(err)
	}

	if reason.Valid {
		t.Reason = reason.String
	}
	return t, nil
}
