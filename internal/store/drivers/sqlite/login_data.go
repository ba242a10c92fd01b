package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/clearlens/camwatch/internal/domain"
)

type loginDataRepo struct {
	db dbtx
}

func (r *loginDataRepo) CreateLoginData(ctx context.Context, d domain.LoginData) error {
	now := time.Now().UTC()

	var code sql.NullString
	if d.ConfirmationCode != nil {
		code = sql.NullString{String: *d.ConfirmationCode, Valid: true}
	}
	var expires sql.NullTime
	if d.CodeExpiresAt != nil {
		expires = sql.NullTime{Time: *d.CodeExpiresAt, Valid: true}
	}
	var recovery sql.NullString
	if d.RecoveryToken != nil {
		recovery = sql.NullString{String: *d.RecoveryToken, Valid: true}
	}
	var recoveryAt sql.NullTime
	if d.RecoveryGenAt != nil {
		recoveryAt = sql.NullTime{Time: *d.RecoveryGenAt, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO login_data (user_id, password_hash, confirmation_code, code_expires_at, recovery_token, recovery_gen_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.UserID, d.PasswordHash, code, expires, recovery, recoveryAt, now, now)
	return mapConflict(err)
}

func (r *loginDataRepo) GetLoginDataByUserID(ctx context.Context, userID string) (domain.LoginData, error) {
	var (
		d          domain.LoginData
		code       sql.NullString
		expires    sql.NullTime
		recovery   sql.NullString
		recoveryAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, password_hash, confirmation_code, code_expires_at, recovery_token, recovery_gen_at, created_at, updated_at
		 FROM login_data WHERE user_id = ?`, userID).
		Scan(&d.UserID, &d.PasswordHash, &code, &expires, &recovery, &recoveryAt, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return domain.LoginData{}, mapNotFound(err)
	}

	if code.Valid {
		d.ConfirmationCode = &code.String
	}
	if expires.Valid {
		d.CodeExpiresAt = &expires.Time
	}
	if recovery.Valid {
		d.RecoveryToken = &recovery.String
	}
	if recoveryAt.Valid {
		d.RecoveryGenAt = &recoveryAt.Time
	}
	return d, nil
}

func (r *loginDataRepo) UpdatePasswordHash(ctx context.Context, userID, newHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE login_data SET password_hash = ?, updated_at = ? WHERE user_id = ?`,
		newHash, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *loginDataRepo) SetConfirmationCode(ctx context.Context, userID, code string, expiresAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE login_data SET confirmation_code = ?, code_expires_at = ?, updated_at = ? WHERE user_id = ?`,
		code, expiresAt, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *loginDataRepo) UpdateRecoveryToken(ctx context.Context, userID, token string, generatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE login_data SET recovery_token = ?, recovery_gen_at = ?, updated_at = ? WHERE user_id = ?`,
		token, generatedAt, time.Now().UTC(), userID)
	if err != nil {
		return mapConflict(err)
	}
	return requireRow(res)
}

func (r *loginDataRepo) ClearConfirmationCode(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE login_data SET confirmation_code = NULL, code_expires_at = NULL, updated_at = ? WHERE user_id = ?`,
		time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}
