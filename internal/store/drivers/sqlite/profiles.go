package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/clearlens/camwatch/internal/domain"
)

type profilesRepo struct {
	db dbtx
}

func (r *profilesRepo) CreateProfile(ctx context.Context, p domain.Profile) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (user_id, name, surname, patronymic, avatar_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.Name, p.Surname, mapStringNull(p.Patronymic), mapStringNull(p.AvatarURL), now, now)
	return mapConflict(err)
}

func (r *profilesRepo) GetProfileByUserID(ctx context.Context, userID string) (domain.Profile, error) {
	var (
		p          domain.Profile
		patronymic sql.NullString
		avatarURL  sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, name, surname, patronymic, avatar_url, created_at, updated_at
		 FROM profiles WHERE user_id = ?`, userID).
		Scan(&p.UserID, &p.Name, &p.Surname, &patronymic, &avatarURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Profile{}, mapNotFound(err)
	}

	p.Patronymic = mapNullString(patronymic)
	p.AvatarURL = mapNullString(avatarURL)
	return p, nil
}

func (r *profilesRepo) UpdateProfile(ctx context.Context, p domain.Profile) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET name = ?, surname = ?, patronymic = ?, avatar_url = ?, updated_at = ?
		 WHERE user_id = ?`,
		p.Name, p.Surname, mapStringNull(p.Patronymic), mapStringNull(p.AvatarURL), time.Now().UTC(), p.UserID)
	if err != nil {
		return err
	}
	return requireRow(res)
}
