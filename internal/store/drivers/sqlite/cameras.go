package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/clearlens/camwatch/internal/domain"
)

type camerasRepo struct {
	db dbtx
}

const cameraColumns = `id, name, description, contamination, date, url, created_at, updated_at`

func scanCamera(scan func(dest ...any) error) (domain.Camera, error) {
	var (
		c           domain.Camera
		description sql.NullString
		url         sql.NullString
	)
	err := scan(&c.ID, &c.Name, &description, &c.Contamination, &c.Date, &url, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Camera{}, err
	}

	c.Description = mapNullString(description)
	c.URL = mapNullString(url)
	return c, nil
}

func (r *camerasRepo) GetCameraByID(ctx context.Context, id string) (domain.Camera, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+cameraColumns+` FROM cameras WHERE id = ?`, id)
	c, err := scanCamera(row.Scan)
	if err != nil {
		return domain.Camera{}, mapNotFound(err)
	}
	return c, nil
}

func (r *camerasRepo) ListCameras(ctx context.Context, limit, offset int) ([]domain.Camera, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+cameraColumns+` FROM cameras ORDER BY name, id LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cameras []domain.Camera
	for rows.Next() {
		c, err := scanCamera(rows.Scan)
		if err != nil {
			return nil, err
		}
		cameras = append(cameras, c)
	}
	return cameras, rows.Err()
}

func (r *camerasRepo) CountCameras(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cameras`).Scan(&count)
	return count, err
}

func (r *camerasRepo) CreateCamera(ctx context.Context, c domain.Camera) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cameras (id, name, description, contamination, date, url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, mapStringNull(c.Description), c.Contamination, c.Date, mapStringNull(c.URL), now, now)
	return mapConflict(err)
}

func (r *camerasRepo) UpdateContamination(ctx context.Context, cameraID string, contamination float64, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE cameras SET contamination = ?, date = ?, updated_at = ? WHERE id = ?`,
		contamination, at, time.Now().UTC(), cameraID)
	if err != nil {
		return err
	}
	return requireRow(res)
}
