package repos

import (
	"coursiva/internal/domain"

	"github.com/jmoiron/sqlx"
)

type AppLogRepo struct{ db *sqlx.DB }

func NewAppLogRepo(db *sqlx.DB) *AppLogRepo { return &AppLogRepo{db: db} }

func (r *AppLogRepo) Append(l domain.AppLog) error {
	_, err := r.db.Exec(`
	  INSERT INTO app_logs(id, user_email, event, detail, created_at)
	  VALUES(?,?,?,?,CURRENT_TIMESTAMP)
	`, l.ID, l.UserEmail, l.Event, l.Detail)
	return err
}

func (r *AppLogRepo) ListLatest(limit int) ([]domain.AppLog, error) {
	if limit <= 0 {
		limit = 200
	}
	var out []domain.AppLog
	err := r.db.Select(&out, `
	  SELECT id, COALESCE(user_email,'') AS user_email, event, COALESCE(detail,'') AS detail, created_at
	  FROM app_logs
	  ORDER BY datetime(created_at) DESC
	  LIMIT ?
	`, limit)
	return out, err
}
