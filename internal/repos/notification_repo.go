package repos

import (
	"coursiva/internal/domain"

	"github.com/jmoiron/sqlx"
)

type NotificationRepo struct{ db *sqlx.DB }

func NewNotificationRepo(db *sqlx.DB) *NotificationRepo { return &NotificationRepo{db: db} }

func (r *NotificationRepo) ListByEmail(email string) ([]domain.Notification, error) {
	var out []domain.Notification
	err := r.db.Select(&out, `
	  SELECT id, user_email, title, body, read, created_at
	  FROM notifications
	  WHERE LOWER(user_email)=LOWER(?)
	  ORDER BY datetime(created_at) DESC
	`, email)
	return out, err
}

func (r *NotificationRepo) Create(n domain.Notification) error {
	_, err := r.db.Exec(`
	  INSERT INTO notifications(id, user_email, title, body, read, created_at)
	  VALUES(?,?,?,?,0,CURRENT_TIMESTAMP)
	`, n.ID, n.UserEmail, n.Title, n.Body)
	return err
}

// MarkRead flips one notification; unknown ids are a no-op, not an error.
func (r *NotificationRepo) MarkRead(id string) error {
	_, err := r.db.Exec(`UPDATE notifications SET read=1 WHERE id=?`, id)
	return err
}

func (r *NotificationRepo) UnreadCount(email string) (int, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COUNT(*) FROM notifications
	  WHERE LOWER(user_email)=LOWER(?) AND read=0`, email)
	return n, err
}
