package repos

import (
	"coursiva/internal/domain"

	"github.com/jmoiron/sqlx"
)

type LearningRepo struct{ db *sqlx.DB }

func NewLearningRepo(db *sqlx.DB) *LearningRepo { return &LearningRepo{db: db} }

// AddPurchase records course ownership. Buying a course twice is a no-op.
func (r *LearningRepo) AddPurchase(p domain.Purchase) error {
	_, err := r.db.Exec(`
	  INSERT INTO purchases(user_email, course_id, category_id, course_name, created_at)
	  VALUES(?,?,?,?,CURRENT_TIMESTAMP)
	  ON CONFLICT(user_email, course_id) DO NOTHING
	`, p.UserEmail, p.CourseID, p.CategoryID, p.CourseName)
	return err
}

func (r *LearningRepo) Purchases(email string) ([]domain.Purchase, error) {
	var out []domain.Purchase
	err := r.db.Select(&out, `
	  SELECT user_email, course_id, category_id, course_name, created_at
	  FROM purchases
	  WHERE LOWER(user_email)=LOWER(?)
	  ORDER BY datetime(created_at) DESC
	`, email)
	return out, err
}

// SaveAnswer upserts one quiz answer; re-answering replaces the previous one.
func (r *LearningRepo) SaveAnswer(a domain.QuizAnswer) error {
	correct := 0
	if a.Correct {
		correct = 1
	}
	_, err := r.db.Exec(`
	  INSERT INTO quiz_answers(user_email, course_id, quiz_id, answer, correct, created_at)
	  VALUES(?,?,?,?,?,CURRENT_TIMESTAMP)
	  ON CONFLICT(user_email, course_id, quiz_id) DO UPDATE SET
	    answer=excluded.answer, correct=excluded.correct, created_at=CURRENT_TIMESTAMP
	`, a.UserEmail, a.CourseID, a.QuizID, a.Answer, correct)
	return err
}

func (r *LearningRepo) Answers(email, courseID string) ([]domain.QuizAnswer, error) {
	var out []domain.QuizAnswer
	err := r.db.Select(&out, `
	  SELECT user_email, course_id, quiz_id, answer, correct, created_at
	  FROM quiz_answers
	  WHERE LOWER(user_email)=LOWER(?) AND course_id=?
	`, email, courseID)
	return out, err
}
