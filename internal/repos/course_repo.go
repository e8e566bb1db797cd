package repos

import (
	"coursiva/internal/domain"

	"github.com/jmoiron/sqlx"
)

// CourseRepo bulk-loads the five category tables. One SELECT per table per
// request; the join happens in memory in the assembly service.
type CourseRepo struct{ db *sqlx.DB }

func NewCourseRepo(db *sqlx.DB) *CourseRepo { return &CourseRepo{db: db} }

func (r *CourseRepo) Courses() ([]domain.Course, error) {
	var out []domain.Course
	err := r.db.Select(&out, `
	  SELECT id, name, summary, total_duration, level, price, video_url,
	         cover_image_url, freemium_window, objectives, prerequisites,
	         target_audience, instructor_name, instructor_title, instructor_bio,
	         rating, review_count
	  FROM courses
	`)
	return out, err
}

func (r *CourseRepo) Modules() ([]domain.ModuleRow, error) {
	var out []domain.ModuleRow
	err := r.db.Select(&out, `SELECT id, course_id, name, sort_order FROM modules`)
	return out, err
}

func (r *CourseRepo) Chapters() ([]domain.ChapterRow, error) {
	var out []domain.ChapterRow
	err := r.db.Select(&out, `SELECT id, module_id, name, duration, resource_ref, sort_order FROM chapters`)
	return out, err
}

func (r *CourseRepo) ChapterQuizzes() ([]domain.QuizRow, error) {
	var out []domain.QuizRow
	err := r.db.Select(&out, `
	  SELECT id, parent_id, question, option1, option2, option3, option4, correct_option
	  FROM chapter_quizzes
	`)
	return out, err
}

func (r *CourseRepo) ModuleQuizzes() ([]domain.QuizRow, error) {
	var out []domain.QuizRow
	err := r.db.Select(&out, `
	  SELECT id, parent_id, question, option1, option2, option3, option4, correct_option
	  FROM module_quizzes
	`)
	return out, err
}
