package services

import (
	"errors"

	"coursiva/internal/domain"
	"coursiva/internal/repos"
)

// LearningService covers purchased courses, quiz answers and the dashboard.
type LearningService struct {
	Learning      *repos.LearningRepo
	Notifications *repos.NotificationRepo
}

func NewLearningService(learning *repos.LearningRepo, notifs *repos.NotificationRepo) *LearningService {
	return &LearningService{Learning: learning, Notifications: notifs}
}

func (s *LearningService) Buy(email, courseID, categoryID, courseName string) error {
	if email == "" || courseID == "" {
		return errors.New("email et courseId obligatoires")
	}
	return s.Learning.AddPurchase(domain.Purchase{
		UserEmail:  email,
		CourseID:   courseID,
		CategoryID: categoryID,
		CourseName: courseName,
	})
}

func (s *LearningService) PurchasedCourses(email string) ([]domain.Purchase, error) {
	return s.Learning.Purchases(email)
}

// Progress summarizes one course: answered questions and how many were right.
type Progress struct {
	CourseID string              `json:"courseId"`
	Answered int                 `json:"answered"`
	Correct  int                 `json:"correct"`
	Answers  []domain.QuizAnswer `json:"answers"`
}

func (s *LearningService) CourseProgress(email, courseID string) (Progress, error) {
	answers, err := s.Learning.Answers(email, courseID)
	if err != nil {
		return Progress{}, err
	}
	p := Progress{CourseID: courseID, Answered: len(answers), Answers: answers}
	for _, a := range answers {
		if a.Correct {
			p.Correct++
		}
	}
	return p, nil
}

// SaveQuizAnswer records an answer; correctness is computed server-side by
// comparing against the expected option the caller's course sheet carries.
func (s *LearningService) SaveQuizAnswer(email, courseID, quizID, answer, correctOption string) (bool, error) {
	if email == "" || courseID == "" || quizID == "" {
		return false, errors.New("champs obligatoires manquants")
	}
	correct := correctOption != "" && answer == correctOption
	err := s.Learning.SaveAnswer(domain.QuizAnswer{
		UserEmail: email,
		CourseID:  courseID,
		QuizID:    quizID,
		Answer:    answer,
		Correct:   correct,
	})
	return correct, err
}

// Dashboard is the one-call payload the senior home screen renders.
type Dashboard struct {
	Purchases   []domain.Purchase `json:"purchases"`
	UnreadCount int               `json:"unreadCount"`
}

func (s *LearningService) SeniorDashboard(email string) (Dashboard, error) {
	purchases, err := s.Learning.Purchases(email)
	if err != nil {
		return Dashboard{}, err
	}
	unread, err := s.Notifications.UnreadCount(email)
	if err != nil {
		// dashboard still renders without the badge
		unread = 0
	}
	return Dashboard{Purchases: purchases, UnreadCount: unread}, nil
}
