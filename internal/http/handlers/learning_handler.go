package handlers

import (
	"coursiva/internal/domain"
	applog "coursiva/internal/log"
	"coursiva/internal/services"
	"coursiva/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type LearningHandler struct {
	Learning *services.LearningService
}

func (h *LearningHandler) GetCoursAchetes(c *fiber.Ctx) error {
	email, okE := validate.Email(c.Query("email"))
	if !okE {
		return fail(c, "email invalide")
	}
	purchases, err := h.Learning.PurchasedCourses(email)
	if err != nil {
		applog.Error(c, "learning.purchases", err, nil)
		return fail(c, "lecture des cours impossible")
	}
	if purchases == nil {
		purchases = []domain.Purchase{}
	}
	return ok(c, purchases)
}

func (h *LearningHandler) GetProgressionCours(c *fiber.Ctx) error {
	email, okE := validate.Email(c.Query("email"))
	if !okE {
		return fail(c, "email invalide")
	}
	courseID, okID := validate.ID(c.Query("courseId"))
	if !okID {
		return fail(c, "courseId invalide")
	}
	p, err := h.Learning.CourseProgress(email, courseID)
	if err != nil {
		applog.Error(c, "learning.progress", err, nil)
		return fail(c, "lecture de la progression impossible")
	}
	return ok(c, p)
}

func (h *LearningHandler) GetSeniorDashboardData(c *fiber.Ctx) error {
	email, okE := validate.Email(c.Query("email"))
	if !okE {
		return fail(c, "email invalide")
	}
	d, err := h.Learning.SeniorDashboard(email)
	if err != nil {
		applog.Error(c, "learning.dashboard", err, nil)
		return fail(c, "lecture du tableau de bord impossible")
	}
	return ok(c, d)
}

type purchasePayload struct {
	Email      string `json:"email"`
	CourseID   string `json:"courseId"`
	CategoryID string `json:"categoryId"`
	CourseName string `json:"courseName"`
}

func (h *LearningHandler) AcheterCours(c *fiber.Ctx) error {
	var p purchasePayload
	if err := c.BodyParser(&p); err != nil {
		return fail(c, "corps de requete invalide")
	}
	email, okE := validate.Email(p.Email)
	if !okE {
		return fail(c, "email invalide")
	}
	courseID, okID := validate.ID(p.CourseID)
	if !okID {
		return fail(c, "courseId invalide")
	}
	if err := h.Learning.Buy(email, courseID, p.CategoryID, p.CourseName); err != nil {
		applog.Error(c, "learning.buy", err, nil)
		return fail(c, "achat impossible")
	}
	applog.Audit(c, "learning.buy", map[string]any{"email": email, "course_id": courseID})
	return ok(c, fiber.Map{"courseId": courseID})
}

type answerPayload struct {
	Email         string `json:"email"`
	CourseID      string `json:"courseId"`
	QuizID        string `json:"quizId"`
	Answer        string `json:"answer"`
	CorrectOption string `json:"correctOption"`
}

func (h *LearningHandler) EnregistrerReponseQuiz(c *fiber.Ctx) error {
	var p answerPayload
	if err := c.BodyParser(&p); err != nil {
		return fail(c, "corps de requete invalide")
	}
	email, okE := validate.Email(p.Email)
	if !okE {
		return fail(c, "email invalide")
	}
	correct, err := h.Learning.SaveQuizAnswer(email, p.CourseID, p.QuizID, p.Answer, p.CorrectOption)
	if err != nil {
		applog.Error(c, "learning.answer", err, nil)
		return fail(c, err.Error())
	}
	return ok(c, fiber.Map{"correct": correct})
}
