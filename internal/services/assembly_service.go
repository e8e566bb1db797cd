package services

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"coursiva/internal/domain"
	applog "coursiva/internal/log"
	"coursiva/internal/repos"
)

// AssemblyService turns the five flat category tables into nested course
// sheets. Pure read-side join, rebuilt on every request.
type AssemblyService struct {
	Courses *repos.CourseRepo
}

func NewAssemblyService(courses *repos.CourseRepo) *AssemblyService {
	return &AssemblyService{Courses: courses}
}

// Assemble produces one CourseSheet per course row. Each table is loaded
// once, indexed by foreign key, then nested. A table that fails to load
// contributes an empty slice rather than failing the whole assembly.
func (s *AssemblyService) Assemble() ([]domain.CourseSheet, error) {
	courses, err := s.Courses.Courses()
	if err != nil {
		// no course base, no catalog
		return nil, err
	}

	modules := loadOrEmpty("modules", s.Courses.Modules)
	chapters := loadOrEmpty("chapters", s.Courses.Chapters)
	chapterQuizzes := loadOrEmpty("chapter_quizzes", s.Courses.ChapterQuizzes)
	moduleQuizzes := loadOrEmpty("module_quizzes", s.Courses.ModuleQuizzes)

	// FK indexes, built once before the join passes
	modulesByCourse := make(map[string][]domain.ModuleRow)
	for _, m := range modules {
		modulesByCourse[m.CourseID] = append(modulesByCourse[m.CourseID], m)
	}
	chaptersByModule := make(map[string][]domain.ChapterRow)
	for _, c := range chapters {
		chaptersByModule[c.ModuleID] = append(chaptersByModule[c.ModuleID], c)
	}
	quizzesByChapter := make(map[string][]domain.QuizRow)
	for _, q := range chapterQuizzes {
		quizzesByChapter[q.ParentID] = append(quizzesByChapter[q.ParentID], q)
	}
	quizzesByModule := make(map[string][]domain.QuizRow)
	for _, q := range moduleQuizzes {
		quizzesByModule[q.ParentID] = append(quizzesByModule[q.ParentID], q)
	}

	out := make([]domain.CourseSheet, 0, len(courses))
	for _, course := range courses {
		sheet := domain.CourseSheet{
			Course: course,
			Instructor: domain.Instructor{
				Name:  course.InstructorName,
				Title: course.InstructorTitle,
				Bio:   course.InstructorBio,
			},
			Modules: []domain.Module{},
		}

		mods := modulesByCourse[course.ID]
		sortByOrder(mods, func(m domain.ModuleRow) string { return m.Order })
		for _, m := range mods {
			mod := domain.Module{
				ID:        m.ID,
				Name:      m.Name,
				Chapitres: []domain.Chapter{},
				Quiz:      toQuizzes(quizzesByModule[m.ID]),
			}
			chs := chaptersByModule[m.ID]
			sortByOrder(chs, func(c domain.ChapterRow) string { return c.Order })
			for _, ch := range chs {
				mod.Chapitres = append(mod.Chapitres, domain.Chapter{
					ID:          ch.ID,
					Name:        ch.Name,
					Duration:    ch.Duration,
					ResourceRef: ch.ResourceRef,
					Quiz:        toQuizzes(quizzesByChapter[ch.ID]),
				})
			}
			sheet.Modules = append(sheet.Modules, mod)
		}
		out = append(out, sheet)
	}
	return out, nil
}

func loadOrEmpty[T any](table string, load func() ([]T, error)) []T {
	rows, err := load()
	if err != nil {
		applog.Event("assembly.load.skip", err, map[string]any{"table": table})
		return nil
	}
	return rows
}

// sortByOrder sorts ascending by the numeric sort_order column. Missing or
// non-numeric values sort last (+Inf); ties keep original row order.
func sortByOrder[T any](rows []T, key func(T) string) {
	sort.SliceStable(rows, func(i, j int) bool {
		return orderValue(key(rows[i])) < orderValue(key(rows[j]))
	})
}

func orderValue(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.Inf(1)
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) {
		return math.Inf(1)
	}
	return n
}

func toQuizzes(rows []domain.QuizRow) []domain.Quiz {
	out := make([]domain.Quiz, 0, len(rows))
	for _, q := range rows {
		out = append(out, domain.Quiz{
			ID:            q.ID,
			Question:      q.Question,
			Options:       []string{q.Option1, q.Option2, q.Option3, q.Option4},
			CorrectOption: q.CorrectOption,
		})
	}
	return out
}
