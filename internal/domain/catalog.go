package domain

import "strings"

// SentinelUnconfigured marks registry rows whose endpoint has not been set
// up yet. Such rows stay visible in listCategories but never take part in
// catalog aggregation.
const SentinelUnconfigured = "A_CONFIGURER"

// Category is one row of the aggregator's registry. Each active category is
// backed by its own categoryd instance.
type Category struct {
	ID            string `db:"id" json:"id"`
	DisplayName   string `db:"display_name" json:"displayName"`
	TableID       string `db:"table_id" json:"tableId"`
	EndpointURL   string `db:"endpoint_url" json:"endpointUrl"`
	ImageURL      string `db:"image_url" json:"imageUrl"`
	ContactNumber string `db:"contact_number" json:"contactNumber"`
	CreatedAt     string `db:"created_at" json:"-"`
	UpdatedAt     string `db:"updated_at" json:"-"`
}

// Active reports whether the row points at a real, configured endpoint.
func (c Category) Active() bool {
	return c.EndpointURL != "" && !strings.HasPrefix(c.EndpointURL, SentinelUnconfigured)
}

// Course is the base row of a category's courses table.
type Course struct {
	ID              string  `db:"id" json:"id"`
	Name            string  `db:"name" json:"name"`
	Summary         string  `db:"summary" json:"summary"`
	TotalDuration   string  `db:"total_duration" json:"totalDuration"`
	Level           string  `db:"level" json:"level"`
	Price           float64 `db:"price" json:"price"`
	VideoURL        string  `db:"video_url" json:"videoUrl"`
	CoverImageURL   string  `db:"cover_image_url" json:"coverImageUrl"`
	FreemiumWindow  string  `db:"freemium_window" json:"freemiumWindow"`
	Objectives      string  `db:"objectives" json:"objectives"`
	Prerequisites   string  `db:"prerequisites" json:"prerequisites"`
	TargetAudience  string  `db:"target_audience" json:"targetAudience"`
	InstructorName  string  `db:"instructor_name" json:"-"`
	InstructorTitle string  `db:"instructor_title" json:"-"`
	InstructorBio   string  `db:"instructor_bio" json:"-"`
	Rating          float64 `db:"rating" json:"rating"`
	ReviewCount     int     `db:"review_count" json:"reviewCount"`
}

type Instructor struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Bio   string `json:"bio"`
}

// ModuleRow / ChapterRow / QuizRow are the flat table shapes before assembly.
type ModuleRow struct {
	ID       string `db:"id"`
	CourseID string `db:"course_id"`
	Name     string `db:"name"`
	Order    string `db:"sort_order"`
}

type ChapterRow struct {
	ID          string `db:"id"`
	ModuleID    string `db:"module_id"`
	Name        string `db:"name"`
	Duration    string `db:"duration"`
	ResourceRef string `db:"resource_ref"`
	Order       string `db:"sort_order"`
}

type QuizRow struct {
	ID            string `db:"id"`
	ParentID      string `db:"parent_id"`
	Question      string `db:"question"`
	Option1       string `db:"option1"`
	Option2       string `db:"option2"`
	Option3       string `db:"option3"`
	Option4       string `db:"option4"`
	CorrectOption string `db:"correct_option"`
}

// Quiz is the nested JSON shape of a single question.
type Quiz struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption string   `json:"correctOption"`
}

// Chapter is a module chapter with its attached questions.
type Chapter struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Duration    string `json:"duration"`
	ResourceRef string `json:"resourceRef"`
	Quiz        []Quiz `json:"quiz"`
}

// Module carries its ordered chapters plus its own end-of-module quiz.
type Module struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Chapitres []Chapter `json:"chapitres"`
	Quiz      []Quiz    `json:"quiz"`
}

// CourseSheet is the fully assembled, nested view of one course. It is
// rebuilt from the five backing tables on every request and never persisted.
type CourseSheet struct {
	Course
	Instructor Instructor `json:"instructor"`
	Modules    []Module   `json:"modules"`
	// CategoryName is stamped by the aggregator when merging.
	CategoryName string `json:"categoryName,omitempty"`
}

// Snapshot is what getPublicCatalog returns and what the client cache holds.
type Snapshot struct {
	Categories   []Category    `json:"categories"`
	Products     []CourseSheet `json:"products"`
	CacheVersion string        `json:"cacheVersion"`
}
