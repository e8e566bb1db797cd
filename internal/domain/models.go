package domain

type Order struct {
	ID            string  `db:"id" json:"id"`
	CustomerName  string  `db:"customer_name" json:"customerName"`
	CustomerEmail string  `db:"customer_email" json:"customerEmail"`
	DeliveryMode  string  `db:"delivery_mode" json:"deliveryMode"`
	Total         float64 `db:"total" json:"total"`
	Status        string  `db:"status" json:"status"`
	CreatedAt     string  `db:"created_at" json:"createdAt"`
}

type OrderItem struct {
	OrderID   string  `db:"order_id" json:"-"`
	ProductID string  `db:"product_id" json:"productId"`
	Label     string  `db:"label" json:"label"`
	Qty       int     `db:"qty" json:"qty"`
	Price     float64 `db:"price" json:"price"`
}

type Notification struct {
	ID        string `db:"id" json:"id"`
	UserEmail string `db:"user_email" json:"userEmail"`
	Title     string `db:"title" json:"title"`
	Body      string `db:"body" json:"body"`
	Read      bool   `db:"read" json:"read"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

type DeliveryOption struct {
	ID    string  `db:"id" json:"id"`
	Label string  `db:"label" json:"label"`
	Price float64 `db:"price" json:"price"`
	Delay string  `db:"delay" json:"delay"`
}

// Purchase links a user to a course they own.
type Purchase struct {
	UserEmail  string `db:"user_email" json:"userEmail"`
	CourseID   string `db:"course_id" json:"courseId"`
	CategoryID string `db:"category_id" json:"categoryId"`
	CourseName string `db:"course_name" json:"courseName"`
	CreatedAt  string `db:"created_at" json:"createdAt"`
}

// QuizAnswer records one answered question; re-answering upserts.
type QuizAnswer struct {
	UserEmail string `db:"user_email" json:"userEmail"`
	CourseID  string `db:"course_id" json:"courseId"`
	QuizID    string `db:"quiz_id" json:"quizId"`
	Answer    string `db:"answer" json:"answer"`
	Correct   bool   `db:"correct" json:"correct"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

type AppLog struct {
	ID        string `db:"id" json:"id"`
	UserEmail string `db:"user_email" json:"userEmail"`
	Event     string `db:"event" json:"event"`
	Detail    string `db:"detail" json:"detail"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}
