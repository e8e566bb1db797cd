package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// OpenDB opens the core backend database (accounts, orders, notifications,
// deliveries, learning) and ensures schema plus baseline seeds.
func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureCoreSchema(db); err != nil {
		return nil, err
	}
	if err := seedCoreIfEmpty(db); err != nil {
		return nil, err
	}
	return db, nil
}

// OpenRegistryDB opens the aggregator's database: the category registry plus
// the app_state table that carries the cache-version token.
func OpenRegistryDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureRegistrySchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

// OpenCategoryDB opens a categoryd instance's database: the five course
// tables this category joins on every getProducts call.
func OpenCategoryDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureCategorySchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureCoreSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Accounts. Email uniqueness lives in the store, not in application code.
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  phone TEXT DEFAULT '',
  address TEXT DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  customer_name TEXT,
  customer_email TEXT,
  delivery_mode TEXT,
  total NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'ENREGISTREE',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

CREATE TABLE IF NOT EXISTS order_items(
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL,
  label TEXT,
  qty INTEGER NOT NULL,
  price NUMERIC NOT NULL,
  PRIMARY KEY (order_id, product_id)
);

-- Notifications
CREATE TABLE IF NOT EXISTS notifications(
  id TEXT PRIMARY KEY,
  user_email TEXT NOT NULL,
  title TEXT NOT NULL,
  body TEXT,
  read INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(LOWER(user_email));

-- Delivery options
CREATE TABLE IF NOT EXISTS delivery_options(
  id TEXT PRIMARY KEY,
  label TEXT NOT NULL,
  price NUMERIC NOT NULL DEFAULT 0,
  delay TEXT
);

-- Learning: owned courses and answered quizzes
CREATE TABLE IF NOT EXISTS purchases(
  user_email TEXT NOT NULL,
  course_id TEXT NOT NULL,
  category_id TEXT,
  course_name TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (user_email, course_id)
);

CREATE TABLE IF NOT EXISTS quiz_answers(
  user_email TEXT NOT NULL,
  course_id TEXT NOT NULL,
  quiz_id TEXT NOT NULL,
  answer TEXT,
  correct INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (user_email, course_id, quiz_id)
);

-- Client-side events forwarded for audit
CREATE TABLE IF NOT EXISTS app_logs(
  id TEXT PRIMARY KEY,
  user_email TEXT,
  event TEXT NOT NULL,
  detail TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_app_logs_created_at ON app_logs(created_at);

-- Per-service key/value configuration
CREATE TABLE IF NOT EXISTS settings(
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`
	_, err := db.Exec(schema)
	return err
}

func ensureRegistrySchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS registry(
  id TEXT PRIMARY KEY,
  display_name TEXT NOT NULL,
  table_id TEXT DEFAULT '',
  endpoint_url TEXT DEFAULT '',
  image_url TEXT DEFAULT '',
  contact_number TEXT DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS app_state(
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS settings(
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`
	_, err := db.Exec(schema)
	return err
}

func ensureCategorySchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS courses(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  summary TEXT DEFAULT '',
  total_duration TEXT DEFAULT '',
  level TEXT DEFAULT '',
  price NUMERIC NOT NULL DEFAULT 0,
  video_url TEXT DEFAULT '',
  cover_image_url TEXT DEFAULT '',
  freemium_window TEXT DEFAULT '',
  objectives TEXT DEFAULT '',
  prerequisites TEXT DEFAULT '',
  target_audience TEXT DEFAULT '',
  instructor_name TEXT DEFAULT '',
  instructor_title TEXT DEFAULT '',
  instructor_bio TEXT DEFAULT '',
  rating NUMERIC NOT NULL DEFAULT 0,
  review_count INTEGER NOT NULL DEFAULT 0
);

-- sort_order is free text on purpose: rows imported from sheets carry
-- whatever the editor typed. The assembly pass decides how bad values sort.
CREATE TABLE IF NOT EXISTS modules(
  id TEXT PRIMARY KEY,
  course_id TEXT NOT NULL,
  name TEXT NOT NULL,
  sort_order TEXT DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_modules_course ON modules(course_id);

CREATE TABLE IF NOT EXISTS chapters(
  id TEXT PRIMARY KEY,
  module_id TEXT NOT NULL,
  name TEXT NOT NULL,
  duration TEXT DEFAULT '',
  resource_ref TEXT DEFAULT '',
  sort_order TEXT DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_chapters_module ON chapters(module_id);

CREATE TABLE IF NOT EXISTS chapter_quizzes(
  id TEXT PRIMARY KEY,
  parent_id TEXT NOT NULL,
  question TEXT NOT NULL,
  option1 TEXT DEFAULT '',
  option2 TEXT DEFAULT '',
  option3 TEXT DEFAULT '',
  option4 TEXT DEFAULT '',
  correct_option TEXT DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_chapter_quizzes_parent ON chapter_quizzes(parent_id);

CREATE TABLE IF NOT EXISTS module_quizzes(
  id TEXT PRIMARY KEY,
  parent_id TEXT NOT NULL,
  question TEXT NOT NULL,
  option1 TEXT DEFAULT '',
  option2 TEXT DEFAULT '',
  option3 TEXT DEFAULT '',
  option4 TEXT DEFAULT '',
  correct_option TEXT DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_module_quizzes_parent ON module_quizzes(parent_id);
`
	_, err := db.Exec(schema)
	return err
}

// seedCoreIfEmpty inserts demo delivery options and one demo account so a
// fresh install answers something. Idempotent; safe to run every start.
func seedCoreIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM delivery_options`); err != nil {
		return err
	}
	if n == 0 {
		log.Println("[seed] inserting default delivery options")
		tx := db.MustBegin()
		tx.MustExec(`INSERT INTO delivery_options(id,label,price,delay) VALUES
		  ('standard','Livraison standard',4.90,'3-5 jours'),
		  ('express','Livraison express',9.90,'24-48h'),
		  ('retrait','Retrait sur place',0,'immediat')`)
		if err := tx.Commit(); err != nil {
			return err
		}
	}

	h, _ := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), 12)
	_, err := db.Exec(`
		INSERT INTO users(id,email,name,password_hash)
		VALUES('u-demo','demo@coursiva.test','Demo',?)
		ON CONFLICT(email) DO NOTHING
	`, string(h))
	return err
}
