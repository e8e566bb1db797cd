package repos

import (
	"coursiva/internal/domain"

	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

// IsUniqueViolation reports whether err is the store rejecting a duplicate
// email. Uniqueness is enforced by the unique index, not by a
// check-then-insert in application code.
func IsUniqueViolation(err error) bool {
	if e, ok := err.(*sqlite.Error); ok {
		// SQLITE_CONSTRAINT_UNIQUE (2067) / SQLITE_CONSTRAINT_PRIMARYKEY (1555)
		return e.Code() == 2067 || e.Code() == 1555
	}
	return false
}

func (r *UserRepo) Create(u domain.User) error {
	_, err := r.DB.Exec(`
	  INSERT INTO users(id,email,name,password_hash,phone,address)
	  VALUES(?,?,?,?,?,?)
	`, u.ID, u.Email, u.Name, u.Hash, u.Phone, u.Address)
	return err
}

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
	  SELECT id,email,name,password_hash,phone,address
	  FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UpdateProfile(email, name, phone, address string) error {
	_, err := r.DB.Exec(`
	  UPDATE users SET name=?, phone=?, address=?, updated_at=CURRENT_TIMESTAMP
	  WHERE LOWER(email)=LOWER(?)`, name, phone, address, email)
	return err
}

func (r *UserRepo) BindSession(sid, userID string) error {
	_, err := r.DB.Exec(`INSERT INTO sessions(id,user_id,last_seen)
	                      VALUES(?,?,CURRENT_TIMESTAMP)
	                      ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id,last_seen=CURRENT_TIMESTAMP`, sid, userID)
	return err
}

func (r *UserRepo) SessionUser(sid string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
	  SELECT u.id,u.email,u.name,u.password_hash,u.phone,u.address
	  FROM sessions s
	  JOIN users u ON u.id=s.user_id
	  WHERE s.id=?`, sid)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET user_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}
