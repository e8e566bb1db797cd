package domain

type User struct {
	ID      string `db:"id" json:"id"`
	Email   string `db:"email" json:"email"`
	Name    string `db:"name" json:"name"`
	Hash    string `db:"password_hash" json:"-"`
	Phone   string `db:"phone" json:"phone"`
	Address string `db:"address" json:"address"`
}
