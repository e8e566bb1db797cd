package repos

import (
	"coursiva/internal/domain"

	"github.com/jmoiron/sqlx"
)

type DeliveryRepo struct{ db *sqlx.DB }

func NewDeliveryRepo(db *sqlx.DB) *DeliveryRepo { return &DeliveryRepo{db: db} }

func (r *DeliveryRepo) List() ([]domain.DeliveryOption, error) {
	var out []domain.DeliveryOption
	err := r.db.Select(&out, `SELECT id, label, price, delay FROM delivery_options ORDER BY price`)
	return out, err
}
