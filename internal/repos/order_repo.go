package repos

import (
	"coursiva/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

func (r *OrderRepo) Create(o domain.Order) error {
	_, err := r.db.Exec(`
	  INSERT INTO orders(id, customer_name, customer_email, delivery_mode, total, status, created_at)
	  VALUES(?,?,?,?,?,'ENREGISTREE',CURRENT_TIMESTAMP)
	`, o.ID, o.CustomerName, o.CustomerEmail, o.DeliveryMode, o.Total)
	return err
}

func (r *OrderRepo) InsertItem(it domain.OrderItem) error {
	_, err := r.db.Exec(`
	  INSERT INTO order_items(order_id, product_id, label, qty, price)
	  VALUES(?,?,?,?,?)
	`, it.OrderID, it.ProductID, it.Label, it.Qty, it.Price)
	return err
}

func (r *OrderRepo) Get(orderID string) (domain.Order, []domain.OrderItem, error) {
	var o domain.Order
	if err := r.db.Get(&o, `
	  SELECT id, customer_name, customer_email, delivery_mode, total, status, created_at
	  FROM orders WHERE id=?`, orderID); err != nil {
		return domain.Order{}, nil, err
	}
	var items []domain.OrderItem
	if err := r.db.Select(&items, `
	  SELECT order_id, product_id, label, qty, price
	  FROM order_items WHERE order_id=? ORDER BY label`, orderID); err != nil {
		return domain.Order{}, nil, err
	}
	return o, items, nil
}

func (r *OrderRepo) ListByEmail(email string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT id, customer_name, customer_email, delivery_mode, total, status, created_at
	  FROM orders
	  WHERE LOWER(customer_email)=LOWER(?)
	  ORDER BY datetime(created_at) DESC
	`, email)
	return out, err
}
