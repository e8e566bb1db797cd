package services

import (
	"errors"
	"time"

	"coursiva/internal/domain"
	"coursiva/internal/repos"

	"github.com/google/uuid"
)

var ErrOrderBusy = errors.New("service occupe, reessayez")

// OrderService registers orders. Writes to the orders table are serialized
// behind a timed lock: concurrent registrations queue up to LockWait, then
// fail with ErrOrderBusy. This is the only critical section in the system.
type OrderService struct {
	Orders   *repos.OrderRepo
	LockWait time.Duration

	lock chan struct{}
}

func NewOrderService(orders *repos.OrderRepo) *OrderService {
	s := &OrderService{Orders: orders, LockWait: 30 * time.Second, lock: make(chan struct{}, 1)}
	s.lock <- struct{}{}
	return s
}

type OrderLine struct {
	ProductID string
	Label     string
	Qty       int
	Price     float64
}

func (s *OrderService) Register(name, email, deliveryMode string, lines []OrderLine) (string, error) {
	if name == "" || email == "" {
		return "", errors.New("champs obligatoires manquants")
	}
	if len(lines) == 0 {
		return "", errors.New("commande vide")
	}

	select {
	case <-s.lock:
		defer func() { s.lock <- struct{}{} }()
	case <-time.After(s.LockWait):
		return "", ErrOrderBusy
	}

	total := 0.0
	for i := range lines {
		if lines[i].Qty < 1 {
			lines[i].Qty = 1
		}
		total += lines[i].Price * float64(lines[i].Qty)
	}

	orderID := uuid.NewString()
	if err := s.Orders.Create(domain.Order{
		ID:            orderID,
		CustomerName:  name,
		CustomerEmail: email,
		DeliveryMode:  deliveryMode,
		Total:         total,
	}); err != nil {
		return "", err
	}
	for _, l := range lines {
		if err := s.Orders.InsertItem(domain.OrderItem{
			OrderID:   orderID,
			ProductID: l.ProductID,
			Label:     l.Label,
			Qty:       l.Qty,
			Price:     l.Price,
		}); err != nil {
			return "", err
		}
	}
	return orderID, nil
}
