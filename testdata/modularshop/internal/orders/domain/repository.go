package domain

type OrderRepository interface {
	Get(id OrderID) (*Order, error)
	Save(order *Order) error
}
