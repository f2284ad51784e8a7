package domain

import "fmt"

type OrderStore struct {
	orders map[OrderID]*Order
}

var _ OrderRepository = (*OrderStore)(nil)

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[OrderID]*Order)}
}

func (s *OrderStore) Get(id OrderID) (*Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %s not found", id)
	}
	return order, nil
}

func (s *OrderStore) Save(order *Order) error {
	s.orders[order.ID] = order
	return nil
}
