package application

import (
	"example.com/modularshop/internal/orders/contracts"
	"example.com/modularshop/internal/orders/domain"
	"example.com/modularshop/internal/platform/messaging"
)

type PlaceOrderCommand struct {
	Customer string
	Lines    []contracts.OrderLineDto
}

type PlaceOrder struct {
	store *domain.OrderStore
}

var _ messaging.RequestHandler[PlaceOrderCommand, contracts.OrderSummary] = (*PlaceOrder)(nil)

func NewPlaceOrder(store *domain.OrderStore) *PlaceOrder {
	return &PlaceOrder{store: store}
}

func (h *PlaceOrder) Handle(cmd PlaceOrderCommand) (contracts.OrderSummary, error) {
	order := &domain.Order{
		ID:       domain.OrderID("ord-" + cmd.Customer),
		Customer: cmd.Customer,
		Status:   domain.StatusPending,
	}
	if err := h.store.Save(order); err != nil {
		return contracts.OrderSummary{}, err
	}
	return contracts.OrderSummary{ID: string(order.ID)}, nil
}
