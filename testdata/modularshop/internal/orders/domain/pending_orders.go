package domain

import "example.com/modularshop/internal/platform/specs"

type PendingOrders struct {
	specs.Specification[Order]
}

func (PendingOrders) IsSatisfiedBy(order Order) bool {
	return order.Status == StatusPending
}
