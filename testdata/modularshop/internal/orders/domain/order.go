package domain

import sharedkernel "example.com/modularshop/internal/shared_kernel"

const StatusPending = "pending"

type OrderID string

type Order struct {
	ID       OrderID
	Customer string
	Status   string
	Total    sharedkernel.Money
}
