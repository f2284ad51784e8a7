package domain

import (
	"example.com/modularshop/internal/orders/contracts"
	ordersdomain "example.com/modularshop/internal/orders/domain"
)

type Invoice struct {
	Number  string
	Order   *ordersdomain.Order
	Summary contracts.OrderSummary
}
