package application

import (
	billingdomain "example.com/modularshop/internal/billing/domain"
	"example.com/modularshop/internal/platform/validation"
)

type RefundRules struct {
	validation.AbstractValidator
}

func (v *RefundRules) Check(inv billingdomain.Invoice) bool {
	if inv.Number == "" {
		v.AddFailure("invoice number is required")
	}
	return len(v.Failures()) == 0
}
