package persistence

import (
	billingdomain "example.com/modularshop/internal/billing/domain"
	platform "example.com/modularshop/internal/platform/persistence"
)

type InvoiceMapping struct{}

var _ platform.EntityTypeConfiguration[billingdomain.Invoice] = (*InvoiceMapping)(nil)

func (m *InvoiceMapping) Configure(builder *platform.EntityBuilder[billingdomain.Invoice]) {
	builder.Table("invoices")
}
