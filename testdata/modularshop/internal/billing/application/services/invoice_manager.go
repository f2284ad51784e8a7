package services

import billingdomain "example.com/modularshop/internal/billing/domain"

type InvoiceManager struct {
	issued []billingdomain.Invoice
}

func (m *InvoiceManager) Issue(inv billingdomain.Invoice) {
	m.issued = append(m.issued, inv)
}

func (m *InvoiceManager) Issued() int {
	return len(m.issued)
}
