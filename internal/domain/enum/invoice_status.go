package enum

// InvoiceStatus represents the payment state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusUnpaid InvoiceStatus = "UNPAID"
	// InvoiceStatusPaid is terminal; there is no transition back to unpaid
	InvoiceStatusPaid InvoiceStatus = "PAID"
)

// IsValid checks whether the status is a known value
func (s InvoiceStatus) IsValid() bool {
	return s == InvoiceStatusUnpaid || s == InvoiceStatusPaid
}
