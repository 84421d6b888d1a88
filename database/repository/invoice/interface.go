package invoiceRepo

import (
	"context"

	"mountify/models"
)

// InvoiceRepository persists invoices and invoice modifications.
type InvoiceRepository interface {
	CreateModification(mod *models.InvoiceModification) error
	GetModification(ctx context.Context, modID string) (*models.InvoiceModification, error)
	UpdateModification(mod *models.InvoiceModification) error
	ListModifications(bookingID string) ([]models.InvoiceModification, error)
	// ApprovedDelta sums approved modification amounts for a booking. Capture
	// call sites read this immediately before charging.
	ApprovedDelta(ctx context.Context, bookingID string) (float64, error)

	CreateInvoice(inv *models.Invoice) error
	GetInvoiceByBookingID(bookingID string) (*models.Invoice, error)
}
