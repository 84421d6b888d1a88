package invoice

import (
	"context"

	"go.uber.org/zap"

	bookingRepo "mountify/database/repository/booking"
	invoiceRepo "mountify/database/repository/invoice"
	transactionRepo "mountify/database/repository/transaction"
	"mountify/events"
	"mountify/models"
	"mountify/services/notification"
)

// ModificationInput is a proposed price delta for an existing booking.
// Amount may be negative for a goodwill discount.
type ModificationInput struct {
	BookingID  string  `json:"bookingId"`
	Amount     float64 `json:"amount"`
	Reason     string  `json:"reason"`
	ProposedBy string  `json:"-"`
}

// InvoiceService manages post-booking price modifications and invoices.
type InvoiceService interface {
	ProposeModification(ctx context.Context, in ModificationInput) (*models.InvoiceModification, error)
	MarkViewed(ctx context.Context, modID, customerID string) error
	Approve(ctx context.Context, modID, customerID string) (*models.InvoiceModification, error)
	Reject(ctx context.Context, modID, customerID string) (*models.InvoiceModification, error)
	ListForBooking(bookingID string) ([]models.InvoiceModification, error)
	GenerateInvoice(ctx context.Context, bookingID string) (*models.Invoice, error)
}

// DefaultInvoiceService implements InvoiceService.
type DefaultInvoiceService struct {
	Repo     invoiceRepo.InvoiceRepository
	Bookings bookingRepo.BookingRepository
	Txns     transactionRepo.TransactionRepository
	Notifier notification.NotificationService
	Hub      *events.Hub
	Logger   *zap.Logger
}
