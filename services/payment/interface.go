package payment

import (
	"context"

	"go.uber.org/zap"

	invoiceRepo "mountify/database/repository/invoice"
	transactionRepo "mountify/database/repository/transaction"
	userRepo "mountify/database/repository/user"
	"mountify/models"
	"mountify/services/notification"
)

// RefundRequest is an admin-initiated reversal.
type RefundRequest struct {
	BookingID string
	Amount    float64 // 0 means refund the full captured amount
	Reason    string
	IssuedBy  string
	Notify    bool
}

// ManualChargeRequest is a one-shot charge of a saved payment method for
// out-of-band amounts, outside the authorize/capture pair.
type ManualChargeRequest struct {
	CustomerID  string
	Amount      float64
	Description string
	IssuedBy    string
}

// PaymentService drives the authorize/capture/refund lifecycle.
type PaymentService interface {
	Authorize(ctx context.Context, booking *models.Booking, customer *models.User) (*models.Transaction, error)
	Capture(ctx context.Context, bookingID string) (*models.Transaction, error)
	Refund(ctx context.Context, req RefundRequest) (*models.Refund, error)
	ChargeSavedMethod(ctx context.Context, req ManualChargeRequest) (*models.Transaction, error)
}

// DefaultPaymentService implements PaymentService.
type DefaultPaymentService struct {
	Repo      transactionRepo.TransactionRepository
	Invoices  invoiceRepo.InvoiceRepository
	Users     userRepo.UserRepository
	Processor Processor
	Notifier  notification.NotificationService
	Logger    *zap.Logger
}

func (svc *DefaultPaymentService) lookupCustomer(_ context.Context, customerID string) (*models.User, error) {
	customer, err := svc.Users.GetByID(customerID)
	if err != nil {
		return nil, newPaymentError("unknownCustomer", err.Error(), false)
	}
	if customer.PaymentMethodID == "" {
		return nil, newPaymentError("noPaymentMethod", "customer has no saved payment method", false)
	}
	return customer, nil
}
