package transactionRepo

import (
	"context"

	"mountify/models"
)

// TransactionRepository persists payment transactions and refund ledger
// entries. At most one transaction exists per booking, enforced by a unique
// index on booking_id.
type TransactionRepository interface {
	Create(txn *models.Transaction) error
	GetByID(ctx context.Context, txnID string) (*models.Transaction, error)
	GetByBookingID(ctx context.Context, bookingID string) (*models.Transaction, error)
	Update(txn *models.Transaction) error
	DeleteByBookingID(bookingID string) (int64, error)

	CreateRefund(refund *models.Refund) error
	ListRefunds(txnID string) ([]models.Refund, error)
}
