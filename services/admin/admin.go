package admin

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	bookingRepo "mountify/database/repository/booking"
	transactionRepo "mountify/database/repository/transaction"
	userRepo "mountify/database/repository/user"
	"mountify/models"
	"mountify/services/payment"
)

// AdminService exposes the back-office operations: refunds, manual charges
// and test-data cleanup.
type AdminService interface {
	ProcessRefund(ctx context.Context, req payment.RefundRequest) (*models.Refund, error)
	ChargeSavedMethod(ctx context.Context, req payment.ManualChargeRequest) (*models.Transaction, error)
	ListRefunds(txnID string) ([]models.Refund, error)

	DeleteTransactions(ctx context.Context, bookingID string) (int64, error)
	DeleteTestUser(ctx context.Context, email string) error
	ClearCompletedForWorker(ctx context.Context, workerID string) (int64, error)
}

// DefaultAdminService implements AdminService.
type DefaultAdminService struct {
	Payments payment.PaymentService
	Txns     transactionRepo.TransactionRepository
	Bookings bookingRepo.BookingRepository
	Users    userRepo.UserRepository
	Logger   *zap.Logger
}

// ProcessRefund runs a refund on behalf of an admin. Validation and ledger
// writes live in the payment service.
func (svc *DefaultAdminService) ProcessRefund(ctx context.Context, req payment.RefundRequest) (*models.Refund, error) {
	refund, err := svc.Payments.Refund(ctx, req)
	if err != nil {
		return nil, err
	}
	svc.Logger.Info("refund processed",
		zap.String("bookingID", req.BookingID),
		zap.Float64("amount", refund.Amount),
		zap.String("issuedBy", req.IssuedBy))
	return refund, nil
}

func (svc *DefaultAdminService) ChargeSavedMethod(ctx context.Context, req payment.ManualChargeRequest) (*models.Transaction, error) {
	return svc.Payments.ChargeSavedMethod(ctx, req)
}

func (svc *DefaultAdminService) ListRefunds(txnID string) ([]models.Refund, error) {
	return svc.Txns.ListRefunds(txnID)
}

// DeleteTransactions removes the payment records for a booking. Intended for
// cleaning up test bookings; refund ledger entries for the booking go too.
func (svc *DefaultAdminService) DeleteTransactions(ctx context.Context, bookingID string) (int64, error) {
	deleted, err := svc.Txns.DeleteByBookingID(bookingID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete transactions: %w", err)
	}
	svc.Logger.Info("transactions deleted",
		zap.String("bookingID", bookingID), zap.Int64("count", deleted))
	return deleted, nil
}

// DeleteTestUser removes an account only when it is flagged test_account.
// Real customer accounts are never deletable through this path.
func (svc *DefaultAdminService) DeleteTestUser(ctx context.Context, email string) error {
	if err := svc.Users.DeleteTestUserByEmail(email); err != nil {
		return fmt.Errorf("failed to delete test user: %w", err)
	}
	svc.Logger.Info("test user deleted", zap.String("email", email))
	return nil
}

// ClearCompletedForWorker hides completed bookings from a worker's dashboard
// without deleting the records.
func (svc *DefaultAdminService) ClearCompletedForWorker(ctx context.Context, workerID string) (int64, error) {
	cleared, err := svc.Bookings.ClearCompletedForWorker(workerID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear completed bookings: %w", err)
	}
	return cleared, nil
}
