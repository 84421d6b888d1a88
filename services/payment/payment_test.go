package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"mountify/models"
)

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) CreateHold(ctx context.Context, req HoldRequest) (*HoldResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*HoldResult), args.Error(1)
}

func (m *mockProcessor) Capture(ctx context.Context, intentID string, amount float64) (*CaptureResult, error) {
	args := m.Called(ctx, intentID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CaptureResult), args.Error(1)
}

func (m *mockProcessor) Release(ctx context.Context, intentID string) error {
	args := m.Called(ctx, intentID)
	return args.Error(0)
}

func (m *mockProcessor) Refund(ctx context.Context, intentID string, amount float64, reason string) (*RefundResult, error) {
	args := m.Called(ctx, intentID, amount, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RefundResult), args.Error(1)
}

func (m *mockProcessor) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ChargeResult), args.Error(1)
}

// memTxnRepo is an in-memory TransactionRepository keyed by booking id.
type memTxnRepo struct {
	byBooking map[string]*models.Transaction
	refunds   []models.Refund
}

func newMemTxnRepo() *memTxnRepo {
	return &memTxnRepo{byBooking: make(map[string]*models.Transaction)}
}

func (r *memTxnRepo) Create(txn *models.Transaction) error {
	if _, exists := r.byBooking[txn.BookingID]; exists {
		return errors.New("duplicate transaction for booking")
	}
	cp := *txn
	r.byBooking[txn.BookingID] = &cp
	return nil
}

func (r *memTxnRepo) GetByID(ctx context.Context, txnID string) (*models.Transaction, error) {
	for _, txn := range r.byBooking {
		if txn.ID == txnID {
			cp := *txn
			return &cp, nil
		}
	}
	return nil, errors.New("transaction not found")
}

func (r *memTxnRepo) GetByBookingID(ctx context.Context, bookingID string) (*models.Transaction, error) {
	txn, ok := r.byBooking[bookingID]
	if !ok {
		return nil, errors.New("transaction not found")
	}
	cp := *txn
	return &cp, nil
}

func (r *memTxnRepo) Update(txn *models.Transaction) error {
	cp := *txn
	r.byBooking[txn.BookingID] = &cp
	return nil
}

func (r *memTxnRepo) DeleteByBookingID(bookingID string) (int64, error) {
	if _, ok := r.byBooking[bookingID]; !ok {
		return 0, nil
	}
	delete(r.byBooking, bookingID)
	return 1, nil
}

func (r *memTxnRepo) CreateRefund(refund *models.Refund) error {
	r.refunds = append(r.refunds, *refund)
	return nil
}

func (r *memTxnRepo) ListRefunds(txnID string) ([]models.Refund, error) {
	var out []models.Refund
	for _, rf := range r.refunds {
		if rf.TransactionID == txnID {
			out = append(out, rf)
		}
	}
	return out, nil
}

// stubInvoices returns a fixed approved delta.
type stubInvoices struct {
	delta float64
	err   error
}

func (s *stubInvoices) CreateModification(mod *models.InvoiceModification) error { return nil }
func (s *stubInvoices) GetModification(ctx context.Context, modID string) (*models.InvoiceModification, error) {
	return nil, errors.New("not implemented")
}
func (s *stubInvoices) UpdateModification(mod *models.InvoiceModification) error { return nil }
func (s *stubInvoices) ListModifications(bookingID string) ([]models.InvoiceModification, error) {
	return nil, nil
}
func (s *stubInvoices) ApprovedDelta(ctx context.Context, bookingID string) (float64, error) {
	return s.delta, s.err
}
func (s *stubInvoices) CreateInvoice(inv *models.Invoice) error { return nil }
func (s *stubInvoices) GetInvoiceByBookingID(bookingID string) (*models.Invoice, error) {
	return nil, errors.New("not found")
}

// stubUsers resolves every id to the same customer.
type stubUsers struct {
	customer *models.User
}

func (s *stubUsers) Create(user *models.User) error { return nil }
func (s *stubUsers) GetByID(userID string) (*models.User, error) {
	if s.customer == nil {
		return nil, errors.New("not found")
	}
	return s.customer, nil
}
func (s *stubUsers) GetByEmail(email string) (*models.User, error) {
	return s.GetByID("")
}
func (s *stubUsers) GetByTokenHash(tokenHash string) (*models.User, error) {
	return s.GetByID("")
}
func (s *stubUsers) Update(user *models.User) error                        { return nil }
func (s *stubUsers) Delete(userID string) error                            { return nil }
func (s *stubUsers) DeleteTestUserByEmail(email string) error              { return nil }
func (s *stubUsers) CreateApplication(app *models.WorkerApplication) error { return nil }
func (s *stubUsers) GetApplication(appID string) (*models.WorkerApplication, error) {
	return nil, errors.New("not found")
}
func (s *stubUsers) UpdateApplication(app *models.WorkerApplication) error { return nil }

func newTestService(repo *memTxnRepo, proc *mockProcessor, delta float64) *DefaultPaymentService {
	return &DefaultPaymentService{
		Repo:      repo,
		Invoices:  &stubInvoices{delta: delta},
		Users:     &stubUsers{},
		Processor: proc,
		Logger:    zap.NewNop(),
	}
}

func testBooking(total float64) *models.Booking {
	return &models.Booking{ID: "bkg-1", CustomerID: "cust-1", TotalPrice: total}
}

func testCustomer() *models.User {
	return &models.User{ID: "cust-1", PaymentMethodID: "pm_123", StripeCustomer: "cus_123"}
}

func TestAuthorizeSuccess(t *testing.T) {
	repo := newMemTxnRepo()
	proc := new(mockProcessor)
	proc.On("CreateHold", mock.Anything, mock.MatchedBy(func(req HoldRequest) bool {
		return req.Amount == 150.0 && req.IdempotencyKey == "auth-bkg-1"
	})).Return(&HoldResult{IntentID: "pi_1", Status: "requires_capture"}, nil)

	svc := newTestService(repo, proc, 0)
	txn, err := svc.Authorize(context.Background(), testBooking(150), testCustomer())

	assert.NoError(t, err)
	assert.Equal(t, models.TransactionAuthorized, txn.Status)
	assert.Equal(t, "pi_1", txn.PaymentIntentID)
	proc.AssertExpectations(t)
}

func TestAuthorizeDeclinedMarksFailed(t *testing.T) {
	repo := newMemTxnRepo()
	proc := new(mockProcessor)
	proc.On("CreateHold", mock.Anything, mock.Anything).Return(nil, errors.New("card declined"))

	svc := newTestService(repo, proc, 0)
	_, err := svc.Authorize(context.Background(), testBooking(150), testCustomer())

	assert.Error(t, err)
	stored, _ := repo.GetByBookingID(context.Background(), "bkg-1")
	assert.Equal(t, models.TransactionFailed, stored.Status)
	assert.Contains(t, stored.FailureReason, "declined")
}

func TestAuthorizeRejectsZeroTotal(t *testing.T) {
	svc := newTestService(newMemTxnRepo(), new(mockProcessor), 0)
	_, err := svc.Authorize(context.Background(), testBooking(0), testCustomer())
	assert.Error(t, err)
	assert.False(t, IsRetryable(err))
}

func TestCaptureIncludesApprovedDelta(t *testing.T) {
	repo := newMemTxnRepo()
	repo.Create(&models.Transaction{
		ID: "txn-1", BookingID: "bkg-1", CustomerID: "cust-1",
		Status: models.TransactionAuthorized, Amount: 150, PaymentIntentID: "pi_1",
	})
	proc := new(mockProcessor)
	proc.On("Capture", mock.Anything, "pi_1", 175.0).
		Return(&CaptureResult{IntentID: "pi_1", CapturedAmount: 175}, nil)

	svc := newTestService(repo, proc, 25)
	txn, err := svc.Capture(context.Background(), "bkg-1")

	assert.NoError(t, err)
	assert.Equal(t, models.TransactionCaptured, txn.Status)
	assert.Equal(t, 175.0, txn.CapturedAmount)
	assert.NotNil(t, txn.CapturedAt)
	proc.AssertExpectations(t)
}

func TestCaptureReleasesHoldWhenDeltaWipesAmount(t *testing.T) {
	repo := newMemTxnRepo()
	repo.Create(&models.Transaction{
		ID: "txn-1", BookingID: "bkg-1", CustomerID: "cust-1",
		Status: models.TransactionAuthorized, Amount: 30, PaymentIntentID: "pi_1",
	})
	// Approved reduction exceeds the authorization: nothing to capture and
	// the processor never sees a negative amount.
	proc := new(mockProcessor)
	proc.On("Release", mock.Anything, "pi_1").Return(nil)

	svc := newTestService(repo, proc, -50)
	txn, err := svc.Capture(context.Background(), "bkg-1")

	assert.NoError(t, err)
	assert.Equal(t, models.TransactionCaptured, txn.Status)
	assert.Equal(t, 0.0, txn.CapturedAmount)
	assert.NotNil(t, txn.CapturedAt)
	proc.AssertNotCalled(t, "Capture", mock.Anything, mock.Anything, mock.Anything)
	proc.AssertExpectations(t)
}

func TestCaptureReleaseFailureLeavesAuthorized(t *testing.T) {
	repo := newMemTxnRepo()
	repo.Create(&models.Transaction{
		ID: "txn-1", BookingID: "bkg-1", Status: models.TransactionAuthorized,
		Amount: 30, PaymentIntentID: "pi_1",
	})
	proc := new(mockProcessor)
	proc.On("Release", mock.Anything, "pi_1").Return(errors.New("processor timeout"))

	svc := newTestService(repo, proc, -50)
	_, err := svc.Capture(context.Background(), "bkg-1")

	assert.Error(t, err)
	assert.True(t, IsRetryable(err))
	stored, _ := repo.GetByBookingID(context.Background(), "bkg-1")
	assert.Equal(t, models.TransactionAuthorized, stored.Status)
}

func TestCaptureTwiceIsNoOp(t *testing.T) {
	repo := newMemTxnRepo()
	captured := time.Now()
	repo.Create(&models.Transaction{
		ID: "txn-1", BookingID: "bkg-1", Status: models.TransactionCaptured,
		Amount: 150, CapturedAmount: 150, PaymentIntentID: "pi_1", CapturedAt: &captured,
	})
	proc := new(mockProcessor) // no expectations: processor must not be called

	svc := newTestService(repo, proc, 0)
	txn, err := svc.Capture(context.Background(), "bkg-1")

	assert.NoError(t, err)
	assert.Equal(t, 150.0, txn.CapturedAmount)
	proc.AssertExpectations(t)
}

func TestCaptureRequiresAuthorized(t *testing.T) {
	repo := newMemTxnRepo()
	repo.Create(&models.Transaction{
		ID: "txn-1", BookingID: "bkg-1", Status: models.TransactionPending, Amount: 150,
	})

	svc := newTestService(repo, new(mockProcessor), 0)
	_, err := svc.Capture(context.Background(), "bkg-1")

	assert.Error(t, err)
	assert.False(t, IsRetryable(err))
}

func TestCaptureFailureLeavesAuthorized(t *testing.T) {
	repo := newMemTxnRepo()
	repo.Create(&models.Transaction{
		ID: "txn-1", BookingID: "bkg-1", Status: models.TransactionAuthorized,
		Amount: 150, PaymentIntentID: "pi_1",
	})
	proc := new(mockProcessor)
	proc.On("Capture", mock.Anything, "pi_1", 150.0).Return(nil, errors.New("processor timeout"))

	svc := newTestService(repo, proc, 0)
	_, err := svc.Capture(context.Background(), "bkg-1")

	assert.Error(t, err)
	assert.True(t, IsRetryable(err))
	stored, _ := repo.GetByBookingID(context.Background(), "bkg-1")
	assert.Equal(t, models.TransactionAuthorized, stored.Status)
}

func TestRefundRequiresReason(t *testing.T) {
	svc := newTestService(newMemTxnRepo(), new(mockProcessor), 0)
	_, err := svc.Refund(context.Background(), RefundRequest{BookingID: "bkg-1", Amount: 10})
	assert.Error(t, err)
}

func TestRefundRejectsPendingTransaction(t *testing.T) {
	repo := newMemTxnRepo()
	repo.Create(&models.Transaction{
		ID: "txn-1", BookingID: "bkg-1", Status: models.TransactionPending, Amount: 150,
	})

	svc := newTestService(repo, new(mockProcessor), 0)
	_, err := svc.Refund(context.Background(), RefundRequest{
		BookingID: "bkg-1", Amount: 10, Reason: "customer complaint",
	})
	assert.Error(t, err)
	assert.False(t, IsRetryable(err))
}

func TestRefundFullByDefault(t *testing.T) {
	repo := newMemTxnRepo()
	repo.Create(&models.Transaction{
		ID: "txn-1", BookingID: "bkg-1", CustomerID: "cust-1",
		Status: models.TransactionCaptured, Amount: 150, CapturedAmount: 150,
		PaymentIntentID: "pi_1",
	})
	proc := new(mockProcessor)
	proc.On("Refund", mock.Anything, "pi_1", 150.0, "damaged wall").
		Return(&RefundResult{RefundID: "re_1", Amount: 150}, nil)

	svc := newTestService(repo, proc, 0)
	refund, err := svc.Refund(context.Background(), RefundRequest{
		BookingID: "bkg-1", Reason: "damaged wall", IssuedBy: "admin-1",
	})

	assert.NoError(t, err)
	assert.Equal(t, models.RefundFull, refund.Type)
	assert.Equal(t, 150.0, refund.Amount)

	// Status stays captured; the refund is a separate ledger entry.
	stored, _ := repo.GetByBookingID(context.Background(), "bkg-1")
	assert.Equal(t, models.TransactionCaptured, stored.Status)
	ledger, _ := repo.ListRefunds("txn-1")
	assert.Len(t, ledger, 1)
}

func TestPartialRefund(t *testing.T) {
	repo := newMemTxnRepo()
	repo.Create(&models.Transaction{
		ID: "txn-1", BookingID: "bkg-1", Status: models.TransactionCaptured,
		Amount: 150, CapturedAmount: 150, PaymentIntentID: "pi_1",
	})
	proc := new(mockProcessor)
	proc.On("Refund", mock.Anything, "pi_1", 40.0, "late arrival").
		Return(&RefundResult{RefundID: "re_2", Amount: 40}, nil)

	svc := newTestService(repo, proc, 0)
	refund, err := svc.Refund(context.Background(), RefundRequest{
		BookingID: "bkg-1", Amount: 40, Reason: "late arrival",
	})

	assert.NoError(t, err)
	assert.Equal(t, models.RefundPartial, refund.Type)
}

func TestRefundRejectsOverage(t *testing.T) {
	repo := newMemTxnRepo()
	repo.Create(&models.Transaction{
		ID: "txn-1", BookingID: "bkg-1", Status: models.TransactionCaptured,
		Amount: 150, CapturedAmount: 150, PaymentIntentID: "pi_1",
	})

	svc := newTestService(repo, new(mockProcessor), 0)
	_, err := svc.Refund(context.Background(), RefundRequest{
		BookingID: "bkg-1", Amount: 200, Reason: "oops",
	})
	assert.Error(t, err)
}
