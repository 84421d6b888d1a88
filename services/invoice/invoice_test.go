package invoice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"mountify/events"
	"mountify/models"
)

type memInvoiceRepo struct {
	mods     map[string]*models.InvoiceModification
	invoices map[string]*models.Invoice
}

func newMemInvoiceRepo() *memInvoiceRepo {
	return &memInvoiceRepo{
		mods:     make(map[string]*models.InvoiceModification),
		invoices: make(map[string]*models.Invoice),
	}
}

func (r *memInvoiceRepo) CreateModification(mod *models.InvoiceModification) error {
	cp := *mod
	r.mods[mod.ID] = &cp
	return nil
}

func (r *memInvoiceRepo) GetModification(ctx context.Context, id string) (*models.InvoiceModification, error) {
	m, ok := r.mods[id]
	if !ok {
		return nil, errors.New("modification not found")
	}
	cp := *m
	return &cp, nil
}

func (r *memInvoiceRepo) UpdateModification(mod *models.InvoiceModification) error {
	cp := *mod
	r.mods[mod.ID] = &cp
	return nil
}

func (r *memInvoiceRepo) ListModifications(bookingID string) ([]models.InvoiceModification, error) {
	var out []models.InvoiceModification
	for _, m := range r.mods {
		if m.BookingID == bookingID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *memInvoiceRepo) ApprovedDelta(ctx context.Context, bookingID string) (float64, error) {
	sum := 0.0
	for _, m := range r.mods {
		if m.BookingID == bookingID && m.Status == models.ModificationApproved {
			sum += m.Amount
		}
	}
	return sum, nil
}

func (r *memInvoiceRepo) CreateInvoice(inv *models.Invoice) error {
	cp := *inv
	r.invoices[inv.BookingID] = &cp
	return nil
}

func (r *memInvoiceRepo) GetInvoiceByBookingID(bookingID string) (*models.Invoice, error) {
	inv, ok := r.invoices[bookingID]
	if !ok {
		return nil, errors.New("invoice not found")
	}
	cp := *inv
	return &cp, nil
}

type memBookings struct {
	bookings map[string]*models.Booking
}

func (r *memBookings) Create(b *models.Booking) error {
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}
func (r *memBookings) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, errors.New("booking not found")
	}
	cp := *b
	return &cp, nil
}
func (r *memBookings) Update(id string, b *models.Booking) error {
	cp := *b
	r.bookings[id] = &cp
	return nil
}
func (r *memBookings) UpdateStatus(id string, status models.BookingStatus) error {
	r.bookings[id].Status = status
	return nil
}
func (r *memBookings) ListByCustomer(id string) ([]models.Booking, error) { return nil, nil }
func (r *memBookings) ListByWorker(id string) ([]models.Booking, error)   { return nil, nil }
func (r *memBookings) ClearCompletedForWorker(id string) (int64, error)   { return 0, nil }
func (r *memBookings) Delete(id string) error                             { return nil }

type stubTxns struct{}

func (s *stubTxns) Create(t *models.Transaction) error { return nil }
func (s *stubTxns) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	return nil, errors.New("not found")
}
func (s *stubTxns) GetByBookingID(ctx context.Context, bookingID string) (*models.Transaction, error) {
	return &models.Transaction{ID: "txn-1", BookingID: bookingID, Status: models.TransactionCaptured}, nil
}
func (s *stubTxns) Update(t *models.Transaction) error                   { return nil }
func (s *stubTxns) DeleteByBookingID(bookingID string) (int64, error)    { return 0, nil }
func (s *stubTxns) CreateRefund(r *models.Refund) error                  { return nil }
func (s *stubTxns) ListRefunds(txnID string) ([]models.Refund, error)    { return nil, nil }

type noopNotifier struct{}

func (noopNotifier) NotifyCustomer(ctx context.Context, userID, title, body string, data map[string]string) error {
	return nil
}
func (noopNotifier) QueueWorkerAssignmentEmail(ctx context.Context, b *models.Booking, w *models.User) error {
	return nil
}

func newTestService(status models.BookingStatus, total float64) (*DefaultInvoiceService, *memInvoiceRepo, *memBookings) {
	bookings := &memBookings{bookings: map[string]*models.Booking{
		"bkg-1": {ID: "bkg-1", CustomerID: "cust-1", Status: status, Subtotal: total, TotalPrice: total},
	}}
	repo := newMemInvoiceRepo()
	svc := &DefaultInvoiceService{
		Repo:     repo,
		Bookings: bookings,
		Txns:     &stubTxns{},
		Notifier: noopNotifier{},
		Hub:      events.NewHub(),
		Logger:   zap.NewNop(),
	}
	return svc, repo, bookings
}

func TestProposeAddsToPendingBalance(t *testing.T) {
	svc, _, bookings := newTestService(models.BookingInProgress, 150)

	mod, err := svc.ProposeModification(context.Background(), ModificationInput{
		BookingID: "bkg-1", Amount: 45, Reason: "extra cable concealment", ProposedBy: "worker-1",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.ModificationPending, mod.Status)

	b, _ := bookings.GetByID(context.Background(), "bkg-1")
	assert.Equal(t, 45.0, b.PendingPaymentAmount)
	// Total does not move until approval.
	assert.Equal(t, 150.0, b.TotalPrice)
}

func TestProposeRequiresReason(t *testing.T) {
	svc, _, _ := newTestService(models.BookingInProgress, 150)
	_, err := svc.ProposeModification(context.Background(), ModificationInput{
		BookingID: "bkg-1", Amount: 45,
	})
	assert.Error(t, err)
}

func TestProposeRejectsCancelledBooking(t *testing.T) {
	svc, _, _ := newTestService(models.BookingCancelled, 150)
	_, err := svc.ProposeModification(context.Background(), ModificationInput{
		BookingID: "bkg-1", Amount: 45, Reason: "extra work",
	})
	assert.Error(t, err)
}

func TestApproveFoldsIntoTotal(t *testing.T) {
	svc, _, bookings := newTestService(models.BookingInProgress, 150)
	mod, _ := svc.ProposeModification(context.Background(), ModificationInput{
		BookingID: "bkg-1", Amount: 45, Reason: "extra work",
	})

	resolved, err := svc.Approve(context.Background(), mod.ID, "cust-1")
	assert.NoError(t, err)
	assert.Equal(t, models.ModificationApproved, resolved.Status)
	assert.NotNil(t, resolved.ResolvedAt)

	b, _ := bookings.GetByID(context.Background(), "bkg-1")
	assert.Equal(t, 195.0, b.TotalPrice)
	assert.Equal(t, 0.0, b.PendingPaymentAmount)
}

func TestRejectLeavesTotalUnchanged(t *testing.T) {
	svc, _, bookings := newTestService(models.BookingInProgress, 150)
	mod, _ := svc.ProposeModification(context.Background(), ModificationInput{
		BookingID: "bkg-1", Amount: 45, Reason: "extra work",
	})

	resolved, err := svc.Reject(context.Background(), mod.ID, "cust-1")
	assert.NoError(t, err)
	assert.Equal(t, models.ModificationRejected, resolved.Status)

	b, _ := bookings.GetByID(context.Background(), "bkg-1")
	assert.Equal(t, 150.0, b.TotalPrice)
	assert.Equal(t, 0.0, b.PendingPaymentAmount)
}

func TestResolveTwiceRejected(t *testing.T) {
	svc, _, _ := newTestService(models.BookingInProgress, 150)
	mod, _ := svc.ProposeModification(context.Background(), ModificationInput{
		BookingID: "bkg-1", Amount: 45, Reason: "extra work",
	})

	_, err := svc.Approve(context.Background(), mod.ID, "cust-1")
	assert.NoError(t, err)
	_, err = svc.Approve(context.Background(), mod.ID, "cust-1")
	assert.Error(t, err)
	_, err = svc.Reject(context.Background(), mod.ID, "cust-1")
	assert.Error(t, err)
}

func TestMarkViewedDoesNotApprove(t *testing.T) {
	svc, repo, _ := newTestService(models.BookingInProgress, 150)
	mod, _ := svc.ProposeModification(context.Background(), ModificationInput{
		BookingID: "bkg-1", Amount: 45, Reason: "extra work",
	})

	assert.NoError(t, svc.MarkViewed(context.Background(), mod.ID, "cust-1"))

	stored, _ := repo.GetModification(context.Background(), mod.ID)
	assert.NotNil(t, stored.CustomerViewedAt)
	assert.Equal(t, models.ModificationPending, stored.Status)

	// Idempotent: the first viewed timestamp sticks.
	first := *stored.CustomerViewedAt
	assert.NoError(t, svc.MarkViewed(context.Background(), mod.ID, "cust-1"))
	again, _ := repo.GetModification(context.Background(), mod.ID)
	assert.Equal(t, first, *again.CustomerViewedAt)
}

func TestOnlyCustomerMayResolve(t *testing.T) {
	svc, repo, bookings := newTestService(models.BookingInProgress, 150)
	mod, _ := svc.ProposeModification(context.Background(), ModificationInput{
		BookingID: "bkg-1", Amount: 45, Reason: "extra work", ProposedBy: "worker-1",
	})

	// The proposing worker cannot approve their own price change.
	_, err := svc.Approve(context.Background(), mod.ID, "worker-1")
	assert.Error(t, err)
	var invErr *InvoiceError
	assert.ErrorAs(t, err, &invErr)
	assert.Equal(t, "notCustomer", invErr.Code)

	_, err = svc.Reject(context.Background(), mod.ID, "worker-1")
	assert.Error(t, err)
	assert.Error(t, svc.MarkViewed(context.Background(), mod.ID, "worker-1"))

	stored, _ := repo.GetModification(context.Background(), mod.ID)
	assert.Equal(t, models.ModificationPending, stored.Status)
	assert.Nil(t, stored.CustomerViewedAt)

	b, _ := bookings.GetByID(context.Background(), "bkg-1")
	assert.Equal(t, 150.0, b.TotalPrice)
	assert.Equal(t, 45.0, b.PendingPaymentAmount)

	// The booking's customer still can.
	resolved, err := svc.Approve(context.Background(), mod.ID, "cust-1")
	assert.NoError(t, err)
	assert.Equal(t, models.ModificationApproved, resolved.Status)
}

func TestNegativeModificationFloorsTotalAtZero(t *testing.T) {
	svc, _, bookings := newTestService(models.BookingInProgress, 30)
	mod, _ := svc.ProposeModification(context.Background(), ModificationInput{
		BookingID: "bkg-1", Amount: -50, Reason: "goodwill discount",
	})

	_, err := svc.Approve(context.Background(), mod.ID, "cust-1")
	assert.NoError(t, err)

	b, _ := bookings.GetByID(context.Background(), "bkg-1")
	assert.Equal(t, 0.0, b.TotalPrice)
}

func TestGenerateInvoiceIncludesApprovedDelta(t *testing.T) {
	svc, _, bookings := newTestService(models.BookingInProgress, 150)
	mod, _ := svc.ProposeModification(context.Background(), ModificationInput{
		BookingID: "bkg-1", Amount: 45, Reason: "extra work",
	})
	svc.Approve(context.Background(), mod.ID, "cust-1")
	bookings.UpdateStatus("bkg-1", models.BookingCompleted)

	inv, err := svc.GenerateInvoice(context.Background(), "bkg-1")
	assert.NoError(t, err)
	assert.Equal(t, 45.0, inv.Modifications)
	assert.Equal(t, 195.0, inv.Total)
	assert.Equal(t, "txn-1", inv.TransactionID)
}

func TestGenerateInvoiceRequiresCompletion(t *testing.T) {
	svc, _, _ := newTestService(models.BookingInProgress, 150)
	_, err := svc.GenerateInvoice(context.Background(), "bkg-1")
	assert.Error(t, err)
}

func TestGenerateInvoiceIdempotent(t *testing.T) {
	svc, _, _ := newTestService(models.BookingCompleted, 150)
	first, err := svc.GenerateInvoice(context.Background(), "bkg-1")
	assert.NoError(t, err)
	second, err := svc.GenerateInvoice(context.Background(), "bkg-1")
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}
