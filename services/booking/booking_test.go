package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"mountify/events"
	"mountify/models"
	"mountify/services/payment"
)

// memBookingRepo is an in-memory BookingRepository.
type memBookingRepo struct {
	bookings map[string]*models.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *memBookingRepo) Create(b *models.Booking) error {
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *memBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, errors.New("booking not found")
	}
	cp := *b
	return &cp, nil
}

func (r *memBookingRepo) Update(id string, updated *models.Booking) error {
	cp := *updated
	r.bookings[id] = &cp
	return nil
}

func (r *memBookingRepo) UpdateStatus(id string, status models.BookingStatus) error {
	b, ok := r.bookings[id]
	if !ok {
		return errors.New("booking not found")
	}
	b.Status = status
	return nil
}

func (r *memBookingRepo) ListByCustomer(customerID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.CustomerID == customerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) ListByWorker(workerID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.WorkerID == workerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) ClearCompletedForWorker(workerID string) (int64, error) { return 0, nil }

func (r *memBookingRepo) Delete(id string) error {
	delete(r.bookings, id)
	return nil
}

// stubUsers serves fixed accounts by id.
type stubUsers struct {
	accounts map[string]*models.User
}

func (s *stubUsers) Create(u *models.User) error { return nil }
func (s *stubUsers) GetByID(id string) (*models.User, error) {
	u, ok := s.accounts[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}
func (s *stubUsers) GetByEmail(email string) (*models.User, error) {
	return nil, errors.New("not implemented")
}
func (s *stubUsers) GetByTokenHash(hash string) (*models.User, error) {
	return nil, errors.New("not implemented")
}
func (s *stubUsers) Update(u *models.User) error                           { return nil }
func (s *stubUsers) Delete(id string) error                                { return nil }
func (s *stubUsers) DeleteTestUserByEmail(email string) error              { return nil }
func (s *stubUsers) CreateApplication(app *models.WorkerApplication) error { return nil }
func (s *stubUsers) GetApplication(id string) (*models.WorkerApplication, error) {
	return nil, errors.New("not found")
}
func (s *stubUsers) UpdateApplication(app *models.WorkerApplication) error { return nil }

// stubPayments records capture calls.
type stubPayments struct {
	captured   []string
	captureErr error
}

func (s *stubPayments) Authorize(ctx context.Context, b *models.Booking, c *models.User) (*models.Transaction, error) {
	return &models.Transaction{BookingID: b.ID, Status: models.TransactionAuthorized, Amount: b.TotalPrice}, nil
}
func (s *stubPayments) Capture(ctx context.Context, bookingID string) (*models.Transaction, error) {
	if s.captureErr != nil {
		return nil, s.captureErr
	}
	s.captured = append(s.captured, bookingID)
	return &models.Transaction{BookingID: bookingID, Status: models.TransactionCaptured, CapturedAmount: 150}, nil
}
func (s *stubPayments) Refund(ctx context.Context, req payment.RefundRequest) (*models.Refund, error) {
	return nil, errors.New("not implemented")
}
func (s *stubPayments) ChargeSavedMethod(ctx context.Context, req payment.ManualChargeRequest) (*models.Transaction, error) {
	return nil, errors.New("not implemented")
}

// stubNotifier counts notifications.
type stubNotifier struct {
	pushes int
	emails int
}

func (s *stubNotifier) NotifyCustomer(ctx context.Context, userID, title, body string, data map[string]string) error {
	s.pushes++
	return nil
}
func (s *stubNotifier) QueueWorkerAssignmentEmail(ctx context.Context, b *models.Booking, w *models.User) error {
	s.emails++
	return nil
}

func newLifecycleService(repo *memBookingRepo, pay *stubPayments, notif *stubNotifier) *DefaultBookingService {
	return &DefaultBookingService{
		Repo: repo,
		Users: &stubUsers{accounts: map[string]*models.User{
			"worker-1": {ID: "worker-1", Role: models.RoleWorker, Name: "Pat"},
			"cust-1":   {ID: "cust-1", Role: models.RoleCustomer},
		}},
		Payments: pay,
		Notifier: notif,
		Hub:      events.NewHub(),
		Logger:   zap.NewNop(),
	}
}

func seedBooking(repo *memBookingRepo, status models.BookingStatus, workerID string) {
	repo.Create(&models.Booking{
		ID: "bkg-1", CustomerID: "cust-1", WorkerID: workerID,
		Status: status, TotalPrice: 150, ScheduledDate: "2026-09-10",
	})
}

func TestTransitionMap(t *testing.T) {
	assert.True(t, transitionAllowed(models.BookingPending, models.BookingConfirmed))
	assert.True(t, transitionAllowed(models.BookingConfirmed, models.BookingInProgress))
	assert.True(t, transitionAllowed(models.BookingInProgress, models.BookingCompleted))
	assert.True(t, transitionAllowed(models.BookingPending, models.BookingCancelled))

	assert.False(t, transitionAllowed(models.BookingPending, models.BookingInProgress))
	assert.False(t, transitionAllowed(models.BookingPending, models.BookingCompleted))
	assert.False(t, transitionAllowed(models.BookingCompleted, models.BookingCancelled))
	assert.False(t, transitionAllowed(models.BookingCancelled, models.BookingConfirmed))
}

func TestAssignWorker(t *testing.T) {
	repo := newMemBookingRepo()
	seedBooking(repo, models.BookingPending, "")
	notif := &stubNotifier{}
	svc := newLifecycleService(repo, &stubPayments{}, notif)

	err := svc.AssignWorker(context.Background(), "bkg-1", "worker-1")
	assert.NoError(t, err)

	b, _ := repo.GetByID(context.Background(), "bkg-1")
	assert.Equal(t, models.BookingConfirmed, b.Status)
	assert.Equal(t, "worker-1", b.WorkerID)
	assert.Equal(t, 1, notif.emails)
	assert.Equal(t, 1, notif.pushes)
}

func TestAssignWorkerRejectsNonWorker(t *testing.T) {
	repo := newMemBookingRepo()
	seedBooking(repo, models.BookingPending, "")
	svc := newLifecycleService(repo, &stubPayments{}, &stubNotifier{})

	err := svc.AssignWorker(context.Background(), "bkg-1", "cust-1")
	assert.Error(t, err)
}

func TestAssignWorkerRejectsCompletedBooking(t *testing.T) {
	repo := newMemBookingRepo()
	seedBooking(repo, models.BookingCompleted, "worker-1")
	svc := newLifecycleService(repo, &stubPayments{}, &stubNotifier{})

	err := svc.AssignWorker(context.Background(), "bkg-1", "worker-1")
	assert.Error(t, err)
	var be *BookingError
	assert.ErrorAs(t, err, &be)
	assert.Equal(t, "invalidTransition", be.Code)
}

func TestStartJobOnlyAssignedWorker(t *testing.T) {
	repo := newMemBookingRepo()
	seedBooking(repo, models.BookingConfirmed, "worker-1")
	svc := newLifecycleService(repo, &stubPayments{}, &stubNotifier{})

	assert.Error(t, svc.StartJob(context.Background(), "bkg-1", "worker-2"))
	assert.NoError(t, svc.StartJob(context.Background(), "bkg-1", "worker-1"))

	b, _ := repo.GetByID(context.Background(), "bkg-1")
	assert.Equal(t, models.BookingInProgress, b.Status)
}

func TestCompleteCapturesPayment(t *testing.T) {
	repo := newMemBookingRepo()
	seedBooking(repo, models.BookingInProgress, "worker-1")
	pay := &stubPayments{}
	svc := newLifecycleService(repo, pay, &stubNotifier{})

	txn, err := svc.Complete(context.Background(), "bkg-1", "worker-1")
	assert.NoError(t, err)
	assert.Equal(t, models.TransactionCaptured, txn.Status)
	assert.Equal(t, []string{"bkg-1"}, pay.captured)

	b, _ := repo.GetByID(context.Background(), "bkg-1")
	assert.Equal(t, models.BookingCompleted, b.Status)
	assert.NotNil(t, b.CompletedAt)
}

func TestCompleteSurfacesCaptureError(t *testing.T) {
	repo := newMemBookingRepo()
	seedBooking(repo, models.BookingInProgress, "worker-1")
	pay := &stubPayments{captureErr: errors.New("processor timeout")}
	svc := newLifecycleService(repo, pay, &stubNotifier{})

	_, err := svc.Complete(context.Background(), "bkg-1", "worker-1")
	assert.Error(t, err)

	// The booking is completed even when capture needs a retry.
	b, _ := repo.GetByID(context.Background(), "bkg-1")
	assert.Equal(t, models.BookingCompleted, b.Status)
}

func TestCancelFromPending(t *testing.T) {
	repo := newMemBookingRepo()
	seedBooking(repo, models.BookingPending, "")
	svc := newLifecycleService(repo, &stubPayments{}, &stubNotifier{})

	assert.NoError(t, svc.Cancel(context.Background(), "bkg-1"))
	b, _ := repo.GetByID(context.Background(), "bkg-1")
	assert.Equal(t, models.BookingCancelled, b.Status)
}

func TestCancelCompletedRejected(t *testing.T) {
	repo := newMemBookingRepo()
	seedBooking(repo, models.BookingCompleted, "worker-1")
	svc := newLifecycleService(repo, &stubPayments{}, &stubNotifier{})

	assert.Error(t, svc.Cancel(context.Background(), "bkg-1"))
}
