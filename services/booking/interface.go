package booking

import (
	"context"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	bookingRepo "mountify/database/repository/booking"
	catalogRepo "mountify/database/repository/catalog"
	userRepo "mountify/database/repository/user"
	"mountify/events"
	"mountify/models"
	"mountify/services/coverage"
	"mountify/services/notification"
	"mountify/services/payment"
)

// CheckoutInput is the client's view of a checkout in progress. Unit prices
// are never trusted from the client; they are re-read from the catalog.
type CheckoutInput struct {
	Items               []models.CartItem `json:"items"`
	ZipCode             string            `json:"zipCode"`
	ScheduledDate       string            `json:"scheduledDate"`
	ScheduledTime       string            `json:"scheduledTime"`
	SpecialInstructions string            `json:"specialInstructions"`
	CouponCode          string            `json:"couponCode"`
}

// BookingService manages checkout sessions and the booking lifecycle.
type BookingService interface {
	StartCheckout(ctx context.Context, customerID string, in CheckoutInput) (string, *models.CheckoutSession, error)
	UpdateCheckout(ctx context.Context, sessionID string, in CheckoutInput) (*models.CheckoutSession, error)
	CancelCheckout(ctx context.Context, sessionID string) error
	ConfirmCheckout(ctx context.Context, sessionID string) (*models.Booking, *models.Transaction, error)

	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	ListForCustomer(customerID string) ([]models.Booking, error)
	ListForWorker(workerID string) ([]models.Booking, error)

	AssignWorker(ctx context.Context, bookingID, workerID string) error
	StartJob(ctx context.Context, bookingID, workerID string) error
	Complete(ctx context.Context, bookingID, workerID string) (*models.Transaction, error)
	Cancel(ctx context.Context, bookingID string) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo     bookingRepo.BookingRepository
	Catalog  catalogRepo.CatalogRepository
	Users    userRepo.UserRepository
	Coverage coverage.CoverageService
	Payments payment.PaymentService
	Notifier notification.NotificationService
	Sessions *redis.Client
	Hub      *events.Hub
	Logger   *zap.Logger
}
