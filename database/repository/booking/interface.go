package bookingRepo

import (
	"context"

	"mountify/models"
)

// BookingRepository persists booking records.
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	Update(bookingID string, updated *models.Booking) error
	UpdateStatus(bookingID string, status models.BookingStatus) error
	ListByCustomer(customerID string) ([]models.Booking, error)
	ListByWorker(workerID string) ([]models.Booking, error)
	ClearCompletedForWorker(workerID string) (int64, error)
	Delete(bookingID string) error
}
