package handlers

import (
	catalogRepo "mountify/database/repository/catalog"
	userRepoPkg "mountify/database/repository/user"
	"mountify/services/admin"
	"mountify/services/booking"
	"mountify/services/coverage"
	"mountify/services/invoice"
	"mountify/services/user"
)

// HandlerBundle groups all endpoint handlers and their dependencies.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository
	Catalog  catalogRepo.CatalogRepository

	Users    user.UserService
	Bookings booking.BookingService
	Invoices invoice.InvoiceService
	Coverage coverage.CoverageService
	Admin    admin.AdminService
}
