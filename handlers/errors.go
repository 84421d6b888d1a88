package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mountify/services/booking"
	"mountify/services/invoice"
	"mountify/services/payment"
	"mountify/services/user"
)

// respondError maps service errors onto HTTP responses. Typed service errors
// carry a code the client can branch on; anything else is a 500.
func respondError(c *gin.Context, err error) {
	switch e := err.(type) {
	case *booking.BookingError:
		c.JSON(statusForCode(e.Code), gin.H{"error": e.Message, "code": e.Code})
	case *invoice.InvoiceError:
		c.JSON(statusForCode(e.Code), gin.H{"error": e.Message, "code": e.Code})
	case *user.UserError:
		c.JSON(statusForCode(e.Code), gin.H{"error": e.Message, "code": e.Code})
	case *payment.PaymentError:
		status := http.StatusPaymentRequired
		if e.Retryable {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": e.Message, "code": e.Code, "retryable": e.Retryable})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func statusForCode(code string) int {
	switch code {
	case "notFound", "sessionNotFound", "unknownService", "unknownBooking",
		"unknownCustomer", "unknownWorker":
		return http.StatusNotFound
	case "invalidTransition", "alreadyResolved", "emailTaken", "bookingCancelled":
		return http.StatusConflict
	case "badCredentials":
		return http.StatusUnauthorized
	case "notAssigned", "notCustomer":
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}
