package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mountify/services/booking"
)

// StartCheckoutHandler prices the cart and opens a checkout session.
func (hb *HandlerBundle) StartCheckoutHandler(c *gin.Context) {
	var input booking.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	sessionID, session, err := hb.Bookings.StartCheckout(c.Request.Context(), c.GetString("userID"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionID": sessionID, "session": session})
}

// UpdateCheckoutHandler replaces the session contents and requotes.
func (hb *HandlerBundle) UpdateCheckoutHandler(c *gin.Context) {
	var input booking.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := hb.Bookings.UpdateCheckout(c.Request.Context(), c.Param("sessionID"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// CancelCheckoutHandler discards an open checkout session.
func (hb *HandlerBundle) CancelCheckoutHandler(c *gin.Context) {
	if err := hb.Bookings.CancelCheckout(c.Request.Context(), c.Param("sessionID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "checkout cancelled"})
}

// ConfirmCheckoutHandler creates the booking and places the payment hold.
func (hb *HandlerBundle) ConfirmCheckoutHandler(c *gin.Context) {
	var input struct {
		SessionID string `json:"sessionID"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sessionID is required"})
		return
	}

	bkg, txn, err := hb.Bookings.ConfirmCheckout(c.Request.Context(), input.SessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": bkg, "transaction": txn})
}

// GetBookingHandler returns one booking. Customers may only read their own.
func (hb *HandlerBundle) GetBookingHandler(c *gin.Context) {
	bkg, err := hb.Bookings.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	role := c.GetString("userRole")
	userID := c.GetString("userID")
	if role == "customer" && bkg.CustomerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your booking"})
		return
	}
	if role == "worker" && bkg.WorkerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your booking"})
		return
	}
	c.JSON(http.StatusOK, bkg)
}

// ListMyBookingsHandler lists the caller's bookings, customer or worker.
func (hb *HandlerBundle) ListMyBookingsHandler(c *gin.Context) {
	userID := c.GetString("userID")
	var list interface{}
	var err error
	if c.GetString("userRole") == "worker" {
		list, err = hb.Bookings.ListForWorker(userID)
	} else {
		list, err = hb.Bookings.ListForCustomer(userID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list})
}

// CancelBookingHandler cancels a booking the caller owns.
func (hb *HandlerBundle) CancelBookingHandler(c *gin.Context) {
	bkg, err := hb.Bookings.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if c.GetString("userRole") == "customer" && bkg.CustomerID != c.GetString("userID") {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your booking"})
		return
	}
	if err := hb.Bookings.Cancel(c.Request.Context(), bkg.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
}

// StartJobHandler marks a confirmed booking as in progress.
func (hb *HandlerBundle) StartJobHandler(c *gin.Context) {
	if err := hb.Bookings.StartJob(c.Request.Context(), c.Param("id"), c.GetString("userID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "job started"})
}

// CompleteJobHandler completes the job and captures the payment hold.
func (hb *HandlerBundle) CompleteJobHandler(c *gin.Context) {
	txn, err := hb.Bookings.Complete(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "job completed", "transaction": txn})
}
