package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mountify/services/payment"
)

// AssignWorkerHandler assigns a worker to a pending booking. Admin only.
func (hb *HandlerBundle) AssignWorkerHandler(c *gin.Context) {
	var input struct {
		WorkerID string `json:"workerId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.WorkerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "workerId is required"})
		return
	}
	if err := hb.Bookings.AssignWorker(c.Request.Context(), c.Param("id"), input.WorkerID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "worker assigned"})
}

// ProcessRefundHandler refunds part or all of a captured payment.
func (hb *HandlerBundle) ProcessRefundHandler(c *gin.Context) {
	var input struct {
		BookingID string  `json:"bookingId"`
		Amount    float64 `json:"amount"`
		Reason    string  `json:"reason"`
		Notify    bool    `json:"notify"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	refund, err := hb.Admin.ProcessRefund(c.Request.Context(), payment.RefundRequest{
		BookingID: input.BookingID,
		Amount:    input.Amount,
		Reason:    input.Reason,
		IssuedBy:  c.GetString("userID"),
		Notify:    input.Notify,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, refund)
}

// ManualChargeHandler charges a customer's saved payment method directly.
func (hb *HandlerBundle) ManualChargeHandler(c *gin.Context) {
	var input struct {
		CustomerID  string  `json:"customerId"`
		Amount      float64 `json:"amount"`
		Description string  `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	txn, err := hb.Admin.ChargeSavedMethod(c.Request.Context(), payment.ManualChargeRequest{
		CustomerID:  input.CustomerID,
		Amount:      input.Amount,
		Description: input.Description,
		IssuedBy:    c.GetString("userID"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txn)
}

// ListRefundsHandler lists the refund ledger for a transaction.
func (hb *HandlerBundle) ListRefundsHandler(c *gin.Context) {
	refunds, err := hb.Admin.ListRefunds(c.Param("txnID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"refunds": refunds})
}

// DeleteTransactionsHandler removes payment records for a test booking.
func (hb *HandlerBundle) DeleteTransactionsHandler(c *gin.Context) {
	deleted, err := hb.Admin.DeleteTransactions(c.Request.Context(), c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// DeleteTestUserHandler removes a test account by email. Accounts without
// the test flag are left untouched.
func (hb *HandlerBundle) DeleteTestUserHandler(c *gin.Context) {
	if err := hb.Admin.DeleteTestUser(c.Request.Context(), c.Param("email")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "test user deleted"})
}

// ClearCompletedHandler hides completed bookings from a worker's dashboard.
func (hb *HandlerBundle) ClearCompletedHandler(c *gin.Context) {
	cleared, err := hb.Admin.ClearCompletedForWorker(c.Request.Context(), c.Param("workerID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": cleared})
}
