package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mountify/services/invoice"
)

// ProposeModificationHandler records a price change needing customer approval.
func (hb *HandlerBundle) ProposeModificationHandler(c *gin.Context) {
	var input invoice.ModificationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	input.ProposedBy = c.GetString("userID")

	mod, err := hb.Invoices.ProposeModification(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mod)
}

// MarkModificationViewedHandler stamps when the customer saw the proposal.
func (hb *HandlerBundle) MarkModificationViewedHandler(c *gin.Context) {
	if err := hb.Invoices.MarkViewed(c.Request.Context(), c.Param("id"), c.GetString("userID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "marked viewed"})
}

// ApproveModificationHandler applies the proposed price change. Only the
// booking's customer may resolve a proposal.
func (hb *HandlerBundle) ApproveModificationHandler(c *gin.Context) {
	mod, err := hb.Invoices.Approve(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mod)
}

// RejectModificationHandler resolves a proposal without a price change.
func (hb *HandlerBundle) RejectModificationHandler(c *gin.Context) {
	mod, err := hb.Invoices.Reject(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mod)
}

// ListModificationsHandler lists all modifications for a booking.
func (hb *HandlerBundle) ListModificationsHandler(c *gin.Context) {
	mods, err := hb.Invoices.ListForBooking(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"modifications": mods})
}

// GetInvoiceHandler renders (or returns the existing) invoice for a booking.
func (hb *HandlerBundle) GetInvoiceHandler(c *gin.Context) {
	inv, err := hb.Invoices.GenerateInvoice(c.Request.Context(), c.Param("bookingID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}
