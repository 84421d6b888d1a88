package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetProfileHandler returns the caller's own account.
func (hb *HandlerBundle) GetProfileHandler(c *gin.Context) {
	profile, err := hb.Users.GetProfile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateFCMTokenHandler stores the caller's device push token.
func (hb *HandlerBundle) UpdateFCMTokenHandler(c *gin.Context) {
	var input struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := hb.Users.UpdateFCMToken(c.Request.Context(), c.GetString("userID"), input.Token); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "push token updated"})
}

// SavePaymentMethodHandler attaches a tokenized payment method to the caller.
func (hb *HandlerBundle) SavePaymentMethodHandler(c *gin.Context) {
	var input struct {
		PaymentMethodID string `json:"paymentMethodId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := hb.Users.SavePaymentMethod(c.Request.Context(), c.GetString("userID"), input.PaymentMethodID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment method saved"})
}
