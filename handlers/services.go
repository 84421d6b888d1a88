package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"mountify/services/pricing"
)

// ListServicesHandler returns the bookable service catalog.
func (hb *HandlerBundle) ListServicesHandler(c *gin.Context) {
	services, err := hb.Catalog.ListServices(true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// ValidateCouponHandler previews a coupon against a subtotal without
// opening a checkout session.
func (hb *HandlerBundle) ValidateCouponHandler(c *gin.Context) {
	var input struct {
		Code     string  `json:"code"`
		Subtotal float64 `json:"subtotal"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	coupon, err := hb.Catalog.GetCouponByCode(input.Code)
	if err != nil || !coupon.Usable(time.Now()) {
		c.JSON(http.StatusNotFound, gin.H{"error": "coupon not valid"})
		return
	}
	discount := pricing.CouponDiscount(*coupon, input.Subtotal)
	c.JSON(http.StatusOK, gin.H{
		"code":     coupon.Code,
		"discount": discount,
		"total":    pricing.ApplyDiscount(input.Subtotal, discount),
	})
}

// CheckCoverageHandler reports whether any worker serves a zip code.
func (hb *HandlerBundle) CheckCoverageHandler(c *gin.Context) {
	cov, err := hb.Coverage.Check(c.Request.Context(), c.Param("zip"))
	if err != nil {
		if strings.Contains(err.Error(), "invalid zip") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cov)
}
