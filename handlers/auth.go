package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mountify/services/user"
)

// RegisterHandler creates a customer account.
func (hb *HandlerBundle) RegisterHandler(c *gin.Context) {
	var input user.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := hb.Users.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": result.Token, "user": result.User})
}

// LoginHandler authenticates a user and returns a session token.
func (hb *HandlerBundle) LoginHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := hb.Users.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": result.Token, "user": result.User})
}

// LogoutHandler revokes the caller's session token.
func (hb *HandlerBundle) LogoutHandler(c *gin.Context) {
	userID := c.GetString("userID")
	if err := hb.Users.Logout(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
