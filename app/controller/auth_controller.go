package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"mugix-storefront/auth"
	"mugix-storefront/utils"
)

// LoginRequest is the body of POST /api/admin/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the admin token
type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

type LoginUser struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// Authenticator checks admin credentials
type Authenticator interface {
	Login(email, password string) (string, error)
}

// AuthController handles admin login
type AuthController struct {
	auth   Authenticator
	logger *zap.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(a Authenticator, logger *zap.Logger) *AuthController {
	return &AuthController{auth: a, logger: logger}
}

// Login handles POST /api/admin/login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		utils.WriteError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	token, err := c.auth.Login(req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrNotConfigured):
		c.logger.Warn("admin login rejected", zap.String("email", req.Email), zap.Error(err))
		utils.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	case err != nil:
		writeServiceError(w, c.logger, "login", err, "")
		return
	}

	c.logger.Info("admin logged in", zap.String("email", req.Email))
	_ = utils.WriteJSON(w, http.StatusOK, LoginResponse{
		Token: token,
		User:  LoginUser{Email: req.Email, IsAdmin: true},
	})
}
