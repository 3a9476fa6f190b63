package api

import (
	"errors"
	"net/http"

	"github.com/fintrack/backend/auth"
	"github.com/fintrack/backend/db"
	"github.com/fintrack/backend/logging"
	"github.com/fintrack/backend/models"
	"github.com/gin-gonic/gin"
)

// Signup registers a new user.
// @Summary Sign up
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.SignupRequest true "New user"
// @Success 201 {object} models.SignupResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/auth/signup [post]
func (h *Handler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "All fields are required")
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(c, err, "All fields are required")
		return
	}

	ctx := c.Request.Context()
	existing, err := h.storage.GetUserByEmail(ctx, req.Email)
	if err != nil {
		internalError(c, "Internal server error", err)
		return
	}
	if existing != nil {
		fail(c, http.StatusConflict, "Email already in use")
		return
	}
	existing, err = h.storage.GetUserByUserName(ctx, req.UserName)
	if err != nil {
		internalError(c, "Internal server error", err)
		return
	}
	if existing != nil {
		fail(c, http.StatusConflict, "UserName already in use")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		internalError(c, "User creation failed", err)
		return
	}
	user, err := h.storage.CreateUser(ctx, req.UserName, req.Email, hash)
	switch {
	case errors.Is(err, db.ErrEmailTaken):
		fail(c, http.StatusConflict, "Email already in use")
		return
	case errors.Is(err, db.ErrUserNameTaken):
		fail(c, http.StatusConflict, "UserName already in use")
		return
	case err != nil:
		internalError(c, "User creation failed", err)
		return
	}

	logging.FromContext(c).Info().Str("user", user.UserName).Msg("user signed up")
	c.JSON(http.StatusCreated, models.SignupResponse{
		Success: true,
		Message: "User created successfully",
		User:    models.UserSummary{UserName: user.UserName, Email: user.Email},
	})
}

// Login checks credentials and issues a token.
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Email and password are required")
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(c, err, "Email and password are required")
		return
	}

	ctx := c.Request.Context()
	log := logging.FromContext(c)
	if h.limiter != nil {
		if err := h.limiter.Check(ctx, req.Email); err != nil {
			if errors.Is(err, auth.ErrLoginRateLimited) {
				fail(c, http.StatusTooManyRequests, "Too many login attempts, please try again later")
				return
			}
			log.Warn().Err(err).Msg("login limiter unavailable")
		}
	}

	user, err := h.storage.GetUserByEmail(ctx, req.Email)
	if err != nil {
		internalError(c, "Internal server error", err)
		return
	}
	if user == nil || !auth.CheckPassword(user.Password, req.Password) {
		if h.limiter != nil {
			if err := h.limiter.Fail(ctx, req.Email); err != nil {
				log.Warn().Err(err).Msg("failed to record login attempt")
			}
		}
		fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, expiresAt, err := h.auth.Login(ctx, user)
	if err != nil {
		internalError(c, "Failed to generate token", err)
		return
	}
	if h.limiter != nil {
		if err := h.limiter.Reset(ctx, req.Email); err != nil {
			log.Warn().Err(err).Msg("failed to reset login attempts")
		}
	}

	log.Info().Str("user", user.UserName).Msg("user logged in")
	c.JSON(http.StatusOK, models.LoginResponse{
		Success:   true,
		Message:   "Login successful",
		Token:     token,
		ExpiresAt: expiresAt,
		User:      models.UserSummary{ID: user.ID, UserName: user.UserName, Email: user.Email},
	})
}

// Logout drops the caller's session.
// @Summary Log out
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.MessageResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	claims := currentClaims(c)
	if err := h.auth.Revoke(c.Request.Context(), claims.UserName); err != nil {
		internalError(c, "Failed to invalidate session", err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: "Logout successful"})
}

// Verify reports whether the bearer token is still valid.
// @Summary Verify token
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.VerifyResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/auth/verify [post]
func (h *Handler) Verify(c *gin.Context) {
	claims := currentClaims(c)
	c.JSON(http.StatusOK, models.VerifyResponse{
		Success: true,
		Message: "Token is valid",
		User:    models.UserSummary{UserName: claims.UserName},
	})
}
