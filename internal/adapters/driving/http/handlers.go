package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/storefront-labs/storefront-core/internal/core/domain"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns the readiness status of the API (checks database and session store connections)
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "A backing store is unreachable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "session store unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Auth endpoints

// handleJoin godoc
// @Summary      Register account
// @Description  Create a new customer account
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.RegisterRequest  true  "Account details"
// @Success      201      {object}  domain.Profile
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      409      {object}  ErrorResponse  "Email or phone number already registered"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /auth/join [post]
func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := s.userService.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "email, password, and name are required")
		case errors.Is(err, domain.ErrAlreadyExists):
			writeError(w, http.StatusConflict, "account already exists")
		default:
			writeError(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, profile)
}

// handleLogin godoc
// @Summary      User login
// @Description  Authenticate with email and password to receive an access/refresh token pair
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Login credentials"
// @Success      200      {object}  domain.TokenPair
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid credentials"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pair, err := s.authService.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "email and password are required")
		case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidCredentials):
			// One message for both, so callers cannot probe which accounts exist
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		default:
			writeError(w, http.StatusInternalServerError, "authentication failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, pair)
}

// handleRefresh godoc
// @Summary      Refresh access token
// @Description  Exchange a live refresh token for a new access token. The refresh token stays valid.
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.RefreshResponse
// @Failure      401  {object}  ErrorResponse  "Refresh token invalid, expired, or superseded"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /auth/refresh [post]
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	// The refresh middleware already vetted the bearer token
	token := extractBearerToken(r)

	resp, err := s.authService.Refresh(r.Context(), token)
	if err != nil {
		if domain.IsTokenError(err) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		writeError(w, http.StatusInternalServerError, "refresh failed")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleLogout godoc
// @Summary      Logout
// @Description  Revoke the principal's session. The outstanding refresh token stops working immediately.
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  StatusResponse
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /auth/logout [post]
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	principal := GetPrincipal(r.Context())
	if principal == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := s.authService.Logout(r.Context(), principal.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "logout failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// User endpoints

// handleGetMe godoc
// @Summary      Get current user
// @Description  Get the currently authenticated user's profile
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Profile
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      404  {object}  ErrorResponse  "User not found"
// @Router       /me [get]
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	principal := GetPrincipal(r.Context())
	if principal == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	profile, err := s.userService.Get(r.Context(), principal.ID)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// Response helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
