package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/lotusloft/studio/internal/studio/service"
	"github.com/lotusloft/studio/pkg/httpx"
	"github.com/lotusloft/studio/pkg/slogx"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleLogin godoc
//
//	@Summary		Authenticate a user
//	@Description	Verifies email and password and returns a signed bearer token alongside the account profile.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	JwtResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"Missing email or password"
//	@Failure		401		{object}	httpx.ErrorResponse	"Bad credentials"
//	@Router			/api/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.WriteError(w, r, http.StatusBadRequest, "Email and password are required")
		return
	}

	result, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Same rejection whether the email is unknown or the
			// password is wrong.
			httpx.WriteError(w, r, http.StatusUnauthorized, "Bad credentials")
			return
		}
		slogx.FromContext(ctx).Error("login failed", "err", err)
		httpx.WriteError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, JwtResponse{
		Token:     result.Token,
		Type:      "Bearer",
		ID:        result.User.ID,
		Username:  result.User.Email,
		FirstName: result.User.FirstName,
		LastName:  result.User.LastName,
		Admin:     result.User.Admin,
	})
}

// HandleRegister godoc
//
//	@Summary		Register a new account
//	@Description	Creates a non-admin account. Password reset does not exist; choose wisely.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SignupRequest	true	"Signup fields"
//	@Success		200		{object}	MessageResponse
//	@Failure		400		{object}	MessageResponse	"Validation failure or email already taken"
//	@Router			/api/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validateSignup(req); msg != "" {
		httpx.WriteJSON(w, http.StatusBadRequest, MessageResponse{Message: msg})
		return
	}

	err := h.AuthService.Register(ctx, service.RegisterParams{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			httpx.WriteJSON(w, http.StatusBadRequest, MessageResponse{Message: "Error: Email is already taken!"})
			return
		}
		slogx.FromContext(ctx).Error("registration failed", "err", err)
		httpx.WriteError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: "User registered successfully!"})
}

func validateSignup(req SignupRequest) string {
	switch {
	case req.Email == "" || len(req.Email) > 50 || !strings.Contains(req.Email, "@"):
		return "Error: Invalid email"
	case len(req.FirstName) < 3 || len(req.FirstName) > 20:
		return "Error: First name must be between 3 and 20 characters"
	case len(req.LastName) < 3 || len(req.LastName) > 20:
		return "Error: Last name must be between 3 and 20 characters"
	case len(req.Password) < 6 || len(req.Password) > 40:
		return "Error: Password must be between 6 and 40 characters"
	}
	return ""
}
