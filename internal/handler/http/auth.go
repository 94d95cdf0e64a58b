package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hr-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hr-backend-go/internal/handler/http/response"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		authService: authService,
	}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if isURLEncoded(r) {
		if err := r.ParseForm(); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
		loginReq.Email = r.PostForm.Get("email")
		loginReq.Password = r.PostForm.Get("password")
	} else if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Debug("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := loginReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			slog.Info("Login rejected", "email", loginReq.Email)
		} else {
			slog.Error("Login service error", "error", err)
		}
		response.HandleError(w, err)
		return
	}

	response.Success(w, "Login successful", result)
}

// Me implements AuthHandler.
func (a *AuthHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	response.Success(w, "Authenticated user retrieved successfully", map[string]any{
		"id":         claims.ID,
		"email":      claims.Email,
		"name":       claims.Name,
		"expires_at": claims.ExpiresAt,
	})
}
