package auth

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

var loginMessages = validator.Messages{
	"email.required":    "Email is required",
	"email.email":       "Please provide a valid email address",
	"password.required": "Password is required",
	"password.min":      "Password must be at least 6 characters long",
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	return validator.Struct(r, loginMessages)
}

type LoginResponse struct {
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expires_at"`
	User      user.HRUserResponse `json:"user"`
}
