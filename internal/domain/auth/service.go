package auth

import (
	"context"

	"github.com/cmlabs-hris/hr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/jwt"
)

type AuthService interface {
	// Login checks the credentials and issues a signed access token.
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	// ValidateCredentials returns the user for a matching email/password pair.
	// Unknown email and wrong password yield the same ErrInvalidCredentials.
	ValidateCredentials(ctx context.Context, email, password string) (user.HRUser, error)
	// VerifyToken never fails past its boundary: any problem yields ok=false.
	VerifyToken(token string) (claims jwt.Claims, ok bool)
}
