package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hr-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	user.UserRepository
	jwt.Service
	dummyHash []byte
}

func NewAuthService(userRepository user.UserRepository, jwtService jwt.Service) (*AuthServiceImpl, error) {
	// Compared against when the email is unknown so both failure paths cost one bcrypt round.
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare password hasher: %w", err)
	}

	return &AuthServiceImpl{
		UserRepository: userRepository,
		Service:        jwtService,
		dummyHash:      dummyHash,
	}, nil
}

// ValidateCredentials implements auth.AuthService.
func (a *AuthServiceImpl) ValidateCredentials(ctx context.Context, email, password string) (user.HRUser, error) {
	userData, err := a.UserRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(a.dummyHash, []byte(password))
			return user.HRUser{}, auth.ErrInvalidCredentials
		}
		return user.HRUser{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(password)); err != nil {
		return user.HRUser{}, auth.ErrInvalidCredentials
	}

	return userData, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest) (auth.LoginResponse, error) {
	userData, err := a.ValidateCredentials(ctx, loginReq.Email, loginReq.Password)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	token, expiresAt, err := a.Service.GenerateToken(userData.ID, userData.Email, userData.Name)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      userData.Public(),
	}, nil
}

// VerifyToken implements auth.AuthService.
func (a *AuthServiceImpl) VerifyToken(token string) (jwt.Claims, bool) {
	claims, err := a.Service.VerifyToken(token)
	if err != nil {
		return jwt.Claims{}, false
	}
	return claims, true
}

var _ auth.AuthService = (*AuthServiceImpl)(nil)
