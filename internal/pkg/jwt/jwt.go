package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var ErrInvalidClaims = errors.New("token is missing required claims")

// Claims is the identity carried by an access token.
type Claims struct {
	ID        int64
	Email     string
	Name      string
	ExpiresAt time.Time
}

type Service interface {
	GenerateToken(id int64, email, name string) (token string, expiresAt time.Time, err error)
	VerifyToken(token string) (Claims, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	expiration time.Duration
	tokenAuth  *jwtauth.JWTAuth
	now        func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, expiration time.Duration) *JWTService {
	return &JWTService{
		expiration: expiration,
		tokenAuth:  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:        time.Now,
	}
}

// GenerateToken signs an HS256 token embedding the HR user's identity.
func (j *JWTService) GenerateToken(id int64, email, name string) (string, time.Time, error) {
	issuedAt := j.now()
	expiresAt := issuedAt.Add(j.expiration)

	claims := map[string]interface{}{
		"id":    id,
		"email": email,
		"name":  name,
		"iat":   issuedAt.Unix(),
		"exp":   expiresAt.Unix(),
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("encode token: %w", err)
	}
	return tokenString, time.Unix(expiresAt.Unix(), 0), nil
}

// VerifyToken checks signature and expiry and extracts the identity claims.
func (j *JWTService) VerifyToken(tokenString string) (Claims, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return Claims{}, err
	}
	return ClaimsFromToken(token)
}

// ClaimsFromToken reads the identity claims out of an already verified token.
func ClaimsFromToken(token jwt.Token) (Claims, error) {
	if token == nil {
		return Claims{}, ErrInvalidClaims
	}

	rawID, ok := token.Get("id")
	if !ok {
		return Claims{}, ErrInvalidClaims
	}

	var id int64
	switch v := rawID.(type) {
	case float64:
		id = int64(v)
	case int64:
		id = v
	case int:
		id = int64(v)
	default:
		return Claims{}, ErrInvalidClaims
	}

	email, _ := stringClaim(token, "email")
	name, _ := stringClaim(token, "name")
	if id <= 0 || email == "" {
		return Claims{}, ErrInvalidClaims
	}

	return Claims{
		ID:        id,
		Email:     email,
		Name:      name,
		ExpiresAt: token.Expiration(),
	}, nil
}

func stringClaim(token jwt.Token, key string) (string, bool) {
	v, ok := token.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
