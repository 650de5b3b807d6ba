package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	types "github.com/yungbote/coursehub-backend/internal/domain"
)

var ErrInvalidToken = errors.New("invalid bearer token")

// Identity is the caller resolved from a verified bearer token.
type Identity struct {
	Subject   string
	Email     *string
	FirstName *string
	LastName  *string
	Picture   *string
	IsAdmin   *bool
}

// Upsert converts the identity claims into the users-row merge payload.
func (id Identity) Upsert() types.UserUpsert {
	return types.UserUpsert{
		ID:              id.Subject,
		Email:           id.Email,
		FirstName:       id.FirstName,
		LastName:        id.LastName,
		ProfileImageURL: id.Picture,
		IsAdmin:         id.IsAdmin,
	}
}

// TokenVerifier resolves identity only; issuing and refreshing sessions happens upstream.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (*Identity, error)
}

type identityClaims struct {
	Email      *string `json:"email,omitempty"`
	GivenName  *string `json:"given_name,omitempty"`
	FamilyName *string `json:"family_name,omitempty"`
	Picture    *string `json:"picture,omitempty"`
	IsAdmin    *bool   `json:"is_admin,omitempty"`
	jwt.RegisteredClaims
}

type hmacVerifier struct {
	secret []byte
	issuer string
	leeway time.Duration
}

// NewHMACTokenVerifier verifies HS256 tokens signed with secret. An empty issuer skips the iss check.
func NewHMACTokenVerifier(secret, issuer string) (TokenVerifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY is required")
	}
	return &hmacVerifier{
		secret: []byte(secret),
		issuer: strings.TrimSpace(issuer),
		leeway: 30 * time.Second,
	}, nil
}

func (v *hmacVerifier) Verify(_ context.Context, raw string) (*Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrInvalidToken
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(v.leeway),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &identityClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	sub := strings.TrimSpace(claims.Subject)
	if sub == "" {
		return nil, fmt.Errorf("%w: missing sub", ErrInvalidToken)
	}
	return &Identity{
		Subject:   sub,
		Email:     claims.Email,
		FirstName: claims.GivenName,
		LastName:  claims.FamilyName,
		Picture:   claims.Picture,
		IsAdmin:   claims.IsAdmin,
	}, nil
}

// SignIdentityToken issues an HS256 token carrying the identity claims. Used by local tooling and tests.
func SignIdentityToken(secret string, id Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := identityClaims{
		Email:      id.Email,
		GivenName:  id.FirstName,
		FamilyName: id.LastName,
		Picture:    id.Picture,
		IsAdmin:    id.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
