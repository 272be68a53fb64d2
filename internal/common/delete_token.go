package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"airnav/groundcheck/internal/constants"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const deleteTokenAudience = "delete-ground-check"

// ErrInvalidDeleteToken covers malformed, expired, mismatched and reused tokens.
var ErrInvalidDeleteToken = errors.New("invalid delete token")

type deleteClaims struct {
	GroundCheckID uint `json:"gcid"`
	jwt.RegisteredClaims
}

// DeleteTokenSigner issues and redeems the single-use tokens that the delete
// confirmation page posts back. A token is bound to one ground check.
type DeleteTokenSigner struct {
	secretKey []byte
	ttl       time.Duration
	store     TokenStore
	now       func() time.Time
}

// NewDeleteTokenSigner creates a new delete token signer
func NewDeleteTokenSigner(secretKey []byte, ttl time.Duration, store TokenStore) *DeleteTokenSigner {
	return &DeleteTokenSigner{
		secretKey: secretKey,
		ttl:       ttl,
		store:     store,
		now:       time.Now,
	}
}

// Issue signs a token allowing one deletion of groundCheckID.
func (s *DeleteTokenSigner) Issue(groundCheckID uint) (string, error) {
	now := s.now()

	claims := deleteClaims{
		GroundCheckID: groundCheckID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{deleteTokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	// Sign with HMAC
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Redeem validates tokenString for groundCheckID and marks it used. Any
// failure wraps ErrInvalidDeleteToken except store errors.
func (s *DeleteTokenSigner) Redeem(ctx context.Context, tokenString string, groundCheckID uint) error {
	var claims deleteClaims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(deleteTokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDeleteToken, err)
	}
	if !token.Valid {
		return ErrInvalidDeleteToken
	}

	if claims.GroundCheckID != groundCheckID {
		return fmt.Errorf("%w: issued for ground check %d", ErrInvalidDeleteToken, claims.GroundCheckID)
	}
	if claims.ID == "" {
		return fmt.Errorf("%w: missing jti", ErrInvalidDeleteToken)
	}

	ttl := claims.ExpiresAt.Time.Sub(s.now())
	if ttl <= 0 {
		ttl = time.Second
	}

	claimed, err := s.store.Claim(ctx, string(constants.TokenPrefixUsedDelete)+claims.ID, ttl)
	if err != nil {
		return err
	}
	if !claimed {
		return fmt.Errorf("%w: already used", ErrInvalidDeleteToken)
	}

	return nil
}
