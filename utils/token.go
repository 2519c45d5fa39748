package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"todo-web/models"
)

// ResetTokenMaxAge is how long a password-reset token stays valid.
const ResetTokenMaxAge = 3600 * time.Second

const resetSalt = "password-reset-salt"

// ErrInvalidToken covers every reset-token failure: bad signature,
// tampering, expiry, or a malformed token.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenMaker issues and verifies password-reset tokens. The signing key
// mixes the application secret, a fixed salt, and the user's current
// password hash, so resetting the password invalidates every token
// issued before the reset.
type TokenMaker struct {
	secret string

	// Now is the clock used for issuance and expiry checks.
	// Overridden in tests; nil means time.Now.
	Now func() time.Time
}

// NewTokenMaker builds a TokenMaker signing with secret.
func NewTokenMaker(secret string) *TokenMaker {
	return &TokenMaker{secret: secret}
}

func (t *TokenMaker) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

func (t *TokenMaker) signingKey(passwordHash string) []byte {
	mac := hmac.New(sha256.New, []byte(t.secret))
	mac.Write([]byte(resetSalt))
	mac.Write([]byte(passwordHash))
	return mac.Sum(nil)
}

// IssueReset signs a reset token for the user, expiring after
// ResetTokenMaxAge.
func (t *TokenMaker) IssueReset(user *models.User) (string, error) {
	issued := t.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID.String(),
		"iat":     issued.Unix(),
		"exp":     issued.Add(ResetTokenMaxAge).Unix(),
	})
	return token.SignedString(t.signingKey(user.PasswordHash))
}

// ResetSubject extracts the user id a token claims to be for, without
// verifying it. The caller must load that user and then call
// VerifyReset, which checks the signature against the user's key.
func (t *TokenMaker) ResetSubject(tokenString string) (uuid.UUID, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}

// VerifyReset checks the token's signature and expiry against the
// user's current signing key.
func (t *TokenMaker) VerifyReset(tokenString string, user *models.User) error {
	token, err := jwt.Parse(
		tokenString,
		func(token *jwt.Token) (interface{}, error) {
			return t.signingKey(user.PasswordHash), nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ErrInvalidToken
	}
	if subject, _ := claims["user_id"].(string); subject != user.ID.String() {
		return ErrInvalidToken
	}
	return nil
}
