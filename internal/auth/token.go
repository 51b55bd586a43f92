// internal/auth/token.go
package auth

import (
	"fmt"
	"time"

	"github.com/dangerclosesec/crm/internal/policy"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenManager struct {
	secret       []byte
	expiryPeriod time.Duration
}

func NewTokenManager(secret string, expiryPeriod time.Duration) *TokenManager {
	return &TokenManager{
		secret:       []byte(secret),
		expiryPeriod: expiryPeriod,
	}
}

// Claims carries enough of the user to build a Principal without a lookup.
// Role changes take effect when the token is reissued.
type Claims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TeamID    string `json:"team_id,omitempty"`
	ManagerID string `json:"manager_id,omitempty"`
	jwt.RegisteredClaims
}

// Principal converts the claims into the acting principal. An unknown role
// becomes a sales executive.
func (c *Claims) Principal() (policy.Principal, error) {
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return policy.Principal{}, fmt.Errorf("invalid token subject: %w", err)
	}

	p := policy.Principal{ID: id, Role: policy.ParseRole(c.Role)}
	if p.TeamID, err = parseOptionalID(c.TeamID); err != nil {
		return policy.Principal{}, fmt.Errorf("invalid team claim: %w", err)
	}
	if p.ManagerID, err = parseOptionalID(c.ManagerID); err != nil {
		return policy.Principal{}, fmt.Errorf("invalid manager claim: %w", err)
	}
	return p, nil
}

func (tm *TokenManager) Generate(p policy.Principal, email string) (string, error) {
	claims := Claims{
		UserID:    p.ID.String(),
		Email:     email,
		Role:      p.Role.String(),
		TeamID:    formatOptionalID(p.TeamID),
		ManagerID: formatOptionalID(p.ManagerID),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tm.expiryPeriod)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

func (tm *TokenManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return tm.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}

func parseOptionalID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func formatOptionalID(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
