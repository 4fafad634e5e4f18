package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"topicmatcher/internal/domain"
)

type jwtClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

type jwtManager struct {
	secret []byte
}

// NewJWTManager returns an HS256 token issuer and verifier sharing the given
// secret.
func NewJWTManager(secret string) *jwtManager {
	return &jwtManager{secret: []byte(secret)}
}

var (
	_ domain.TokenIssuer   = (*jwtManager)(nil)
	_ domain.TokenVerifier = (*jwtManager)(nil)
)

func (m *jwtManager) Issue(userID, email string, role domain.UserRole, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		Email: email,
		Role:  string(role),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (m *jwtManager) Verify(tokenString string) (string, domain.UserRole, error) {
	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", "", domain.ErrInvalidCredentials
	}
	role, ok := domain.ParseUserRole(claims.Role)
	if !ok {
		return "", "", domain.ErrInvalidCredentials
	}
	if claims.Subject == "" {
		return "", "", domain.ErrInvalidCredentials
	}
	return claims.Subject, role, nil
}
