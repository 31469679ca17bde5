package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token types carried in the "typ" claim.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

type Claims struct {
	UserID string
	Role   string
	Type   string
	JTI    string
}

// Issue signs an HS256 token for the user. Refresh tokens get a JTI so the
// session store can revoke them individually.
func Issue(secret, userID, role, typ string, ttl time.Duration) (string, string, error) {
	jti := uuid.NewString()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"typ":  typ,
		"jti":  jti,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	return signed, jti, err
}

// Parse validates a token string and returns its claims.
func Parse(secret, tokenStr string) (*Claims, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("invalid token")
	}

	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	c := &Claims{}
	if v, ok := mc["sub"].(string); ok {
		c.UserID = v
	}
	if v, ok := mc["role"].(string); ok {
		c.Role = v
	}
	if v, ok := mc["typ"].(string); ok {
		c.Type = v
	}
	if v, ok := mc["jti"].(string); ok {
		c.JTI = v
	}
	if c.UserID == "" {
		return nil, errors.New("missing subject")
	}
	return c, nil
}

// FromAuthHeader extracts the raw token from an Authorization header.
func FromAuthHeader(header string) (string, error) {
	h := strings.TrimSpace(header)
	if h == "" {
		return "", errors.New("missing authorization")
	}
	if strings.HasPrefix(strings.ToLower(h), "bearer ") {
		h = strings.TrimSpace(h[7:])
	}
	if h == "" {
		return "", errors.New("missing token")
	}
	return h, nil
}
