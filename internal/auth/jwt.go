// Package auth verifies the two credential schemes the API accepts:
// self-issued HS256 tokens and Google identity tokens.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yoockh/resumecraft/internal/models"
)

const issuer = "resumecraft"

var ErrInvalidToken = errors.New("invalid token")

// Identity is what the HTTP layer learns about the caller.
type Identity struct {
	UserID string
	Email  string
	Role   models.UserRole
}

type claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

type JWT struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWT(secret string, ttl time.Duration) *JWT {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWT{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (j *JWT) Issue(u *models.User) (string, time.Time, error) {
	now := j.now()
	exp := now.Add(j.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Email: u.Email,
		Role:  string(u.Role),
	})
	s, err := tok.SignedString(j.secret)
	return s, exp, err
}

func (j *JWT) Verify(raw string) (Identity, error) {
	c := &claims{}
	tok, err := jwt.ParseWithClaims(raw, c, func(t *jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil || tok == nil || !tok.Valid || c.Subject == "" {
		return Identity{}, ErrInvalidToken
	}

	role := models.UserRole(c.Role)
	if role == "" {
		role = models.RoleUser
	}
	return Identity{UserID: c.Subject, Email: c.Email, Role: role}, nil
}
