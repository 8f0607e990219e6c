package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/eventschedule/eventschedule/internal/models"
)

// Validation failures, from least to most specific. Handlers must collapse
// all of them to ErrInvalidToken before answering a client; the split exists
// for internal diagnostics only.
var (
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrMalformed        = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrExpired          = errors.New("token expired")
	ErrInvalidIssuer    = errors.New("unexpected token issuer")
	ErrInvalidAudience  = errors.New("unexpected token audience")
)

// Claims is the full claim set carried by every token this service issues.
// Subject holds the username; UserId, FirstName and LastName keep the wire
// names the rest of the platform already expects.
type Claims struct {
	jwt.RegisteredClaims
	Role      models.Role `json:"role"`
	UserID    string      `json:"UserId"`
	FirstName string      `json:"FirstName"`
	LastName  string      `json:"LastName"`
}

// Codec issues and validates HS256 bearer tokens. The key is loaded once at
// startup and never rotated in-process; a Codec holds no per-call state, so a
// single value is shared by every request.
type Codec struct {
	Secret   []byte
	Issuer   string
	Audience string
	TTL      time.Duration
}

// Issue signs a token asserting the account's identity, expiring TTL from
// now. The same mechanism backs login sessions and password-reset
// capabilities; only the caller's interpretation differs.
func (c *Codec) Issue(a *models.Account) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(c.TTL)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.Username,
			Issuer:    c.Issuer,
			Audience:  jwt.ClaimStrings{c.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Role:      a.Role,
		UserID:    a.ID.String(),
		FirstName: a.FirstName,
		LastName:  a.LastName,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, exp, nil
}

// Validate parses and verifies a token: HS256 signature against the
// configured key, expiry with zero clock-skew tolerance, and exact issuer and
// audience matches. Any failure is terminal for the request.
func (c *Codec) Validate(tokenStr string) (*Claims, error) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrInvalidSignature
		}
		return c.Secret, nil
	},
		jwt.WithIssuer(c.Issuer),
		jwt.WithAudience(c.Audience),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenInvalidIssuer):
			return nil, ErrInvalidIssuer
		case errors.Is(err, jwt.ErrTokenInvalidAudience):
			return nil, ErrInvalidAudience
		default:
			return nil, ErrMalformed
		}
	}
	if !tkn.Valid {
		return nil, ErrInvalidSignature
	}
	return &claims, nil
}
