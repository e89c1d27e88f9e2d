package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"membership-api/internal/model"
	"membership-api/pkg/apierror"
)

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type TokenIssuer struct {
	keys Keys
	now  func() time.Time
}

func NewTokenIssuer(keys Keys) *TokenIssuer {
	return &TokenIssuer{keys: keys, now: time.Now}
}

// Issue signs an HS256 token for subject that expires ttl from now.
func (i *TokenIssuer) Issue(subject string, role string, ttl time.Duration) (string, time.Time, error) {
	now := i.now().UTC()
	expiresAt := now.Add(ttl).Truncate(time.Second)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(i.keys.signing)
	if err != nil {
		return "", time.Time{}, apierror.Wrap(apierror.KindTokenCreation, "sign token", err)
	}

	return signed, expiresAt, nil
}

type TokenValidator struct {
	keys Keys
	now  func() time.Time
}

func NewTokenValidator(keys Keys) *TokenValidator {
	return &TokenValidator{keys: keys, now: time.Now}
}

// Validate checks algorithm, signature and expiry. It does not look at the
// role.
func (v *TokenValidator) Validate(tokenString string) (*model.Claims, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(strings.TrimSpace(tokenString), claims,
		func(*jwt.Token) (any, error) {
			return v.keys.verifying, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil || !parsed.Valid {
		return nil, apierror.Wrap(apierror.KindInvalidToken, "invalid or expired token", err)
	}

	if claims.Subject == "" {
		return nil, apierror.New(apierror.KindInvalidToken, "invalid token subject", "")
	}

	out := &model.Claims{
		Subject:   claims.Subject,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}

	return out, nil
}
