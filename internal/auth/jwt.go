package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// EnrollmentTTL is how long an issued enrollment credential stays valid.
const EnrollmentTTL = 30 * 24 * time.Hour

// ErrTokenInvalid covers every credential rejection: bad signature, wrong
// secret, malformed token, or expiry. Callers get no finer distinction.
var ErrTokenInvalid = errors.New("token is invalid or expired")

// EnrollmentClaims represents the claims in an enrollment credential
type EnrollmentClaims struct {
	DeviceID string `json:"deviceId"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies enrollment credentials signed with the
// process-wide secret.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a token service signing with the given secret.
func NewTokenService(secret []byte) *TokenService {
	return &TokenService{secret: secret}
}

// Issue generates a signed enrollment credential for the device
func (s *TokenService) Issue(deviceID string) (string, error) {
	claims := &EnrollmentClaims{
		DeviceID: deviceID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(EnrollmentTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates an enrollment credential and returns the device ID it
// was issued for.
func (s *TokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &EnrollmentClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(*EnrollmentClaims)
	if !ok || !token.Valid {
		return "", ErrTokenInvalid
	}

	return claims.DeviceID, nil
}
