// utils/auth.go
package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	PasswordCost = 10
	TokenTTL     = 7 * 24 * time.Hour

	TokenKindUser   = "user"
	TokenKindClient = "client"
)

var ErrWrongTokenKind = errors.New("token kind mismatch")

// Hash password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	return string(bytes), err
}

// Check password
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Claims is shared by staff and client tokens. Kind keeps the two apart so a
// client token never passes the staff middleware and vice versa.
type Claims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

// GenerateUserToken signs a staff token for userID.
func GenerateUserToken(userID uint, secret []byte) (string, error) {
	return generateToken(TokenKindUser, userID, secret, time.Now())
}

// GenerateClientToken signs an end-customer token for clientID.
func GenerateClientToken(clientID uint, secret []byte) (string, error) {
	return generateToken(TokenKindClient, clientID, secret, time.Now())
}

func generateToken(kind string, id uint, secret []byte, now time.Time) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("JWT secret not set")
	}
	claims := Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(id), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken verifies signature, expiry and kind, and returns the subject id.
func ParseToken(tokenString, kind string, secret []byte) (uint, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, errors.New("invalid token")
	}
	if claims.Kind != kind {
		return 0, ErrWrongTokenKind
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid token subject")
	}
	return uint(id), nil
}
