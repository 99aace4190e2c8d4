package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AnshRaj112/pastebin-backend/internal/config"
)

// SessionDuration is 7 days
const SessionDuration = 7 * 24 * time.Hour

// Identity is the user identity recovered from a verified session token.
type Identity struct {
	UserID   string
	Username string
}

// Claims is the session token payload: the registered claims plus the user
// identity. Claim names match the tokens already in circulation.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// TokenService issues and verifies signed session tokens. Tokens are
// self-contained (HS256 signature + expiry); nothing is stored server-side
// and there is no revocation.
type TokenService struct {
	secret []byte
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{secret: []byte(cfg.JWTSecret)}
}

// Issue creates a signed token for the user, valid for 7 days.
func (s *TokenService) Issue(userID, username string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionDuration)),
		},
		UserID:   userID,
		Username: username,
	})
	return token.SignedString(s.secret)
}

// Verify validates the token's signature and expiry and returns the embedded
// identity. Every failure (expired, tampered, malformed, empty) collapses to
// nil; no error crosses this boundary.
func (s *TokenService) Verify(tokenString string) *Identity {
	if tokenString == "" {
		return nil
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil
	}

	return &Identity{UserID: claims.UserID, Username: claims.Username}
}
