package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// TokenTypeAccess marks tokens that may be used to call the API
const TokenTypeAccess = "access"

// Claims represents the JWT claims
type Claims struct {
	Type string `json:"type"`
	jwt.StandardClaims
}

// Token is a signed JWT together with its expiry
type Token struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// AuthTokens is returned to the client after register and login
type AuthTokens struct {
	Access Token `json:"access"`
}

// TokenManager signs and verifies access tokens with a shared HMAC secret
type TokenManager struct {
	key       []byte
	accessTTL time.Duration
	now       func() time.Time
}

// NewTokenManager creates a TokenManager issuing tokens valid for accessTTL
func NewTokenManager(secret string, accessTTL time.Duration) *TokenManager {
	return &TokenManager{
		key:       []byte(secret),
		accessTTL: accessTTL,
		now:       time.Now,
	}
}

// GenerateToken signs a token for userID of the given type
func (tm *TokenManager) GenerateToken(userID string, expires time.Time, tokenType string) (string, error) {
	claims := &Claims{
		Type: tokenType,
		StandardClaims: jwt.StandardClaims{
			Subject:   userID,
			IssuedAt:  tm.now().Unix(),
			ExpiresAt: expires.Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// GenerateAuthTokens issues a fresh access token for userID
func (tm *TokenManager) GenerateAuthTokens(userID string) (*AuthTokens, error) {
	expires := tm.now().Add(tm.accessTTL)
	token, err := tm.GenerateToken(userID, expires, TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	return &AuthTokens{Access: Token{Token: token, Expires: expires}}, nil
}

// ParseAccessToken verifies the signature, expiry and type of tokenStr
func (tm *TokenManager) ParseAccessToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tm.key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Type != TokenTypeAccess {
		return nil, errors.New("invalid token type")
	}
	return claims, nil
}
