package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type tokenClaims struct {
	UserID   string
	StaffID  string
	Role     string
	IsActive bool
}

func signToken(c tokenClaims, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":   c.UserID,
		"staff_id":  c.StaffID,
		"role":      c.Role,
		"is_active": c.IsActive,
		"type":      tokenType,
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	})
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func issueTokens(c tokenClaims) (TokenResponse, error) {
	access, err := signToken(c, "access", accessTokenTTL)
	if err != nil {
		return TokenResponse{}, err
	}
	refresh, err := signToken(c, "refresh", refreshTokenTTL)
	if err != nil {
		return TokenResponse{}, err
	}
	return TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(accessTokenTTL.Seconds()),
	}, nil
}

func parseRefreshToken(tokenString string) (tokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return tokenClaims{}, fmt.Errorf("invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return tokenClaims{}, fmt.Errorf("invalid refresh token claims")
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return tokenClaims{}, fmt.Errorf("not a refresh token")
	}

	userID, _ := claims["user_id"].(string)
	staffID, _ := claims["staff_id"].(string)
	if userID == "" || staffID == "" {
		return tokenClaims{}, fmt.Errorf("refresh token missing subject")
	}

	return tokenClaims{UserID: userID, StaffID: staffID}, nil
}
