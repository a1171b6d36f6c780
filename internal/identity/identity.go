package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/pongarena/backend/internal/game"
)

var ErrInvalidToken = errors.New("invalid token")

// FromToken validates an HS256 JWT and extracts the player identity.
// The token must carry numeric user_id and string display_name claims.
func FromToken(secret, token string) (game.Identity, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return game.Identity{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return game.Identity{}, ErrInvalidToken
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return game.Identity{}, ErrInvalidToken
	}
	name, ok := claims["display_name"].(string)
	if !ok || name == "" {
		return game.Identity{}, ErrInvalidToken
	}

	return game.Identity{UserID: int(userID), DisplayName: name}, nil
}

// Mint signs a token for the given identity. Used by tests and by
// operators issuing tokens out of band.
func Mint(secret string, id game.Identity, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":      id.UserID,
		"display_name": id.DisplayName,
		"exp":          time.Now().Add(ttl).Unix(),
		"iat":          time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
