package serverutils

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// LocalsSessionID is the fiber.Ctx Locals key holding the caller's session id.
const LocalsSessionID = "session_id"

type SessionCookieConfig struct {
	Name   string
	Secret string
	TTL    time.Duration
	Secure bool
}

// SessionMiddleware identifies the browser session through a signed cookie.
// A missing, expired or tampered cookie gets a fresh session id.
func SessionMiddleware(cfg SessionCookieConfig) fiber.Handler {
	secret := []byte(cfg.Secret)

	return func(ctx *fiber.Ctx) error {
		sessionID, err := ParseSessionToken(ctx.Cookies(cfg.Name), secret)
		if err != nil {
			sessionID = uuid.NewString()
			token, err := IssueSessionToken(sessionID, secret, cfg.TTL)
			if err != nil {
				return err
			}
			ctx.Cookie(&fiber.Cookie{
				Name:     cfg.Name,
				Value:    token,
				Expires:  time.Now().Add(cfg.TTL),
				HTTPOnly: true,
				Secure:   cfg.Secure,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}

		ctx.Locals(LocalsSessionID, sessionID)
		return ctx.Next()
	}
}

// SessionID returns the id placed by SessionMiddleware, or "" outside it.
func SessionID(ctx *fiber.Ctx) string {
	id, _ := ctx.Locals(LocalsSessionID).(string)
	return id
}

func IssueSessionToken(sessionID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"session_id": sessionID,
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	})
	return token.SignedString(secret)
}

func ParseSessionToken(tokenStr string, secret []byte) (string, error) {
	if tokenStr == "" {
		return "", errors.New("missing session token")
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", errors.New("invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	sessionID, ok := claims["session_id"].(string)
	if !ok || sessionID == "" {
		return "", errors.New("missing session_id claim")
	}
	return sessionID, nil
}
