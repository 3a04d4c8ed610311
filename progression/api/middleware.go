package api

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/ellavondegurechaff/strengthforge/progression/logger"
)

const userIDKey = "user_id"

// userID returns the identity set by the identity middleware.
func userID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDKey).(string)
	return id
}

func bearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// IssueToken signs an HS256 token whose subject is userID.
func IssueToken(secret, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		Issuer:    "strengthforge",
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken validates an HS256 token and returns its subject.
func ParseToken(secret, token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !parsed.Valid || strings.TrimSpace(claims.Subject) == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}

// Identity resolves the caller from a bearer JWT. Requests without a valid
// token are rejected with 401.
func Identity(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return sendError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
		}
		sub, err := ParseToken(secret, token)
		if err != nil {
			slog.Debug("Rejected bearer token", slog.String("type", "http"), slog.Any("error", err))
			return sendError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token", nil)
		}
		c.Locals(userIDKey, sub)
		return c.Next()
	}
}

// ServiceToken guards the cron and internal endpoints with a shared secret.
// An empty secret leaves the endpoint open.
func ServiceToken(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" {
			return c.Next()
		}
		token := bearerToken(c)
		if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			slog.Warn("Rejected service call",
				slog.String("type", "http"),
				slog.String("path", c.Path()),
				slog.String("ip", c.IP()))
			return sendError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid service token", nil)
		}
		return c.Next()
	}
}

// Logging logs every request once it has been answered.
func Logging() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = http.StatusInternalServerError
			}
		}
		extra := []any{slog.String("ip", c.IP())}
		if id := userID(c); id != "" {
			extra = append(extra, slog.String("user_id", id))
		}
		logger.LogRequest(c.Method(), c.Path(), status, time.Since(start), err, extra...)
		return err
	}
}
