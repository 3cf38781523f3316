package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "context"  // timeout for the revocation lookup
    "net/http" // HTTP status codes for responses
    "strings"  // prefix checking and trimming
    "time"     // lookup timeout

    "github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
    "github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers

    "github.com/iliyamo/user-auth-service/internal/utils"
)

// TokenValidator answers whether a stored token hash is still live and who
// owns it. Satisfied by *repository.TokenRepo.
type TokenValidator interface {
	Validate(ctx context.Context, tokenHash string) (uint64, error)
}

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the caller's identity into the request context. A token must
// pass two checks: the HS256 signature and expiry of the JWT itself, and a
// live (non-revoked) row in the token store. The second check is what makes
// logout of a single token effective before the JWT expires.
//
// On success the context carries "user_id" (uint64) and "token_hash" (the
// SHA-256 digest of the presented token) so the logout handler can revoke
// exactly the session that called it.
func JWTAuth(secret string, tokens TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				// Reject tokens signed with anything but HMAC.
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			hash := utils.HashTokenRaw(raw)
			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			userID, err := tokens.Validate(ctx, hash)
			if err != nil {
				// Unknown, expired and revoked tokens all land here.
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set("user_id", userID)
			c.Set("token_hash", hash)
			return next(c)
		}
	}
}
