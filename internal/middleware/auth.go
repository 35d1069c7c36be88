package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/valencia-move/listings-backend/pkg/response"
)

// AdminRole is the role claim required on admin tokens
const AdminRole = "admin"

var errNoSecret = errors.New("admin secret not configured")

// AdminClaims are the JWT claims accepted by RequireAdmin
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// RequireAdmin rejects requests without a valid HS256 bearer token carrying role=admin.
// An empty secret rejects everything.
func RequireAdmin(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseAdminToken(c.GetHeader("Authorization"), secret)
		if err != nil {
			c.Error(err)
			response.Unauthorized(c, "Unauthorized")
			return
		}

		c.Set("subject", claims.Subject)
		c.Next()
	}
}

func parseAdminToken(header, secret string) (*AdminClaims, error) {
	if secret == "" {
		return nil, errNoSecret
	}

	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return nil, errors.New("missing bearer token")
	}

	claims := &AdminClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if claims.Role != AdminRole {
		return nil, errors.New("token lacks admin role")
	}

	return claims, nil
}

// SignAdminToken issues an admin token; used by the CLI and tests
func SignAdminToken(secret, subject string, claims jwt.RegisteredClaims) (string, error) {
	if secret == "" {
		return "", errNoSecret
	}
	claims.Subject = subject
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AdminClaims{
		Role:             AdminRole,
		RegisteredClaims: claims,
	})
	return token.SignedString([]byte(secret))
}
