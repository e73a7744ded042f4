// Package auth guards the admin surface (result publication, settlement,
// rule management) with a signed bearer token.
package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
)

// Claims carried by admin tokens. Role must be "admin".
type Claims struct {
	Role string `json:"role"`
	jwt.Claims
}

// AdminOnly verifies an HS256 bearer token signed with `secret` and rejects
// anything expired, unsigned or not carrying the admin role.
func AdminOnly(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		tok, err := jwt.ParseSigned(raw, []jose.SignatureAlgorithm{jose.HS256})
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed token"})
			return
		}

		var claims Claims
		if err := tok.Claims(secret, &claims); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token signature"})
			return
		}
		if err := claims.Validate(jwt.Expected{Time: time.Now()}); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token expired"})
			return
		}
		if claims.Role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}

// IssueAdminToken mints a short-lived admin token. Used by ops tooling and
// the auth tests.
func IssueAdminToken(secret []byte, ttl time.Duration) (string, error) {
	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: secret},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", err
	}
	claims := Claims{
		Role: "admin",
		Claims: jwt.Claims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
			Expiry:   jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	return jwt.Signed(signer).Claims(claims).Serialize()
}
