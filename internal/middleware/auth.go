package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// claimsKey is the key used to store decoded token claims in context
const claimsKey = "claims"

// Claims middleware decodes JWT claims from the Authorization header and
// attaches them to the request context, standing in for the gateway
// authorizer that populates the request context in a deployed stack.
//
// When secret is set, token signatures are verified and invalid tokens
// are rejected. When secret is empty, claims are decoded without
// verification so handlers can be exercised with hand-built tokens.
// Requests without a token pass through with no claims attached.
func Claims(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.Next()
			return
		}

		claims := jwt.MapClaims{}

		if secret == "" {
			if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
				logrus.WithFields(logrus.Fields{
					"error": err.Error(),
					"path":  c.Request.URL.Path,
				}).Debug("Failed to decode token claims")
				c.Next()
				return
			}
		} else {
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				logrus.WithFields(logrus.Fields{
					"path": c.Request.URL.Path,
				}).Warn("Token validation failed")

				c.JSON(http.StatusUnauthorized, gin.H{
					"error": "Invalid or expired token",
				})
				c.Abort()
				return
			}
		}

		c.Set(claimsKey, map[string]interface{}(claims))
		c.Next()
	}
}

// ClaimsFromContext returns the claims attached by the Claims middleware,
// or nil when the request carried no token
func ClaimsFromContext(c *gin.Context) map[string]interface{} {
	value, exists := c.Get(claimsKey)
	if !exists {
		return nil
	}

	claims, ok := value.(map[string]interface{})
	if !ok {
		return nil
	}
	return claims
}

// bearerToken extracts the token from a "Bearer <token>" authorization header
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return ""
	}
	return tokenParts[1]
}
