package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

type AdminClaims struct {
	Subject   string `json:"sub"`
	Role      string `json:"role"`
	ExpiresAt int64  `json:"exp"`
	IssuedAt  int64  `json:"iat"`
}

func parseAdminToken(jwtStr string, secret string) (*AdminClaims, error) {
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("Failed to parse claims")
	}
	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return nil, fmt.Errorf("Error marshalling claims: %w", err)
	}

	var parsed AdminClaims
	if err := json.Unmarshal(claimsJSON, &parsed); err != nil {
		return nil, fmt.Errorf("Error unmarshalling into claims struct: %w", err)
	}

	if time.Now().UTC().Unix() > parsed.ExpiresAt {
		return nil, fmt.Errorf("jwt is expired")
	}

	return &parsed, nil
}

// adminOnly guards mutating endpoints. Tokens are HS256-signed with the
// configured admin secret and must carry role "admin".
func (m ApiHandler) adminOnly(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		returnErrorJsonCode(fmt.Errorf("missing authorization header"), c, 401)
		return
	}
	jwtStr := strings.TrimPrefix(header, "Bearer ")

	claims, err := parseAdminToken(jwtStr, m.Config.AdminSecret)
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to authorize request: %w", err), c, 403)
		return
	}
	if claims.Role != "admin" {
		returnErrorJsonCode(fmt.Errorf("role %q may not access this endpoint", claims.Role), c, 403)
		return
	}

	c.Next()
}
