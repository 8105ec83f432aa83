package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/lucasmarins-seget/agendamento-seget-back/internal/config"
)

const (
	ContextAdminID      = "adminID"
	ContextAdminEmail   = "adminEmail"
	ContextIsSuperAdmin = "isSuperAdmin"
	ContextRoomAccess   = "roomAccess"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {

			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_claims"})
			return
		}

		adminID, ok1 := claims["sub"].(string)
		email, ok2 := claims["email"].(string)
		isSuperAdmin, _ := claims["isSuperAdmin"].(bool)
		roomAccess, _ := claims["roomAccess"].(string)
		if !ok1 || !ok2 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}

		c.Set(ContextAdminID, adminID)
		c.Set(ContextAdminEmail, email)
		c.Set(ContextIsSuperAdmin, isSuperAdmin)
		c.Set(ContextRoomAccess, roomAccess)

		c.Next()
	}
}

// SuperAdminOnly protege rotas de gestão de usuários e configurações
// globais. Depende do AuthMiddleware já ter populado o contexto.
func SuperAdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ContextIsSuperAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "super_admin_required"})
			return
		}
		c.Next()
	}
}
