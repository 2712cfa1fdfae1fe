package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/techsanasilver/SanaSilver/internal/auth"
	"github.com/techsanasilver/SanaSilver/internal/domain"
)

const ctxAdminKey = "admin"

// requireAuth достаёт access-токен из cookie (или заголовка Authorization),
// проверяет его и кладёт действующего администратора в контекст запроса
func (s *Server) requireAuth(c *gin.Context) {
	token, err := c.Cookie(accessCookie)
	if err != nil || token == "" {
		header := c.GetHeader("Authorization")
		if after, ok := strings.CutPrefix(header, "Bearer "); ok {
			token = after
		}
	}
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
		return
	}
	a, err := s.admins.ValidateAccess(c, token)
	if err != nil {
		c.AbortWithStatusJSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Set(ctxAdminKey, a)
	c.Next()
}

// requirePermission пропускает запрос, если набор прав администратора
// покрывает требуемое право (точно или по wildcard)
func (s *Server) requirePermission(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		a := currentAdmin(c)
		if a == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			return
		}
		if !auth.Satisfies(a.Permissions, required) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

func currentAdmin(c *gin.Context) *domain.Admin {
	v, ok := c.Get(ctxAdminKey)
	if !ok {
		return nil
	}
	a, ok := v.(*domain.Admin)
	if !ok {
		return nil
	}
	return a
}
