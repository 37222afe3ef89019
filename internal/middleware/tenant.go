package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"khata/internal/logger"
)

// TenantGuard ensures tenant context is present and tags the request logger
// with the tenant and user. It relies on AuthMiddleware having run first.
func TenantGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID, err := GetTenantID(c)
		if err != nil || tenantID == uuid.Nil {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "tenant context required")
			return
		}

		fields := []zap.Field{zap.String("tenant_id", tenantID.String())}
		if userID, err := GetUserID(c); err == nil {
			fields = append(fields, zap.String("user_id", userID.String()))
		}
		reqLogger := logger.FromGin(c).With(fields...)
		c.Set("logger", reqLogger)
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), reqLogger))

		c.Next()
	}
}
