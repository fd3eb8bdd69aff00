package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lamng/dev-network/pkg/apperror"
	"github.com/lamng/dev-network/pkg/auth"
	"github.com/lamng/dev-network/pkg/logger"
)

const GinContextKeyUserID = "userID"

// AuthMiddleware is the identity-verification boundary: it resolves the
// bearer credential to a user id, or rejects the request before any profile
// code runs.
func AuthMiddleware(jwtSvc *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(GinContextKeyUserID, claims.UserID)

		c.Next()
	}
}

func GetUserIDFromGinContext(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(GinContextKeyUserID)
	if !ok {
		return uuid.Nil, false
	}
	userID, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil, false
	}
	return userID, true
}

type errorItem struct {
	Msg string `json:"msg"`
}

type errorBody struct {
	Errors []errorItem `json:"errors"`
}

// NewErrorList builds the wire shape shared by all client-error responses.
func NewErrorList(msgs ...string) errorBody {
	items := make([]errorItem, len(msgs))
	for i, m := range msgs {
		items[i] = errorItem{Msg: m}
	}
	return errorBody{Errors: items}
}

// ErrorMiddleware converts errors attached by handlers into responses.
// Client errors carry a structured {errors:[{msg}]} body; anything mapping
// to a server fault is logged with its detail and answered with an opaque
// plain-text body, never the internal cause.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperror.ToHTTPStatus(err)

		if status >= http.StatusInternalServerError {
			log.Error("request failed", err,
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
			)
			c.String(http.StatusInternalServerError, "Server Error")
			return
		}

		msg := apperror.ClientMessage(err)
		if msg == "" {
			msg = "Bad request"
		}
		log.Warn("request rejected",
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("msg", msg),
		)
		c.JSON(status, NewErrorList(msg))
	}
}
