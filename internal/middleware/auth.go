package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tgcs/experience-api/internal/modules/serializer"
	"github.com/tgcs/experience-api/internal/modules/service"
)

const principalKey = "principal"

type Authenticator interface {
	Authenticate(ctx context.Context, cookie string) (*service.Principal, error)
}

// RequireSession resolves the session cookie to a principal and stores it in
// the context. Requests without a live session are rejected with 401.
func RequireSession(auth Authenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, authSpan := otel.Tracer("middleware").Start(c.Request.Context(), "session_auth",
			trace.WithAttributes(attribute.String("middleware", "session_auth")))
		defer authSpan.End()

		cookie, err := c.Cookie(cookieName)
		if err != nil || cookie == "" {
			authSpan.SetAttributes(attribute.Bool("authenticated", false))
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		p, err := auth.Authenticate(ctx, cookie)
		if err != nil {
			authSpan.SetAttributes(attribute.Bool("authenticated", false))
			if errors.Is(err, service.ErrUnauthorized) || errors.Is(err, service.ErrSessionNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
				return
			}
			authSpan.RecordError(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, "session lookup failed", err))
			return
		}

		authSpan.SetAttributes(
			attribute.Bool("authenticated", true),
			attribute.Bool("admin", p.IsAdmin),
		)
		c.Set(principalKey, p)
		c.Next()
	}
}

// RequireAdmin must run after RequireSession.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}
		if !p.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, serializer.ForbiddenErr("admin session required"))
			return
		}
		c.Next()
	}
}

func CurrentPrincipal(c *gin.Context) (*service.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*service.Principal)
	return p, ok && p != nil
}
