package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/vetclinic-api/internal/model"
	apperrors "github.com/jwalitptl/vetclinic-api/pkg/errors"
	"github.com/jwalitptl/vetclinic-api/pkg/httputil"
	"github.com/jwalitptl/vetclinic-api/pkg/logger"
)

// ContextPrincipal holds the authenticated *model.Principal.
const ContextPrincipal = "principal"

// Authenticator resolves a session token to the operator it was issued to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.Principal, error)
}

type AuthMiddleware struct {
	auth       Authenticator
	cookieName string
}

func NewAuthMiddleware(auth Authenticator, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		auth:       auth,
		cookieName: cookieName,
	}
}

// Authenticate accepts the session cookie or a Bearer token and stores the
// principal on the context. A stale cookie does not shadow a valid header.
// Every failure answers 401 without detail.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokens := m.tokens(c)
		if len(tokens) == 0 {
			httputil.RespondWithError(c, apperrors.Unauthorized(model.ErrInvalidToken))
			return
		}

		var err error
		for _, token := range tokens {
			var principal *model.Principal
			principal, err = m.auth.Authenticate(c.Request.Context(), token)
			if err == nil {
				SetPrincipal(c, principal)
				c.Next()
				return
			}
		}
		httputil.RespondWithError(c, apperrors.Unauthorized(err))
	}
}

// tokens lists the presented credentials, cookie first.
func (m *AuthMiddleware) tokens(c *gin.Context) []string {
	var out []string
	if cookie, err := c.Cookie(m.cookieName); err == nil && cookie != "" {
		out = append(out, cookie)
	}

	header := c.GetHeader("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if ok && strings.EqualFold(scheme, "Bearer") {
		if token = strings.TrimSpace(token); token != "" {
			out = append(out, token)
		}
	}
	return out
}

// SetPrincipal stores p on c and tags the request logger with the user id.
func SetPrincipal(c *gin.Context, p *model.Principal) {
	c.Set(ContextPrincipal, p)

	ctx := c.Request.Context()
	l := logger.FromContext(ctx).With().Int64("user_id", p.UserID).Logger()
	c.Request = c.Request.WithContext(logger.WithContext(ctx, l))
}

// GetPrincipal returns the authenticated operator, or nil on public routes.
func GetPrincipal(c *gin.Context) *model.Principal {
	if v, ok := c.Get(ContextPrincipal); ok {
		if p, ok := v.(*model.Principal); ok {
			return p
		}
	}
	return nil
}
