package authorization

import (
	"strings"

	"MediTrack/apperror"
	"MediTrack/role"

	util "github.com/KanapuramVaishnavi/Core/util"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	ContextUserID = "userId"
	ContextRole   = "role"
	ContextEmail  = "email"
)

/*
* Read the bearer token from the Authorization header
* Verify it and put the caller's id, role and email on the context
 */
func JWTAuth(iss *Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if raw == "" {
			abort(c, apperror.Unauthorized("authorization token is required"))
			return
		}
		claims, err := iss.Verify(raw)
		if err != nil {
			log.Debug().Err(err).Msg("Error from token verification")
			abort(c, apperror.Unauthorized("invalid or expired token"))
			return
		}
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}

/*
* Check the caller's role against the permission matrix for module/action
 */
func Authorize(module role.Module, action role.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, _ := c.Get(ContextRole)
		callerRole, _ := r.(role.Role)
		if !role.Can(callerRole, module, action) {
			log.Warn().
				Str("role", string(callerRole)).
				Str("privilege", string(module)+":"+string(action)).
				Msg("access denied")
			abort(c, apperror.Forbidden("you do not have permission to "+string(action)+" "+string(module)))
			return
		}
		c.Next()
	}
}

func abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperror.Status(err), util.FailedResponse(err))
}
