package middleware

import (
	"strings"

	"biteclub-backend/internal/shared"
	"biteclub-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const actorKey = "actor"

// AuthMiddleware validates the bearer token and attaches an explicit
// shared.Actor to the request context. Admins may act on behalf of a
// student via the X-Act-As header; the impersonation is scoped to this
// request only, there is no ambient "view as" state.
func AuthMiddleware(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(401, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(401, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			c.JSON(401, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		subjectID, err := uuid.Parse(claims.SubjectID)
		if err != nil {
			c.JSON(401, gin.H{"error": "invalid subject ID in token"})
			c.Abort()
			return
		}

		role := shared.Role(claims.Role)
		if !role.IsValid() {
			c.JSON(401, gin.H{"error": "invalid role in token"})
			c.Abort()
			return
		}

		actor := shared.Actor{
			SubjectID: subjectID,
			Role:      role,
		}

		if actAs := c.GetHeader("X-Act-As"); actAs != "" {
			if role != shared.RoleAdmin {
				c.JSON(403, gin.H{"error": "only admins may act on behalf of another subject"})
				c.Abort()
				return
			}
			target, err := uuid.Parse(actAs)
			if err != nil {
				c.JSON(400, gin.H{"error": "invalid X-Act-As subject ID"})
				c.Abort()
				return
			}
			actor.OnBehalfOf = &target
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// GetActor reads the Actor set by AuthMiddleware.
func GetActor(c *gin.Context) (shared.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return shared.Actor{}, false
	}
	actor, ok := v.(shared.Actor)
	return actor, ok
}

// RequireRole allows the request through only for the given roles.
// Admins always pass.
func RequireRole(roles ...shared.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.JSON(401, gin.H{"error": "not authenticated"})
			c.Abort()
			return
		}

		if actor.Role == shared.RoleAdmin {
			c.Next()
			return
		}

		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(403, gin.H{"error": "insufficient permissions"})
		c.Abort()
	}
}
