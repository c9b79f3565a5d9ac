package middleware

import (
	"Quill/internal/service"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

func setActor(c *gin.Context, userID uint64, roles []string) {
	c.Set("user_id", userID)
	c.Set("roles", roles)
	c.Set(actorKey, service.NewActor(userID, roles))
}

// CurrentActor 当前请求的调用者，未鉴权时为匿名
func CurrentActor(c *gin.Context) service.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(service.Actor); ok {
			return actor
		}
	}
	return service.Anonymous
}
