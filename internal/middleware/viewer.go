package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	ViewerKey    = "viewer_id"
	UserIDHeader = "X-User-ID"
)

// LoadViewer 从请求头或 session 中取出当前用户 id 放进 context
// 请求体里显式传入的 user_id 由 handler 自行优先使用
func LoadViewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := strings.TrimSpace(c.GetHeader(UserIDHeader)); id != "" {
			c.Set(ViewerKey, id)
			c.Next()
			return
		}
		if _, ok := c.Get(sessions.DefaultKey); ok {
			if v := sessions.Default(c).Get("user_id"); v != nil {
				c.Set(ViewerKey, fmt.Sprint(v))
			}
		}
		c.Next()
	}
}

// ViewerID returns the id stored by LoadViewer, or "".
func ViewerID(c *gin.Context) string {
	return c.GetString(ViewerKey)
}
