package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/model"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/pkg/logger"
)

// RecoveryMiddleware 自定义错误恢复中间件，打印详细的错误信息
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		err, ok := recovered.(error)
		if !ok {
			err = fmt.Errorf("%v", recovered)
		}

		requestMethod := c.Request.Method
		requestPath := c.Request.URL.Path
		requestQuery := c.Request.URL.RawQuery
		clientIP := c.ClientIP()

		// 获取用户信息（如果有）
		username := ""
		if uname, exists := c.Get("username"); exists {
			username = fmt.Sprintf("%v", uname)
		}

		fullURL := requestPath
		if requestQuery != "" {
			fullURL = fmt.Sprintf("%s?%s", requestPath, requestQuery)
		}

		stack := string(debug.Stack())

		logger.Errorf(
			"Panic recovered: %v\n"+
				"  Request: %s %s\n"+
				"  Client IP: %s\n"+
				"  Username: %s\n"+
				"  Stack Trace:\n%s",
			err,
			requestMethod,
			fullURL,
			clientIP,
			username,
			stack,
		)

		c.JSON(http.StatusInternalServerError, model.Error(500, "服务器内部错误"))
		c.Abort()
	})
}
