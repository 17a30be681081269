package middleware

import (
	"net/http"
	"strings"

	"forum_thread/internal/pkg/auth"
	"forum_thread/pkg/response"
	"forum_thread/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SessionCookie 浏览器表单提交时携带 token 的 cookie 名
const SessionCookie = "session_token"

// bearerToken 依次从 Authorization 头和 cookie 中读取 token
func bearerToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

// SessionMiddleware 解析 JWT 并把会话写入请求 context
// 未携带或无效的 token 不拦截请求，是否要求登录由下游决定
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil || claims.UserID == "" {
			c.Next()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)

		session := &auth.Session{User: &auth.SessionUser{ID: claims.UserID, Role: claims.Role}}
		c.Request = c.Request.WithContext(auth.WithSession(c.Request.Context(), session))

		c.Next()
	}
}

// AuthMiddleware 要求请求已登录，需放在 SessionMiddleware 之后
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth.FromContext(c.Request.Context()).UserID() == "" {
			response.Error(c, http.StatusUnauthorized, response.ErrTokenInvalid, "Invalid or expired token")
			c.Abort()
			return
		}
		c.Next()
	}
}
