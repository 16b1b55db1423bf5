package middleware

import (
	"net/http"

	"hussboss/services/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminGuard lets a request through only when the browser's session has
// is_admin set. Everyone else is sent to redirect. The flag is the one the
// backend returned at login and is not checked again.
func AdminGuard(redirect string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tab := CurrentTab(c)
		if tab == nil {
			c.Redirect(http.StatusSeeOther, redirect)
			c.Abort()
			return
		}
		sess, err := tab.Store.Get(c.Request.Context())
		if err != nil {
			zap.L().Warn("Failed to read session for admin guard", zap.Error(err))
		}
		if !session.IsAdmin(sess) {
			c.Redirect(http.StatusSeeOther, redirect)
			c.Abort()
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// RequireSession sends logged out browsers to redirect.
func RequireSession(redirect string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tab := CurrentTab(c)
		if tab == nil {
			c.Redirect(http.StatusSeeOther, redirect)
			c.Abort()
			return
		}
		sess, err := tab.Store.Get(c.Request.Context())
		if err != nil {
			zap.L().Warn("Failed to read session", zap.Error(err))
		}
		if sess == nil {
			c.Redirect(http.StatusSeeOther, redirect)
			c.Abort()
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}
