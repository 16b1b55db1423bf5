package middleware

import (
	"net/http"

	"hussboss/models"
	"hussboss/services/pages"
	"hussboss/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// SlotCookie carries the signed browser slot ID.
	SlotCookie = "hb_slot"

	slotIDKey  = "slotID"
	tabKey     = "tab"
	sessionKey = "session"
)

// BrowserSlot makes sure every browser carries a signed slot cookie and
// loads the browser's tab from reg. A missing, forged or expired cookie
// starts a fresh slot.
func BrowserSlot(reg *pages.Registry, secret []byte, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		slotID := ""
		if raw, err := c.Cookie(SlotCookie); err == nil && raw != "" {
			if id, err := utils.SlotIDFromToken(secret, raw); err == nil {
				slotID = id
			} else {
				zap.L().Debug("Discarding invalid slot cookie", zap.Error(err))
			}
		}

		if slotID == "" {
			slotID = uuid.NewString()
			token, err := utils.GenerateSlotToken(secret, slotID, utils.SlotTokenTTL)
			if err != nil {
				zap.L().Error("Failed to sign slot cookie", zap.Error(err))
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SlotCookie, token, int(utils.SlotTokenTTL.Seconds()), "/", "", secure, true)
		}

		c.Set(slotIDKey, slotID)
		c.Set(tabKey, reg.Tab(c.Request.Context(), slotID))
		c.Next()
	}
}

// SlotID returns the browser slot ID of the request.
func SlotID(c *gin.Context) string {
	return c.GetString(slotIDKey)
}

// CurrentTab returns the tab loaded by BrowserSlot.
func CurrentTab(c *gin.Context) *pages.Tab {
	if v, ok := c.Get(tabKey); ok {
		if tab, ok := v.(*pages.Tab); ok {
			return tab
		}
	}
	return nil
}

// CurrentSession returns the session checked by a guard, or nil.
func CurrentSession(c *gin.Context) *models.Session {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(*models.Session); ok {
			return sess
		}
	}
	return nil
}
