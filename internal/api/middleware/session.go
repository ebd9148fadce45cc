package middleware

import (
	"net/http"

	"recipe-browser/internal/core/session"
	"recipe-browser/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// Session 依 cookie 取得或建立瀏覽階段
func Session(store *session.Store, cookieName string, maxAge int) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(cookieName)
		if !common.IsUUID(id) {
			id = ""
		}
		sess, created := store.Get(id)
		if created || id != sess.ID {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cookieName, sess.ID, maxAge, "/", "", false, true)
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// CurrentSession 取得目前請求的瀏覽階段，未經過 Session 中間件時為 nil
func CurrentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}
