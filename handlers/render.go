package handlers

import (
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"hussboss/middleware"
	"hussboss/services/pages"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

// Page is the root object every template receives.
type Page struct {
	Title     string
	Nav       pages.Nav
	Notices   []pages.Notice
	CSRFField template.HTML
	Data      any
}

// render executes page name through the layout. Pending notices of the
// browser are shown once and dropped.
func render(c *gin.Context, status int, name, title string, data any) {
	page := Page{
		Title:     title,
		CSRFField: csrf.TemplateField(c.Request),
		Data:      data,
	}
	if tab := middleware.CurrentTab(c); tab != nil {
		page.Nav = tab.Nav()
		page.Notices = tab.Notices.Drain()
	}
	c.HTML(status, name, page)
}

// redirect answers a form post with 303 so a reload does not resubmit.
func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

// notices returns the browser's notice queue. Requests outside a browser
// slot get a throwaway queue.
func notices(c *gin.Context) *pages.Notices {
	if tab := middleware.CurrentTab(c); tab != nil {
		return tab.Notices
	}
	return &pages.Notices{}
}

// localPath returns back when it is a path on this site, else fallback.
func localPath(back, fallback string) string {
	if back == "" || !strings.HasPrefix(back, "/") || strings.HasPrefix(back, "//") || strings.HasPrefix(back, "/\\") {
		return fallback
	}
	u, err := url.Parse(back)
	if err != nil || u.Host != "" || u.Scheme != "" {
		return fallback
	}
	return back
}
