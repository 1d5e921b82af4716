package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespondHTML renders a page template. The pending flash is always consumed;
// a Flash already present in data takes precedence over it.
func RespondHTML(c *gin.Context, code int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	pending := PopFlash(c)
	if f, ok := data["Flash"]; !ok || f == nil {
		data["Flash"] = pending
	}
	c.HTML(code, name, data)
}

// RedirectWithFlash stores f and sends the browser to location with 303 See Other.
func RedirectWithFlash(c *gin.Context, location string, f *Flash) {
	SetFlash(c, f)
	c.Redirect(http.StatusSeeOther, location)
}
