package utils

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const flashCookie = "flash"

// Flash severities.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// Flash is a one-time status message shown on the next rendered page.
type Flash struct {
	Severity string
	Message  string
}

func NewSuccess(msg string) *Flash { return &Flash{Severity: FlashSuccess, Message: msg} }

func NewError(msg string) *Flash { return &Flash{Severity: FlashError, Message: msg} }

// SetFlash stores f in a short-lived cookie for the next request.
func SetFlash(c *gin.Context, f *Flash) {
	if f == nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, f.Severity+"|"+f.Message, 60, "/", "", false, true)
}

// PopFlash returns the pending flash, if any, and clears it.
func PopFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	severity, msg, ok := strings.Cut(raw, "|")
	if !ok {
		return &Flash{Severity: FlashInfo, Message: raw}
	}
	switch severity {
	case FlashSuccess, FlashError, FlashInfo:
	default:
		severity = FlashInfo
	}
	return &Flash{Severity: severity, Message: msg}
}
