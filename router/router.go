package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/user-admin/controllers"
	"github.com/yeremiapane/user-admin/middlewares"
	"github.com/yeremiapane/user-admin/services"
	"github.com/yeremiapane/user-admin/templates"
	"gorm.io/gorm"
)

// Options tunes the engine. The zero value disables rate limiting and trusts no proxy.
type Options struct {
	RateLimitRPS   float64
	RateLimitBurst int
	TrustedProxies []string
}

func SetupRouter(db *gorm.DB, opts Options) (*gin.Engine, error) {
	r := gin.New()
	// client IP feeds the rate limiter, so X-Forwarded-For is only read from known proxies
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, err
	}
	r.Use(gin.Recovery())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.LoggerMiddleware())

	tmpl, err := templates.Load()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	userCtrl := controllers.NewUserController(services.NewUserService(db))

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r.GET("/", userCtrl.Index)
	r.GET("/create", userCtrl.CreateForm)
	r.GET("/update/:id", userCtrl.EditForm)

	// mutating routes
	write := r.Group("/")
	if opts.RateLimitRPS > 0 {
		write.Use(middlewares.NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst).RateLimit())
	}
	{
		write.POST("/create", userCtrl.Create)
		write.POST("/update/:id", userCtrl.Update)
		write.POST("/delete/:id", userCtrl.Delete)
	}

	return r, nil
}
