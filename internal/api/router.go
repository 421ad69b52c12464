package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"phone-inspection-backend/config"
	"phone-inspection-backend/internal/blob"
	"phone-inspection-backend/internal/mw"
	"phone-inspection-backend/internal/report"
	"phone-inspection-backend/internal/session"
	"phone-inspection-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, sessions session.Manager, uploader blob.Uploader, exporter *report.Exporter, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, sessions, uploader, exporter, cfg.Session.CookieName, cfg.Session.TTL)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	// The IMEI lookup is deterministic, so its responses are cacheable.
	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.POST("/auth/signup", handler.SignUp)
		api.POST("/auth/signin", handler.SignIn)
		api.POST("/auth/signout", handler.SignOut)

		authed := api.Group("")
		authed.Use(mw.RequireAuth(sessions, cfg.Session.CookieName))
		{
			authed.GET("/auth/user", handler.GetUser)

			authed.POST("/orders", handler.CreateOrder)
			authed.GET("/orders", handler.ListOrders)
			authed.GET("/orders/recent", handler.RecentOrders)
			authed.GET("/orders/:orderNumber", handler.GetOrderByNumber)
			authed.GET("/orders/:orderNumber/inspections", handler.ListInspectionsForOrder)
			authed.PUT("/orders/:id", handler.UpdateOrder)

			authed.GET("/imei/:imei", caching, handler.LookupIMEI)

			authed.POST("/inspections", handler.CreateInspection)
			authed.GET("/inspections/imei/:imei/order/:orderId", handler.GetInspectionByIMEI)
			authed.GET("/inspections/order/:orderId", handler.ListInspectionsByOrder)
			authed.PUT("/inspections/:id/status", handler.UpdateInspectionStatus)
			authed.POST("/inspections/:id/images", handler.UploadInspectionImages)

			authed.POST("/reports/excel", handler.ExportReport)
		}
	}

	return r
}
