// Package router registers the HTTP routes of the directory.
package router

import (
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/booking-directory/internal/config"
    "github.com/iliyamo/booking-directory/internal/handler"
    "github.com/iliyamo/booking-directory/internal/metrics"
    "github.com/iliyamo/booking-directory/internal/middleware"
)

// New builds the echo instance with the shared middleware stack: request
// id, panic recovery and logrus request logging.
func New() *echo.Echo {
    e := echo.New()
    e.HideBanner = true
    e.HidePort = true
    e.Use(echomw.RequestID())
    e.Use(echomw.Recover())
    e.Use(middleware.RequestLogger())
    return e
}

// RegisterRoutes registers the operational endpoints: a health check and
// the Prometheus scrape target.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
    e.GET("/healthz", handler.Health(db))
    e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
}

// RegisterDirectory registers the venue, artist and show API under /v1.
// Reads are rate limited and cached in Redis unless the handler marks them
// no-store; successful writes drop the cache.  rdb may be nil, which disables both.
func RegisterDirectory(e *echo.Echo, h *handler.DirectoryHandler, rdb *redis.Client, cacheCfg config.CacheConfig, rlCfg config.RateLimitConfig) {
    v1 := e.Group("/v1")
    v1.Use(middleware.NewTokenBucket(rlCfg, rdb))
    v1.Use(middleware.InvalidateOnWrite(cacheCfg, rdb))
    v1.Use(middleware.NewRedisCache(cacheCfg, rdb))

    v1.GET("/venues", h.ListVenues)
    v1.GET("/venues/search", h.SearchVenues)
    v1.GET("/venues/:id", h.GetVenue)
    v1.GET("/venues/:id/edit", h.EditVenue)
    v1.POST("/venues", h.CreateVenue)
    v1.PUT("/venues/:id", h.UpdateVenue)
    v1.DELETE("/venues/:id", h.DeleteVenue)

    v1.GET("/artists", h.ListArtists)
    v1.GET("/artists/search", h.SearchArtists)
    v1.GET("/artists/:id", h.GetArtist)
    v1.GET("/artists/:id/edit", h.EditArtist)
    v1.POST("/artists", h.CreateArtist)
    v1.PUT("/artists/:id", h.UpdateArtist)
    v1.DELETE("/artists/:id", h.DeleteArtist)

    v1.GET("/shows", h.ListShows)
    v1.POST("/shows", h.CreateShow)
}
