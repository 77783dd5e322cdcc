package middleware

import (
    "context"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/sirupsen/logrus"
    "github.com/sirupsen/logrus/hooks/test"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/booking-directory/internal/config"
)

func newContext(method, target, route string) echo.Context {
    e := echo.New()
    req := httptest.NewRequest(method, target, nil)
    req.Header.Set(echo.HeaderXRealIP, "203.0.113.7")
    c := e.NewContext(req, httptest.NewRecorder())
    c.SetPath(route)
    return c
}

func TestDisabledMiddlewarePassesThrough(t *testing.T) {
    called := 0
    next := func(c echo.Context) error { called++; return c.NoContent(http.StatusNoContent) }

    c := newContext(http.MethodGet, "/v1/venues", "/v1/venues")
    require.NoError(t, NewRedisCache(config.CacheConfig{Enabled: true}, nil)(next)(c))
    require.NoError(t, InvalidateOnWrite(config.CacheConfig{Enabled: true}, nil)(next)(c))
    require.NoError(t, NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil)(next)(c))
    assert.Equal(t, 3, called)
}

func TestRateKeyStrategies(t *testing.T) {
    c := newContext(http.MethodGet, "/v1/venues/3", "/v1/venues/:id")

    cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip"}
    assert.Equal(t, "rl:ip:203.0.113.7", rateKey(cfg, c))

    cfg.KeyStrategy = "route"
    assert.Equal(t, "rl:route:GET /v1/venues/:id", rateKey(cfg, c))

    cfg.KeyStrategy = ""
    assert.Equal(t, "rl:ip:203.0.113.7:route:GET /v1/venues/:id", rateKey(cfg, c))
}

func TestCacheKeyKeepsPlainPrefix(t *testing.T) {
    cfg := config.CacheConfig{Prefix: "directory:cache", KeyStrategy: "route_query"}

    a := cacheKey(cfg, newContext(http.MethodGet, "/v1/venues/search?q=hop", "/v1/venues/search"))
    b := cacheKey(cfg, newContext(http.MethodGet, "/v1/venues/search?q=music", "/v1/venues/search"))
    assert.True(t, strings.HasPrefix(a, "directory:cache:"))
    assert.NotEqual(t, a, b)

    cfg.KeyStrategy = "route"
    a = cacheKey(cfg, newContext(http.MethodGet, "/v1/venues/1", "/v1/venues/:id"))
    b = cacheKey(cfg, newContext(http.MethodGet, "/v1/venues/2", "/v1/venues/:id"))
    assert.Equal(t, a, b)
}

func TestBodyRecorderStopsAtLimit(t *testing.T) {
    w := httptest.NewRecorder()
    rec := &bodyRecorder{ResponseWriter: w, status: http.StatusOK, limit: 4}

    _, _ = rec.Write([]byte("abc"))
    assert.False(t, rec.truncated)
    _, _ = rec.Write([]byte("de"))
    assert.True(t, rec.truncated)
    assert.Equal(t, "abcde", w.Body.String(), "the client still receives the full body")
}

func TestStorableSkipsNoStoreResponses(t *testing.T) {
    ok := &bodyRecorder{status: http.StatusOK}
    assert.True(t, storable(ok, http.Header{}))
    assert.True(t, storable(ok, http.Header{echo.HeaderCacheControl: {"max-age=60"}}))
    assert.False(t, storable(ok, http.Header{echo.HeaderCacheControl: {"no-store"}}))
    assert.False(t, storable(ok, http.Header{echo.HeaderCacheControl: {"private, No-Store"}}))

    assert.False(t, storable(&bodyRecorder{status: http.StatusNotFound}, http.Header{}))
    assert.False(t, storable(&bodyRecorder{status: http.StatusOK, truncated: true}, http.Header{}))
}

func TestInvalidateOnWriteRunsBeforeResponseIsSent(t *testing.T) {
    cfg := config.CacheConfig{Methods: map[string]bool{http.MethodGet: true}}

    var calls int
    var committed bool
    var status int
    var c echo.Context
    mw := invalidateOnWrite(cfg, func(context.Context) (int, error) {
        calls++
        committed = c.Response().Committed
        status = c.Response().Status
        return 3, nil
    })

    c = newContext(http.MethodPost, "/v1/venues", "/v1/venues")
    require.NoError(t, mw(func(c echo.Context) error {
        return c.JSON(http.StatusCreated, echo.Map{"id": 1})
    })(c))
    assert.Equal(t, 1, calls)
    assert.False(t, committed, "invalidation must finish before the status line is written")
    assert.Equal(t, http.StatusCreated, status)

    c = newContext(http.MethodDelete, "/v1/venues/1", "/v1/venues/:id")
    require.NoError(t, mw(func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })(c))
    assert.Equal(t, 2, calls)

    c = newContext(http.MethodPost, "/v1/venues", "/v1/venues")
    require.NoError(t, mw(func(c echo.Context) error {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation_failed"})
    })(c))
    assert.Equal(t, 2, calls, "failed writes leave the cache alone")

    c = newContext(http.MethodGet, "/v1/venues", "/v1/venues")
    require.NoError(t, mw(func(c echo.Context) error { return c.JSON(http.StatusOK, echo.Map{}) })(c))
    assert.Equal(t, 2, calls, "cached methods never invalidate")
}

func TestRequestLoggerLevels(t *testing.T) {
    hook := test.NewGlobal()
    t.Cleanup(hook.Reset)

    e := echo.New()
    e.Use(RequestLogger())
    e.GET("/ok", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
    e.GET("/missing", func(c echo.Context) error { return echo.NewHTTPError(http.StatusNotFound, "nope") })

    e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
    require.NotNil(t, hook.LastEntry())
    assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
    assert.Equal(t, 200, hook.LastEntry().Data["status"])

    e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
    assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
    assert.Equal(t, 404, hook.LastEntry().Data["status"])
}
