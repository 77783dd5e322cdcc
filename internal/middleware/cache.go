package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "encoding/json"
    "fmt"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"
    "github.com/sirupsen/logrus"

    "github.com/iliyamo/booking-directory/internal/config"
)

// bodyRecorder tees the response body into buf, up to limit bytes, while
// forwarding everything to the client.
type bodyRecorder struct {
    http.ResponseWriter
    status    int
    buf       bytes.Buffer
    limit     int
    truncated bool
}

func (r *bodyRecorder) WriteHeader(code int) {
    r.status = code
    r.ResponseWriter.WriteHeader(code)
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
    if !r.truncated {
        if r.limit > 0 && r.buf.Len()+len(b) > r.limit {
            r.truncated = true
        } else {
            r.buf.Write(b)
        }
    }
    return r.ResponseWriter.Write(b)
}

// cachedResponse is the value stored under a cache key.
type cachedResponse struct {
    Status int         `json:"status"`
    Header http.Header `json:"header"`
    Body   []byte      `json:"body"`
}

// storable reports whether a recorded response may be cached.  Handlers
// whose output depends on the current time opt out with Cache-Control:
// no-store.
func storable(rec *bodyRecorder, h http.Header) bool {
    if rec.status != http.StatusOK || rec.truncated {
        return false
    }
    for _, directive := range strings.Split(h.Get(echo.HeaderCacheControl), ",") {
        if strings.EqualFold(strings.TrimSpace(directive), "no-store") {
            return false
        }
    }
    return true
}

// cacheKey builds a stable key under cfg.Prefix.  The variable part is
// hashed so every key shares the plain prefix that Invalidate scans for.
func cacheKey(cfg config.CacheConfig, c echo.Context) string {
    r := c.Request()
    var parts []string
    switch strings.ToLower(cfg.KeyStrategy) {
    case "route":
        parts = []string{"route", c.Path()}
    case "path":
        parts = []string{"path", r.URL.Path}
    case "method_route_query":
        parts = []string{"method", r.Method, "path", r.URL.Path, "q", r.URL.RawQuery}
    default: // "route_query"
        parts = []string{"path", r.URL.Path, "q", r.URL.RawQuery}
    }
    sum := sha1.Sum([]byte(strings.Join(parts, ":")))
    return fmt.Sprintf("%s:%x", cfg.Prefix, sum[:])
}

// NewRedisCache serves cached copies of successful read responses.  On a
// miss the response is recorded and stored for cfg.TTL.  Responses larger
// than cfg.MaxBodyBytes are not stored.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return passThrough
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if !cfg.Methods[c.Request().Method] {
                return next(c)
            }
            ctx := c.Request().Context()
            key := cacheKey(cfg, c)

            if bs, err := rdb.Get(ctx, key).Bytes(); err == nil {
                var hit cachedResponse
                if json.Unmarshal(bs, &hit) == nil {
                    h := c.Response().Header()
                    for k, vals := range hit.Header {
                        if strings.EqualFold(k, echo.HeaderContentLength) {
                            continue
                        }
                        h[k] = vals
                    }
                    h.Set("X-Cache", "HIT")
                    c.Response().WriteHeader(hit.Status)
                    _, _ = c.Response().Write(hit.Body)
                    return nil
                }
            }

            rec := &bodyRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
            c.Response().Writer = rec
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }
            if !storable(rec, c.Response().Header()) {
                return nil
            }
            entry := cachedResponse{Status: rec.status, Header: c.Response().Header().Clone(), Body: rec.buf.Bytes()}
            entry.Header.Del("X-Cache")
            payload, err := json.Marshal(entry)
            if err != nil {
                return nil
            }
            if err := rdb.Set(context.WithoutCancel(ctx), key, payload, cfg.TTL).Err(); err != nil {
                logrus.WithError(err).Debug("cache: store failed")
            }
            return nil
        }
    }
}

// InvalidateOnWrite drops every cached response once a request whose
// method is not cached has produced a 2xx status.  It runs as the status
// is written, before the client sees the response, so a client that reads
// right after its write never gets the pre-write copy.
func InvalidateOnWrite(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return passThrough
    }
    return invalidateOnWrite(cfg, func(ctx context.Context) (int, error) {
        return Invalidate(ctx, rdb, cfg.Prefix)
    })
}

func invalidateOnWrite(cfg config.CacheConfig, invalidate func(context.Context) (int, error)) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if cfg.Methods[c.Request().Method] {
                return next(c)
            }
            resp := c.Response()
            resp.Before(func() {
                if resp.Status < 200 || resp.Status >= 300 {
                    return
                }
                ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request().Context()), 2*time.Second)
                defer cancel()
                if n, err := invalidate(ctx); err != nil {
                    logrus.WithError(err).Warn("cache: invalidation failed")
                } else {
                    logrus.WithField("keys", n).Debug("cache: invalidated")
                }
            })
            return next(c)
        }
    }
}

// Invalidate deletes every key under prefix and returns how many were
// removed.
func Invalidate(ctx context.Context, rdb *redis.Client, prefix string) (int, error) {
    removed := 0
    iter := rdb.Scan(ctx, 0, prefix+":*", 200).Iterator()
    batch := make([]string, 0, 200)
    flush := func() error {
        if len(batch) == 0 {
            return nil
        }
        n, err := rdb.Unlink(ctx, batch...).Result()
        removed += int(n)
        batch = batch[:0]
        return err
    }
    for iter.Next(ctx) {
        batch = append(batch, iter.Val())
        if len(batch) == cap(batch) {
            if err := flush(); err != nil {
                return removed, err
            }
        }
    }
    if err := iter.Err(); err != nil {
        return removed, err
    }
    return removed, flush()
}

func passThrough(next echo.HandlerFunc) echo.HandlerFunc {
    return next
}
