package server

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// requestID propagates or assigns a request id.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// newSalt returns a per-process salt so client hashes cannot be joined
// across restarts.
func newSalt() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand does not fail on supported platforms.
		panic("server: read random salt: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// hashIP hashes a client address with the process salt (consistent per IP).
func hashIP(salt, ip string) string {
	h := sha256.New()
	h.Write([]byte(ip + salt))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// quietPath reports requests that are not logged: assets and health checks.
func quietPath(path string) bool {
	return strings.HasPrefix(path, "/static/") ||
		strings.HasPrefix(path, "/wasm/") ||
		strings.HasPrefix(path, "/favicon") ||
		path == "/healthz"
}

// accessLog logs one line per request with a hashed client address.
// Requests carrying DNT: 1 are logged without the client hash.
func accessLog(logger *slog.Logger, salt string, st *stats) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		st.requests.Add(1)
		c.Next()

		path := c.Request.URL.Path
		if quietPath(path) {
			return
		}

		attrs := []any{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetString("request_id"),
		}
		if c.GetHeader("DNT") != "1" {
			attrs = append(attrs, "client", hashIP(salt, c.ClientIP()))
		}

		if c.Writer.Status() >= 500 {
			logger.Error("http request", attrs...)
			return
		}
		logger.Info("http request", attrs...)
	}
}

// stats are in-memory counters for /healthz. They reset on restart.
type stats struct {
	started   time.Time
	now       func() time.Time
	requests  atomic.Int64
	pageViews atomic.Int64
}

func newStats(now func() time.Time) *stats {
	return &stats{started: now(), now: now}
}

// Health is the /healthz response body.
type Health struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Requests  int64  `json:"requests"`
	PageViews int64  `json:"page_views"`
}

func (s *stats) snapshot() Health {
	return Health{
		Status:    "ok",
		Uptime:    s.now().Sub(s.started).Truncate(time.Second).String(),
		Requests:  s.requests.Load(),
		PageViews: s.pageViews.Load(),
	}
}
