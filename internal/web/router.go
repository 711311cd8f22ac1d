package web

import (
	_ "embed"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/tomz197/lanebattle/internal/logging"
	"github.com/tomz197/lanebattle/internal/match"
)

//go:embed index.html
var indexPage string

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RouterOptions configures SetupRouter.
type RouterOptions struct {
	SSHHost     string // shown in the connect instructions
	Source      SnapshotSource
	Broadcaster *Broadcaster
	Rules       match.Rules
	Logger      *log.Logger
}

// SetupRouter builds the HTTP handler: the landing page, the demo match as
// JSON and as a websocket stream.
func SetupRouter(opts RouterOptions) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logging.Component(logger, "http")

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	page := strings.ReplaceAll(indexPage, "{{.SSHHost}}", opts.SSHHost)
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/rules", func(c *gin.Context) {
		c.JSON(http.StatusOK, opts.Rules)
	})
	api.GET("/pieces", piecesHandler)
	api.GET("/demo", demoHandler(opts.Source))

	r.GET("/ws/demo", websocketHandler(opts.Broadcaster, logger))
	return r
}

type pieceInfo struct {
	Type   match.PieceType `json:"type"`
	Key    int             `json:"key"`
	Cost   int             `json:"cost"`
	Health int             `json:"health"`
	Damage int             `json:"damage"`
}

func piecesHandler(c *gin.Context) {
	out := make([]pieceInfo, 0, match.PieceTypeCount)
	for _, t := range match.AllPieceTypes() {
		s := t.Stats()
		out = append(out, pieceInfo{Type: t, Key: int(t) + 4, Cost: s.Cost, Health: s.Health, Damage: s.Damage})
	}
	c.JSON(http.StatusOK, out)
}

func demoHandler(source SnapshotSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		if source == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "demo disabled"})
			return
		}
		snap := source.Snapshot()
		if snap == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "demo match not started"})
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

func websocketHandler(b *Broadcaster, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if b == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "demo disabled"})
			return
		}
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade error", "err", err)
			return
		}
		b.Register(conn)

		// Spectators only listen; reading detects the close.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				b.Unregister(conn)
				return
			}
		}
	}
}

// requestLogger logs each request at debug level, errors at warn.
func requestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		kv := []any{"method", c.Request.Method, "path", c.Request.URL.Path, "status", status, "took", time.Since(start)}
		if status >= http.StatusInternalServerError {
			logger.Warn("request", kv...)
			return
		}
		logger.Debug("request", kv...)
	}
}
