// Package server exposes a live session over HTTP: JSON endpoints to read
// the state and trade, a websocket stream and Prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/rustyeddy/supertrader/metrics"
	"github.com/rustyeddy/supertrader/sim"
)

// Server routes API requests to one engine.
type Server struct {
	engine   *sim.Engine
	metrics  *metrics.Metrics
	hub      *Hub
	log      *slog.Logger
	router   *gin.Engine
	upgrader websocket.Upgrader
}

// New builds the router. metrics and hub may be nil, in which case /metrics
// and /ws are not served.
func New(e *sim.Engine, m *metrics.Metrics, hub *Hub, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		engine:  e,
		metrics: m,
		hub:     hub,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestLogger())
	s.RegisterRoutes(router)
	s.router = router
	return s
}

// RegisterRoutes binds the handlers to router.
func (s *Server) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.GET("/session", s.GetSession)
		api.GET("/prices", s.GetPrices)
		api.POST("/buy", s.PostBuy)
		api.POST("/sell", s.PostSell)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"session": s.engine.SessionID(),
			"over":    s.engine.IsOver(),
		})
	})

	if s.metrics != nil {
		router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}
	if s.hub != nil {
		router.GET("/ws", s.ServeWS)
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if s.hub != nil {
		s.hub.Close()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("http server stopped")
	return nil
}

// GetSession returns the current snapshot.
func (s *Server) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, NewSessionView(s.engine.Snapshot()))
}

// GetPrices returns the rolling price window, oldest first.
func (s *Server) GetPrices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"points": NewPointViews(s.engine.PriceSeries()),
	})
}

func (s *Server) PostBuy(c *gin.Context)  { s.trade(c, s.engine.Buy) }
func (s *Server) PostSell(c *gin.Context) { s.trade(c, s.engine.Sell) }

func (s *Server) trade(c *gin.Context, do func() bool) {
	executed := do()
	c.JSON(http.StatusOK, TradeResult{
		Executed: executed,
		Session:  NewSessionView(s.engine.Snapshot()),
	})
}

// clientCommand is what a websocket client may send.
type clientCommand struct {
	Action string `json:"action"` // buy, sell or snapshot
}

// ServeWS upgrades the connection and streams engine events to it.
func (s *Server) ServeWS(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("websocket upgrade", "err", err)
		return
	}

	s.hub.Serve(conn, func(data []byte) {
		var cmd clientCommand
		if err := json.Unmarshal(data, &cmd); err != nil {
			s.log.Debug("bad websocket command", "err", err)
			return
		}
		switch cmd.Action {
		case "buy":
			s.engine.Buy()
		case "sell":
			s.engine.Sell()
		case "snapshot":
			v := NewSessionView(s.engine.Snapshot())
			s.hub.sendTo(conn, Message{Type: "snapshot", Session: &v})
		}
	})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		d := time.Since(start)
		status := c.Writer.Status()

		if s.metrics != nil {
			s.metrics.RecordHTTPRequest(c.Request.Method, route, status, d)
		}
		s.log.Debug("http request",
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"duration", d,
		)
	}
}
