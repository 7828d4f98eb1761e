package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"BuyOrWait/internal/advisor"
	"BuyOrWait/internal/assistant"
	"BuyOrWait/internal/collector"
	"BuyOrWait/internal/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
)

// Server exposes the dashboard API and the chat WebSocket over one shared,
// read-only table.
type Server struct {
	Table     *collector.Table
	Advisor   *advisor.Advisor
	Responder *assistant.Responder

	validate   *validator.Validate
	upgrader   websocket.Upgrader
	httpServer *http.Server
	done       chan struct{}
	closeOnce  sync.Once
}

// New creates a server listening on addr.
func New(addr string, table *collector.Table, currency string) *Server {
	s := &Server{
		Table:     table,
		Advisor:   advisor.New(table),
		Responder: assistant.NewResponder(currency),
		validate:  validator.New(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		done: make(chan struct{}),
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/states", s.handleStates)
	mux.HandleFunc("GET /api/commodities", s.handleCommodities)
	mux.HandleFunc("GET /api/quick-questions", s.handleQuickQuestions)
	mux.HandleFunc("GET /api/forecast", s.handleForecast)
	mux.HandleFunc("POST /api/ask", s.handleAsk)
	mux.HandleFunc("GET /api/chart.png", s.handleChart)
	mux.HandleFunc("GET /ws/chat", s.handleChat)
	return mux
}

// ListenAndServe blocks until the server stops. A clean shutdown returns nil.
func (s *Server) ListenAndServe() error {
	logger.Log.Infof("http server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown closes chat connections and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.closeOnce.Do(func() { close(s.done) })
	err := s.httpServer.Shutdown(ctx)
	logger.Log.Info("http server stopped")
	return err
}
