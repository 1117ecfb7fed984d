package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type HTTPServer struct {
	httpServer *http.Server
}

func NewHTTPServer(addr string, handler http.Handler) HTTPServer {
	s := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return HTTPServer{s}
}

// Run serves until Close is called; any other exit triggers stopFn.
func (s HTTPServer) Run(stopFn context.CancelFunc) {
	defer stopFn()

	zap.L().Info("http server is listening", zap.String("addr", s.httpServer.Addr))
	err := s.httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		zap.L().Error("unexpected http server shutdown", zap.Error(err))
	}
}

func (s HTTPServer) Close(ctx context.Context) {
	zap.L().Info("closing http server...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		zap.L().Error("failed to shutdown gracefully", zap.Error(err))
		return
	}
	zap.L().Info("http server is closed")
}
