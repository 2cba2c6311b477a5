// Package httpserver configures the net/http server for the API.
package httpserver

import (
	"log/slog"
	"net/http"
	"time"

	"fittrack/internal/platform/config"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	idleTimeout       = 60 * time.Second

	// headroom past the transaction timeout for encoding the response
	writeSlack = 10 * time.Second
)

// New builds the server for cfg.Addr. The write timeout follows the
// transaction timeout so a slow commit still gets its response written.
// Server-internal errors (TLS, hijack) go to log at ERROR.
func New(cfg config.Server, handler http.Handler, log *slog.Logger) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      cfg.TxTimeout + writeSlack,
		IdleTimeout:       idleTimeout,
		ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelError),
	}
}
