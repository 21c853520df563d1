package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Server exposes /metrics and /healthz.
type Server struct {
	srv    *http.Server
	logger *logrus.Entry
}

func NewRouter() *mux.Router {
	r := mux.NewRouter().StrictSlash(true)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	}).Methods(http.MethodGet)
	return r
}

func NewServer(addr string, logger *logrus.Entry) *Server {
	return &Server{
		srv: &http.Server{
			Handler:      NewRouter(),
			Addr:         addr,
			WriteTimeout: 15 * time.Second,
			ReadTimeout:  15 * time.Second,
		},
		logger: logger,
	}
}

// Start serves in the background until Shutdown.
func (s *Server) Start() {
	go func() {
		s.logger.Infof("Metrics listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.WithError(err).Error("Metrics server stopped")
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
