// Package liveness serves the static health route hosting platforms poll to see that the process is up.
package liveness

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/lmittmann/tint"
)

var okBody = []byte(`{"status":"ok"}`)

func NewRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", handleStatus).Methods(http.MethodGet)
	return r
}

func NewServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(okBody); err != nil {
		slog.Debug("alterra: error while writing liveness response", tint.Err(err))
	}
}
