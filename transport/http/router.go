package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter configures the policy routes.
func NewRouter(handler *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/v1/select", handler.Select).Methods("POST")
	r.HandleFunc("/v1/geometry", handler.Geometry).Methods("POST")
	r.HandleFunc("/v1/timecode", handler.Timecode).Methods("GET")
	r.Use(handler.logRequests)
	return r
}

// NewServer wraps the router with CORS for allowedOrigins.
func NewServer(addr string, allowedOrigins []string) *http.Server {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	})

	return &http.Server{
		Addr:              addr,
		Handler:           c.Handler(NewRouter(NewHandler())),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.log.Debugf("%s %s in %s", r.Method, r.URL.Path, time.Since(start))
	})
}
