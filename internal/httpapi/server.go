package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"foodbot/internal/catalog"
	"foodbot/internal/orders"
	"foodbot/pkg/logger"
)

// Server is the HTTP face of the catalog and the order ledger, consumed by
// the web front-end embedded in the chat client.
type Server struct {
	catalog   *catalog.Service
	orders    *orders.Service
	imagesDir string
	log       *logger.Logger
	router    *mux.Router
}

// New builds the server and its routes.
func New(cat *catalog.Service, ord *orders.Service, imagesDir string, log *logger.Logger) *Server {
	s := &Server{
		catalog:   cat,
		orders:    ord,
		imagesDir: imagesDir,
		log:       log.WithComponent("http"),
	}

	r := mux.NewRouter()
	r.Use(s.loggingMiddleware)
	r.HandleFunc("/api/products", s.handleGetProducts).Methods(http.MethodGet)
	r.HandleFunc("/api/products", s.handleCreateProduct).Methods(http.MethodPost)
	r.HandleFunc("/api/products/{category}/{id}", s.handleDeleteProduct).Methods(http.MethodDelete)
	r.HandleFunc("/web-data", s.handleSubmitOrder).Methods(http.MethodPost)
	r.PathPrefix("/images/").Handler(
		http.StripPrefix("/images/", http.FileServer(http.Dir(imagesDir))))
	s.router = r
	return s
}

// Handler returns the root handler for an http.Server. CORS wraps the whole
// router so preflight requests are answered even for method mismatches.
func (s *Server) Handler() http.Handler {
	return s.corsMiddleware(s.router)
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration", time.Since(start).String(),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
