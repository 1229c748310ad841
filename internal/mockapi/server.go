// Package mockapi is an in-memory development backend serving the same /api
// contract as the production storefront backend.
package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/chrisdamba/foodstore/internal/factories"
	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// Demo account seeded at startup.
const (
	DemoEmail    = "demo@foodstore.local"
	DemoPassword = "demo1234"
)

type Server struct {
	store   *Store
	auth    *Auth
	limiter *RateLimiter
	logger  *slog.Logger
}

func NewServer(cfg models.MockConfig, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	factories.Seed(int64(cfg.Seed))
	store := NewStore(cfg.ExtraRestaurants)

	hash, err := HashPassword(DemoPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}
	store.PutUser((&factories.UserFactory{}).CreateUser(DemoEmail), hash)

	s := &Server{
		store:  store,
		auth:   NewAuth(cfg.JWTSecret, cfg.TokenTTL),
		logger: logger,
	}
	if cfg.RateLimit > 0 {
		s.limiter = NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
	}
	return s, nil
}

func (s *Server) Store() *Store {
	return s.store
}

// handle registers a route with and without the trailing slash.
func handle(r *mux.Router, path string, h http.HandlerFunc, method string) {
	r.HandleFunc(path, h).Methods(method)
	r.HandleFunc(path+"/", h).Methods(method)
}

func (s *Server) RegisterRoutes(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/", s.root).Methods(http.MethodGet)

	handle(api, "/restaurants", s.listRestaurants, http.MethodGet)
	handle(api, "/restaurants", s.createRestaurant, http.MethodPost)
	api.HandleFunc("/restaurants/{id}", s.getRestaurant).Methods(http.MethodGet)
	api.HandleFunc("/restaurants/{id}", s.updateRestaurant).Methods(http.MethodPut)
	api.HandleFunc("/restaurants/{id}", s.deleteRestaurant).Methods(http.MethodDelete)
	api.HandleFunc("/restaurants/{id}/menu", s.getMenu).Methods(http.MethodGet)

	handle(api, "/categories", s.listCategories, http.MethodGet)
	handle(api, "/categories", s.createCategory, http.MethodPost)

	handle(api, "/menu-items", s.createMenuItem, http.MethodPost)
	api.HandleFunc("/menu-items/{id}", s.getMenuItem).Methods(http.MethodGet)
	api.HandleFunc("/menu-items/{id}", s.updateMenuItem).Methods(http.MethodPut)
	api.HandleFunc("/menu-items/{id}", s.deleteMenuItem).Methods(http.MethodDelete)

	api.HandleFunc("/users/register", s.register).Methods(http.MethodPost)
	api.HandleFunc("/users/login", s.login).Methods(http.MethodPost)
	api.HandleFunc("/users/profile", s.requireUser(s.profile)).Methods(http.MethodGet)
	api.HandleFunc("/users/profile", s.requireUser(s.updateProfile)).Methods(http.MethodPut)
	api.HandleFunc("/users/addresses", s.requireUser(s.addAddress)).Methods(http.MethodPost)
	api.HandleFunc("/users/addresses/{index}", s.requireUser(s.updateAddress)).Methods(http.MethodPut)

	handle(api, "/orders", s.requireUser(s.createOrder), http.MethodPost)
	handle(api, "/orders", s.requireUser(s.listOrders), http.MethodGet)
	api.HandleFunc("/orders/{id}", s.requireUser(s.getOrder)).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}/status", s.updateOrderStatus).Methods(http.MethodPut)

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
}

// Handler is the full middleware chain: CORS, rate limiting, request log.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	s.RegisterRoutes(r)
	r.Use(s.logRequests)

	var h http.Handler = r
	if s.limiter != nil {
		h = s.limiter.Limit(h)
	}
	return cors.AllowAll().Handler(h)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", r.Header.Get("X-Request-ID"),
			"duration", time.Since(start),
		)
	})
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("mock backend listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down mock backend")
		return srv.Shutdown(shutdownCtx)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError uses the backend's {"detail": ...} error body.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid request body: "+err.Error())
		return false
	}
	return true
}
