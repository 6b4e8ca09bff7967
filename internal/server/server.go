//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=server_mock
package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"florist-marketplace/internal/availability"
	"florist-marketplace/internal/status"
	"florist-marketplace/internal/storage"
)

type Storage interface {
	GetFlorist(ctx context.Context, id string) (*storage.Florist, error)
	CheckAvailability(ctx context.Context, floristID string, now, requestedDate time.Time, requestedTime string) (availability.Result, error)
	SearchFlorists(ctx context.Context, origin availability.Coordinates, now, requestedDate time.Time, requestedTime string) ([]storage.FloristMatch, error)
	CreateOrder(ctx context.Context, req storage.CreateOrderRequest) (*storage.Order, error)
	GetOrder(ctx context.Context, orderID string) (*storage.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, proposed status.Status, notes string) (*storage.Order, error)
	AvailableTransitions(ctx context.Context, orderID string) ([]status.Status, error)
	GetOrderHistory(ctx context.Context, orderID string) ([]storage.StatusEvent, error)
	GetFloristOrders(ctx context.Context, floristID string, limit int, activeOnly bool) ([]storage.Order, error)
	UpdateFloristProfile(ctx context.Context, florist *storage.Florist) (*storage.Florist, error)
}

type UserRepo interface {
	ValidateUser(ctx context.Context, username, password string) (bool, error)
}

type Server struct {
	storage      Storage
	userRepo     UserRepo
	server       *http.Server
	AuditManager *AuditManager

	timeNow func() time.Time
}

func New(storage Storage, userRepo UserRepo) *Server {
	auditManager := NewAuditManager(2, 5, 500*time.Millisecond)
	return &Server{
		storage:      storage,
		userRepo:     userRepo,
		AuditManager: auditManager,
		timeNow:      time.Now,
	}
}

func (s *Server) Run(ctx context.Context, port string) error {
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	s.AuditManager.Start(ctx)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			log.Printf("ERROR: server shutdown failed: %v", err)
		}
	}()

	log.Printf("Server starting on port %s", port)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down server...")

	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	log.Println("HTTP server shutdown completed")

	s.AuditManager.Shutdown(ctx)
	log.Println("Server shutdown completed successfully")

	return nil
}

func (s *Server) setupRoutes() http.Handler {
	router := mux.NewRouter()

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	router.HandleFunc("/orders", s.handleCreateOrder).Methods(http.MethodPost)
	router.HandleFunc("/orders/{id}", s.handleGetOrder).Methods(http.MethodGet)
	router.HandleFunc("/orders/{id}/status", s.handleUpdateOrderStatus).Methods(http.MethodPut)
	router.HandleFunc("/orders/{id}/history", s.handleOrderHistory).Methods(http.MethodGet)
	router.HandleFunc("/orders/{id}/transitions", s.handleOrderTransitions).Methods(http.MethodGet)

	// /florists/search must be registered before /florists/{id}.
	router.HandleFunc("/florists/search", s.handleSearchFlorists).Methods(http.MethodGet)
	router.HandleFunc("/florists/{id}", s.handleGetFlorist).Methods(http.MethodGet)
	router.HandleFunc("/florists/{id}/availability", s.handleCheckAvailability).Methods(http.MethodGet)
	router.HandleFunc("/florists/{id}/orders", s.handleFloristOrders).Methods(http.MethodGet)
	router.HandleFunc("/florists/{id}/settings", s.handleUpdateFloristProfile).Methods(http.MethodPut)

	return s.auditLogMiddleware(s.basicAuthMiddleware(router))
}

func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		valid, err := s.userRepo.ValidateUser(r.Context(), username, password)
		if err != nil || !valid {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
