package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"florist-marketplace/internal/availability"
	"florist-marketplace/internal/metrics"
	"florist-marketplace/internal/status"
	"florist-marketplace/internal/storage"
)

func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func respondError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, map[string]string{"error": message})
}

// respondStorageError maps service errors onto HTTP statuses. Not-found
// errors become 404, rejected transitions 409, the rest of the known
// rejections 400.
func respondStorageError(w http.ResponseWriter, operation string, err error) {
	switch {
	case strings.Contains(err.Error(), "not found"):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, storage.ErrInvalidTransition):
		metrics.InvalidTransitionsTotal.Inc()
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, storage.ErrFloristInactive),
		errors.Is(err, storage.ErrNotAvailable),
		errors.Is(err, storage.ErrUnknownSlot):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		metrics.OperationErrorsTotal.WithLabelValues(operation).Inc()
		log.Printf("ERROR: %s failed: %v", operation, err)
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func parseDateParam(r *http.Request) (time.Time, error) {
	return time.Parse("2006-01-02", r.URL.Query().Get("date"))
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var orderRequest struct {
		FloristID    string  `json:"florist_id"`
		CustomerID   string  `json:"customer_id"`
		DeliveryType string  `json:"delivery_type"`
		TotalAmount  float64 `json:"total_amount"`
		DeliveryDate string  `json:"delivery_date"`
		DeliverySlot string  `json:"delivery_slot"`
	}

	if err := json.NewDecoder(r.Body).Decode(&orderRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if orderRequest.FloristID == "" || orderRequest.CustomerID == "" {
		respondError(w, http.StatusBadRequest, "Missing florist_id or customer_id")
		return
	}

	deliveryType, err := status.ParseDeliveryType(orderRequest.DeliveryType)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	deliveryDate, err := time.Parse("2006-01-02", orderRequest.DeliveryDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid delivery_date. Use YYYY-MM-DD")
		return
	}

	order, err := s.storage.CreateOrder(r.Context(), storage.CreateOrderRequest{
		FloristID:    orderRequest.FloristID,
		CustomerID:   orderRequest.CustomerID,
		DeliveryType: deliveryType,
		TotalAmount:  orderRequest.TotalAmount,
		DeliveryDate: deliveryDate,
		DeliverySlot: orderRequest.DeliverySlot,
	})
	if err != nil {
		respondStorageError(w, "create_order", err)
		return
	}

	metrics.OrdersCreatedTotal.Inc()
	respondJSON(w, http.StatusCreated, order)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	order, err := s.storage.GetOrder(r.Context(), orderID)
	if err != nil {
		respondStorageError(w, "get_order", err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (s *Server) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	var statusRequest struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}

	if err := json.NewDecoder(r.Body).Decode(&statusRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	proposed, err := status.Parse(statusRequest.Status)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := s.storage.UpdateOrderStatus(r.Context(), orderID, proposed, statusRequest.Notes)
	if err != nil {
		respondStorageError(w, "update_order_status", err)
		return
	}

	metrics.StatusTransitionsTotal.WithLabelValues(string(proposed)).Inc()
	respondJSON(w, http.StatusOK, order)
}

func (s *Server) handleOrderHistory(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	history, err := s.storage.GetOrderHistory(r.Context(), orderID)
	if err != nil {
		respondStorageError(w, "order_history", err)
		return
	}

	respondJSON(w, http.StatusOK, history)
}

func (s *Server) handleOrderTransitions(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	transitions, err := s.storage.AvailableTransitions(r.Context(), orderID)
	if err != nil {
		respondStorageError(w, "order_transitions", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string][]status.Status{"transitions": transitions})
}

func (s *Server) handleGetFlorist(w http.ResponseWriter, r *http.Request) {
	floristID := mux.Vars(r)["id"]

	florist, err := s.storage.GetFlorist(r.Context(), floristID)
	if err != nil {
		respondStorageError(w, "get_florist", err)
		return
	}

	respondJSON(w, http.StatusOK, florist)
}

func (s *Server) handleCheckAvailability(w http.ResponseWriter, r *http.Request) {
	floristID := mux.Vars(r)["id"]

	requestedDate, err := parseDateParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid 'date' parameter. Use YYYY-MM-DD")
		return
	}
	requestedTime := r.URL.Query().Get("time")

	result, err := s.storage.CheckAvailability(r.Context(), floristID, s.timeNow(), requestedDate, requestedTime)
	if err != nil {
		respondStorageError(w, "check_availability", err)
		return
	}

	outcome := "unavailable"
	if result.Available {
		outcome = "available"
	}
	metrics.AvailabilityChecksTotal.WithLabelValues(outcome).Inc()

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleSearchFlorists(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		respondError(w, http.StatusBadRequest, "Invalid 'lat' or 'lng' parameter")
		return
	}

	requestedDate, err := parseDateParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid 'date' parameter. Use YYYY-MM-DD")
		return
	}
	requestedTime := r.URL.Query().Get("time")

	origin := availability.Coordinates{Lat: lat, Lng: lng}
	matches, err := s.storage.SearchFlorists(r.Context(), origin, s.timeNow(), requestedDate, requestedTime)
	if err != nil {
		respondStorageError(w, "search_florists", err)
		return
	}

	metrics.FloristSearchesTotal.Inc()
	respondJSON(w, http.StatusOK, matches)
}

func (s *Server) handleFloristOrders(w http.ResponseWriter, r *http.Request) {
	floristID := mux.Vars(r)["id"]

	limit := 0
	if limitStr := r.URL.Query().Get("last"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			respondError(w, http.StatusBadRequest, "Invalid value for 'last' parameter")
			return
		}
	}
	activeOnly := r.URL.Query().Get("active") == "true"

	orders, err := s.storage.GetFloristOrders(r.Context(), floristID, limit, activeOnly)
	if err != nil {
		respondStorageError(w, "florist_orders", err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (s *Server) handleUpdateFloristProfile(w http.ResponseWriter, r *http.Request) {
	floristID := mux.Vars(r)["id"]

	var florist storage.Florist
	if err := json.NewDecoder(r.Body).Decode(&florist); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	florist.ID = floristID

	updated, err := s.storage.UpdateFloristProfile(r.Context(), &florist)
	if err != nil {
		// Configuration validation failures are client errors.
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "failed to") {
			respondStorageError(w, "update_florist_profile", err)
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, updated)
}
