package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

func (s *Server) auditLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		entry := AuditLogEntry{
			Timestamp: time.Now(),
			Method:    r.Method,
			Path:      r.URL.Path,
			Handler:   getHandlerName(r.URL.Path, r.Method),
		}

		if username, _, ok := r.BasicAuth(); ok {
			entry.UserID = username
		}

		entry.OrderID = pathSegmentAfter(r.URL.Path, "orders")
		entry.FloristID = pathSegmentAfter(r.URL.Path, "florists")
		if entry.FloristID == "search" {
			entry.FloristID = ""
		}

		var requestBody []byte
		if r.Body != nil {
			requestBody, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewBuffer(requestBody))
			entry.Request = string(requestBody)

			if entry.OrderID != "" && strings.Contains(r.URL.Path, "/status") {
				var statusRequest struct {
					Status string `json:"status"`
				}
				if err := json.Unmarshal(requestBody, &statusRequest); err == nil {
					if order, err := s.storage.GetOrder(r.Context(), entry.OrderID); err == nil {
						entry.OldStatus = string(order.Status)
						entry.NewStatus = statusRequest.Status
					}
				}
			}
		}

		wrw := newResponseWriterWrapper(w)

		next.ServeHTTP(wrw, r)

		entry.StatusCode = wrw.GetStatusCode()
		entry.Response = string(wrw.GetBody())

		s.AuditManager.LogEntry(r.Context(), entry)
	})
}

func pathSegmentAfter(path, segment string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if part == segment && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

func getHandlerName(path string, method string) string {
	switch {
	case strings.HasPrefix(path, "/orders"):
		switch {
		case method == http.MethodPost:
			return "handleCreateOrder"
		case strings.Contains(path, "/status"):
			return "handleUpdateOrderStatus"
		case strings.Contains(path, "/history"):
			return "handleOrderHistory"
		case strings.Contains(path, "/transitions"):
			return "handleOrderTransitions"
		case method == http.MethodGet:
			return "handleGetOrder"
		}
	case strings.HasPrefix(path, "/florists"):
		switch {
		case path == "/florists/search":
			return "handleSearchFlorists"
		case strings.Contains(path, "/availability"):
			return "handleCheckAvailability"
		case strings.Contains(path, "/orders"):
			return "handleFloristOrders"
		case strings.Contains(path, "/settings"):
			return "handleUpdateFloristProfile"
		case method == http.MethodGet:
			return "handleGetFlorist"
		}
	}

	return "unknown"
}
