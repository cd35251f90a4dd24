package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"front-of-house/internal/domain"
	"front-of-house/internal/logger"
	"front-of-house/internal/service"
)

type Handlers struct {
	svc *service.Restaurant
	log *logger.Logger
}

func NewHandlers(svc *service.Restaurant, lg *logger.Logger) *Handlers {
	return &Handlers{svc: svc, log: lg}
}

func (h *Handlers) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.health)
	mux.HandleFunc("GET /menu", h.menu)
	mux.HandleFunc("GET /tables", h.tables)
	mux.HandleFunc("GET /stations", h.stations)

	mux.HandleFunc("GET /orders", h.orders)
	mux.HandleFunc("GET /orders/active", h.activeOrders)
	mux.HandleFunc("GET /orders/{id}", h.orderByID)
	mux.HandleFunc("POST /orders", h.createOrder)
	mux.HandleFunc("PATCH /orders/{id}/status", h.updateOrderStatus)
	mux.HandleFunc("PATCH /orders/{id}/items/{index}/status", h.updateItemStatus)

	mux.HandleFunc("GET /tables/{id}/orders", h.tableOrders)
	mux.HandleFunc("GET /stations/{id}/orders", h.stationOrders)

	mux.HandleFunc("POST /admin/reset", h.reset)

	return withRequestID(mux, h.log)
}

func (h *Handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) menu(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.MenuItems(r.Context())
	h.respondList(w, items, err)
}

func (h *Handlers) tables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.svc.Tables(r.Context())
	h.respondList(w, tables, err)
}

func (h *Handlers) stations(w http.ResponseWriter, r *http.Request) {
	stations, err := h.svc.Stations(r.Context())
	h.respondList(w, stations, err)
}

func (h *Handlers) orders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.Orders(r.Context())
	h.respondList(w, orders, err)
}

func (h *Handlers) activeOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ActiveOrders(r.Context())
	h.respondList(w, orders, err)
}

func (h *Handlers) orderByID(w http.ResponseWriter, r *http.Request) {
	order, err := h.svc.OrderByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handlers) createOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody("invalid JSON body"))
		return
	}
	order, err := h.svc.CreateOrder(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handlers) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		writeJSON(w, http.StatusBadRequest, errBody("status is required"))
		return
	}
	order, err := h.svc.UpdateOrderStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handlers) updateItemStatus(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errBody("item index must be a number"))
		return
	}
	var req domain.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		writeJSON(w, http.StatusBadRequest, errBody("status is required"))
		return
	}
	order, err := h.svc.UpdateItemStatus(r.Context(), r.PathValue("id"), index, req.Status)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handlers) tableOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.TableOrders(r.Context(), r.PathValue("id"))
	h.respondList(w, orders, err)
}

func (h *Handlers) stationOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.OrdersByStation(r.Context(), r.PathValue("id"))
	h.respondList(w, orders, err)
}

func (h *Handlers) reset(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearAllData(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (h *Handlers) respondList(w http.ResponseWriter, list any, err error) {
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrItemIndexOutOfRange),
		errors.Is(err, service.ErrTableNotFound):
		writeJSON(w, http.StatusNotFound, errBody(err.Error()))
	case errors.Is(err, service.ErrNoItems), errors.Is(err, service.ErrInvalidQuantity):
		writeJSON(w, http.StatusBadRequest, errBody(err.Error()))
	default:
		h.log.Error("request_failed", err, nil)
		writeJSON(w, http.StatusInternalServerError, errBody("internal error"))
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func errBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}
