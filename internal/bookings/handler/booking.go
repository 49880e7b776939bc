package handler

import (
	"encoding/json"
	"net/http"

	"carrental/internal/bookings/service"
	"carrental/pkg/auth"
	apperrors "carrental/pkg/errors"
	httputil "carrental/pkg/http"
	"carrental/pkg/logger"
	"carrental/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	authmw  *auth.Middleware
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, authmw *auth.Middleware, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		authmw:  authmw,
		log:     log,
	}
}

// AvailabilityResponse reports whether the requested range is free.
type AvailabilityResponse struct {
	Available bool `json:"available"`
}

// StatusChangeResponse returns the updated booking together with the owner's
// refreshed booking list.
type StatusChangeResponse struct {
	Booking  *model.Booking   `json:"booking"`
	Bookings []*model.Booking `json:"bookings"`
}

func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.AvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "CheckAvailability", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	available, err := h.service.CheckAvailability(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CheckAvailability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, AvailabilityResponse{Available: available}); err != nil {
		h.log.Error("failed to write success response", "handler", "CheckAvailability", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		h.writeError(w, "Create", apperrors.Unauthorized("Authentication required"))
		return
	}

	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	booking, err := h.service.Create(r.Context(), identity.ID, &req)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) ListForUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		h.writeError(w, "ListForUser", apperrors.Unauthorized("Authentication required"))
		return
	}

	bookings, err := h.service.ListForRenter(r.Context(), identity.ID)
	if err != nil {
		h.writeError(w, "ListForUser", err)
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "ListForUser", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) ListForOwner(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		h.writeError(w, "ListForOwner", apperrors.Unauthorized("Authentication required"))
		return
	}

	bookings, err := h.service.ListForOwner(r.Context(), identity.ID)
	if err != nil {
		h.writeError(w, "ListForOwner", err)
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "ListForOwner", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) ChangeStatus(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		h.writeError(w, "ChangeStatus", apperrors.Unauthorized("Authentication required"))
		return
	}

	var req model.StatusChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "ChangeStatus", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	booking, ownerBookings, err := h.service.ChangeStatus(r.Context(), identity.ID, &req)
	if err != nil {
		h.writeError(w, "ChangeStatus", err)
		return
	}

	if err := httputil.WriteSuccess(w, StatusChangeResponse{
		Booking:  booking,
		Bookings: ownerBookings,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "ChangeStatus", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "operation", "WriteError", "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings/check-availability", h.CheckAvailability)
	router.POST("/api/v1/bookings", h.authmw.Protect(h.Create))
	router.GET("/api/v1/bookings/user", h.authmw.Protect(h.ListForUser))
	router.GET("/api/v1/bookings/owner", h.authmw.Protect(h.ListForOwner))
	router.POST("/api/v1/bookings/change-status", h.authmw.Protect(h.ChangeStatus))
}
