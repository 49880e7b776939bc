package handler

import (
	"encoding/json"
	"net/http"

	"carrental/internal/cars/service"
	"carrental/pkg/auth"
	apperrors "carrental/pkg/errors"
	httputil "carrental/pkg/http"
	"carrental/pkg/logger"
	"carrental/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type CarHandler struct {
	service       service.CarService
	authmw        *auth.Middleware
	maxUploadSize int64
	log           *logger.Logger
}

func NewCarHandler(service service.CarService, authmw *auth.Middleware, maxUploadSize int, log *logger.Logger) *CarHandler {
	return &CarHandler{
		service:       service,
		authmw:        authmw,
		maxUploadSize: int64(maxUploadSize),
		log:           log,
	}
}

func (h *CarHandler) ListAvailable(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cars, err := h.service.ListAvailable(r.Context())
	if err != nil {
		h.writeError(w, "ListAvailable", err)
		return
	}

	if err := httputil.WriteSuccess(w, cars); err != nil {
		h.log.Error("failed to write success response", "handler", "ListAvailable", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CarHandler) Add(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		h.writeError(w, "Add", apperrors.Unauthorized("Authentication required"))
		return
	}

	var car model.Car
	if err := json.NewDecoder(r.Body).Decode(&car); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Add", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Add(r.Context(), identity.ID, &car); err != nil {
		h.writeError(w, "Add", err)
		return
	}

	if err := httputil.WriteCreated(w, car); err != nil {
		h.log.Error("failed to write created response", "handler", "Add", "operation", "WriteCreated", "error", err)
	}
}

func (h *CarHandler) ListForOwner(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		h.writeError(w, "ListForOwner", apperrors.Unauthorized("Authentication required"))
		return
	}

	cars, err := h.service.ListForOwner(r.Context(), identity.ID)
	if err != nil {
		h.writeError(w, "ListForOwner", err)
		return
	}

	if err := httputil.WriteSuccess(w, cars); err != nil {
		h.log.Error("failed to write success response", "handler", "ListForOwner", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CarHandler) ToggleAvailability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		h.writeError(w, "ToggleAvailability", apperrors.Unauthorized("Authentication required"))
		return
	}

	car, err := h.service.ToggleAvailability(r.Context(), identity.ID, ps.ByName("id"))
	if err != nil {
		h.writeError(w, "ToggleAvailability", err)
		return
	}

	if err := httputil.WriteSuccess(w, car); err != nil {
		h.log.Error("failed to write success response", "handler", "ToggleAvailability", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CarHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		h.writeError(w, "Delete", apperrors.Unauthorized("Authentication required"))
		return
	}

	if err := h.service.Delete(r.Context(), identity.ID, ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *CarHandler) UploadImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		h.writeError(w, "UploadImage", apperrors.Unauthorized("Authentication required"))
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		h.writeError(w, "UploadImage", apperrors.InvalidInput("Invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		h.writeError(w, "UploadImage", apperrors.InvalidInput("image file is required"))
		return
	}
	defer file.Close()

	car, err := h.service.AttachImage(r.Context(), identity.ID, ps.ByName("id"), header.Filename, file)
	if err != nil {
		h.writeError(w, "UploadImage", err)
		return
	}

	if err := httputil.WriteSuccess(w, car); err != nil {
		h.log.Error("failed to write success response", "handler", "UploadImage", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CarHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "operation", "WriteError", "error", writeErr)
	}
}

func (h *CarHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/cars", h.ListAvailable)
	router.POST("/api/v1/cars", h.authmw.RequireOwner(h.Add))
	router.GET("/api/v1/cars/owner", h.authmw.RequireOwner(h.ListForOwner))
	router.POST("/api/v1/cars/:id/toggle", h.authmw.RequireOwner(h.ToggleAvailability))
	router.DELETE("/api/v1/cars/:id", h.authmw.RequireOwner(h.Delete))
	router.POST("/api/v1/cars/:id/image", h.authmw.RequireOwner(h.UploadImage))
}
