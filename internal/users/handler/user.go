package handler

import (
	"encoding/json"
	"net/http"

	"carrental/internal/users/service"
	"carrental/pkg/auth"
	apperrors "carrental/pkg/errors"
	httputil "carrental/pkg/http"
	"carrental/pkg/logger"
	"carrental/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type UserHandler struct {
	service       service.UserService
	authmw        *auth.Middleware
	maxUploadSize int64
	log           *logger.Logger
}

func NewUserHandler(service service.UserService, authmw *auth.Middleware, maxUploadSize int, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service:       service,
		authmw:        authmw,
		maxUploadSize: int64(maxUploadSize),
		log:           log,
	}
}

// AuthResponse carries the user together with a freshly minted token.
type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Register", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	user, token, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Register", err)
		return
	}

	if err := httputil.WriteCreated(w, AuthResponse{User: user, Token: token}); err != nil {
		h.log.Error("failed to write created response", "handler", "Register", "operation", "WriteCreated", "error", err)
	}
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Login", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	user, token, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Login", err)
		return
	}

	if err := httputil.WriteSuccess(w, AuthResponse{User: user, Token: token}); err != nil {
		h.log.Error("failed to write success response", "handler", "Login", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		h.writeError(w, "Me", apperrors.Unauthorized("Authentication required"))
		return
	}

	user, err := h.service.GetByID(r.Context(), identity.ID)
	if err != nil {
		h.writeError(w, "Me", err)
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "Me", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) ChangeRole(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		h.writeError(w, "ChangeRole", apperrors.Unauthorized("Authentication required"))
		return
	}

	user, err := h.service.PromoteToOwner(r.Context(), identity.ID)
	if err != nil {
		h.writeError(w, "ChangeRole", err)
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "ChangeRole", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) UploadImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
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

	user, err := h.service.UpdateImage(r.Context(), identity.ID, header.Filename, file)
	if err != nil {
		h.writeError(w, "UploadImage", err)
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "UploadImage", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "operation", "WriteError", "error", writeErr)
	}
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/users/register", h.Register)
	router.POST("/api/v1/users/login", h.Login)
	router.GET("/api/v1/users/me", h.authmw.Protect(h.Me))
	router.POST("/api/v1/users/change-role", h.authmw.Protect(h.ChangeRole))
	router.POST("/api/v1/users/image", h.authmw.Protect(h.UploadImage))
}
