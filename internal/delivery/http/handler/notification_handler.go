package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"rxcourier/internal/delivery/dto"
	"rxcourier/internal/delivery/http/middleware"
	"rxcourier/internal/usecase"
	"rxcourier/pkg/response"
	"rxcourier/pkg/validator"

	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	notificationUsecase usecase.NotificationUsecase
	validator           *validator.CustomValidator
}

func NewNotificationHandler(notificationUsecase usecase.NotificationUsecase, validator *validator.CustomValidator) *NotificationHandler {
	return &NotificationHandler{
		notificationUsecase: notificationUsecase,
		validator:           validator,
	}
}

func (h *NotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	notification, err := h.notificationUsecase.Create(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create notification")
		return
	}

	response.Success(w, http.StatusCreated, "Notification created successfully", notification)
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if parsed, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		limit = parsed
	}

	notifications, err := h.notificationUsecase.List(r.Context(), limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list notifications")
		return
	}

	response.Success(w, http.StatusOK, "Notifications retrieved successfully", notifications)
}

func (h *NotificationHandler) Recent(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notificationUsecase.Recent(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list notifications")
		return
	}

	response.Success(w, http.StatusOK, "Notifications retrieved successfully", notifications)
}

func (h *NotificationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	notifications, err := h.notificationUsecase.ListByUser(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to list notifications")
		return
	}

	response.Success(w, http.StatusOK, "Notifications retrieved successfully", notifications)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid notification ID", nil)
		return
	}

	notification, err := h.notificationUsecase.MarkRead(r.Context(), uint(id))
	if err != nil {
		switch err {
		case usecase.ErrNotificationNotFound:
			response.NotFound(w, "Notification not found")
		default:
			response.InternalServerError(w, "Failed to mark notification read")
		}
		return
	}

	response.Success(w, http.StatusOK, "Notification marked read", notification)
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid notification ID", nil)
		return
	}

	if err := h.notificationUsecase.Delete(r.Context(), uint(id)); err != nil {
		switch err {
		case usecase.ErrNotificationNotFound:
			response.NotFound(w, "Notification not found")
		default:
			response.InternalServerError(w, "Failed to delete notification")
		}
		return
	}

	response.Success(w, http.StatusOK, "Notification deleted successfully", nil)
}
