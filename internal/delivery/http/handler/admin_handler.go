package handler

import (
	"encoding/json"
	"net/http"

	"rxcourier/internal/delivery/dto"
	"rxcourier/internal/delivery/http/middleware"
	"rxcourier/internal/usecase"
	"rxcourier/pkg/response"
	"rxcourier/pkg/validator"
)

type AdminHandler struct {
	adminUsecase usecase.AdminUsecase
	validator    *validator.CustomValidator
}

func NewAdminHandler(adminUsecase usecase.AdminUsecase, validator *validator.CustomValidator) *AdminHandler {
	return &AdminHandler{
		adminUsecase: adminUsecase,
		validator:    validator,
	}
}

func (h *AdminHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	admin, err := h.adminUsecase.Register(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrUsernameAlreadyExists:
			response.Conflict(w, "Username already exists")
		default:
			response.InternalServerError(w, "Failed to register admin")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Admin registered successfully", admin)
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	tokens, err := h.adminUsecase.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidCredentials:
			response.Unauthorized(w, "Invalid username or password")
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	response.Success(w, http.StatusOK, "Login successful", tokens)
}

func (h *AdminHandler) GetDetails(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	admin, err := h.adminUsecase.GetByID(r.Context(), adminID)
	if err != nil {
		switch err {
		case usecase.ErrAdminNotFound:
			response.NotFound(w, "Admin not found")
		default:
			response.InternalServerError(w, "Failed to get admin details")
		}
		return
	}

	response.Success(w, http.StatusOK, "Admin details retrieved successfully", admin)
}

func (h *AdminHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.adminUsecase.ChangePassword(r.Context(), adminID, &req); err != nil {
		switch err {
		case usecase.ErrInvalidCredentials:
			response.Error(w, http.StatusBadRequest, "Old password is incorrect", nil)
		case usecase.ErrAdminNotFound:
			response.NotFound(w, "Admin not found")
		default:
			response.InternalServerError(w, "Failed to change password")
		}
		return
	}

	response.Success(w, http.StatusOK, "Password changed successfully", nil)
}
