package handler

import (
	"encoding/json"
	"net/http"

	"rxcourier/internal/delivery/dto"
	"rxcourier/internal/delivery/http/middleware"
	"rxcourier/internal/service"
	"rxcourier/internal/usecase"
	"rxcourier/pkg/response"
	"rxcourier/pkg/validator"
)

type ClinicHandler struct {
	clinicUsecase usecase.ClinicUsecase
	validator     *validator.CustomValidator
}

func NewClinicHandler(clinicUsecase usecase.ClinicUsecase, validator *validator.CustomValidator) *ClinicHandler {
	return &ClinicHandler{
		clinicUsecase: clinicUsecase,
		validator:     validator,
	}
}

func (h *ClinicHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.CreateClinicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	clinic, err := h.clinicUsecase.Create(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrClinicAlreadyExists:
			response.Conflict(w, "Clinic already registered for this doctor")
		case usecase.ErrClinicNameTaken:
			response.Conflict(w, "Clinic name already taken")
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to create clinic")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Clinic created successfully", clinic)
}

func (h *ClinicHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	clinic, err := h.clinicUsecase.GetByUserID(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrClinicNotFound:
			response.NotFound(w, "Clinic not found")
		default:
			response.InternalServerError(w, "Failed to get clinic")
		}
		return
	}

	response.Success(w, http.StatusOK, "Clinic retrieved successfully", clinic)
}

func (h *ClinicHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.UpdateClinicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	clinic, err := h.clinicUsecase.Update(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrClinicNotFound:
			response.NotFound(w, "Clinic not found")
		case usecase.ErrClinicNameTaken:
			response.Conflict(w, "Clinic name already taken")
		default:
			response.InternalServerError(w, "Failed to update clinic")
		}
		return
	}

	response.Success(w, http.StatusOK, "Clinic updated successfully", clinic)
}

func (h *ClinicHandler) SendAssistantVerification(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	if err := h.clinicUsecase.SendAssistantVerification(r.Context(), userID); err != nil {
		switch err {
		case usecase.ErrClinicNotFound:
			response.NotFound(w, "Clinic or assistant mobile not found")
		default:
			response.InternalServerError(w, "Failed to send OTP")
		}
		return
	}

	response.Success(w, http.StatusOK, "OTP sent successfully", nil)
}

func (h *ClinicHandler) VerifyAssistantMobile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.VerifyAssistantMobileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.clinicUsecase.VerifyAssistantMobile(r.Context(), userID, req.OTP); err != nil {
		switch err {
		case service.ErrOTPMismatch:
			response.Error(w, http.StatusBadRequest, "Invalid or expired OTP", nil)
		case usecase.ErrClinicNotFound:
			response.NotFound(w, "Clinic not found")
		default:
			response.InternalServerError(w, "Failed to verify assistant mobile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Assistant mobile verified successfully", nil)
}
