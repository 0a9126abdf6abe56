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

type FinanceHandler struct {
	financeUsecase usecase.FinanceUsecase
	validator      *validator.CustomValidator
}

func NewFinanceHandler(financeUsecase usecase.FinanceUsecase, validator *validator.CustomValidator) *FinanceHandler {
	return &FinanceHandler{
		financeUsecase: financeUsecase,
		validator:      validator,
	}
}

func (h *FinanceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.financeUsecase.Summary(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to compute finance summary")
		return
	}

	response.Success(w, http.StatusOK, "Finance summary retrieved successfully", summary)
}

func (h *FinanceHandler) DoctorDues(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	dues, err := h.financeUsecase.DoctorDues(r.Context(), uint(doctorID))
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to compute doctor dues")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor dues retrieved successfully", dues)
}

// MyDues lets a doctor read their own payable position.
func (h *FinanceHandler) MyDues(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	dues, err := h.financeUsecase.DoctorDues(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to compute dues")
		}
		return
	}

	response.Success(w, http.StatusOK, "Dues retrieved successfully", dues)
}

func (h *FinanceHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)

	rows, meta, err := h.financeUsecase.List(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list finance records")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Finance records retrieved successfully", rows, meta)
}

func (h *FinanceHandler) UpdateDoctorRates(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	var req dto.UpdateDoctorRatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	actorID, _ := actorFromContext(r)

	doctor, err := h.financeUsecase.UpdateDoctorRates(r.Context(), uint(doctorID), &req, actorID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to update doctor rates")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor rates updated successfully", doctor)
}
