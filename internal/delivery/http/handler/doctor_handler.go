package handler

import (
	"net/http"
	"strconv"

	"rxcourier/internal/domain/entity"
	"rxcourier/internal/usecase"
	"rxcourier/pkg/response"
	"rxcourier/pkg/validator"

	"github.com/gorilla/mux"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

func (h *DoctorHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := &entity.DoctorFilter{
		Search:    query.Get("search"),
		DateRange: query.Get("date_range"),
	}
	if page, err := strconv.Atoi(query.Get("page")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil {
		filter.Limit = limit
	}

	doctors, meta, err := h.doctorUsecase.List(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list doctors")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Doctors retrieved successfully", doctors, meta)
}

func (h *DoctorHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	doctor, err := h.doctorUsecase.GetByID(r.Context(), uint(id))
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}
