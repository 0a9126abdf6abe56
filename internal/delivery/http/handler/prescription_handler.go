package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"rxcourier/internal/delivery/dto"
	"rxcourier/internal/delivery/http/middleware"
	"rxcourier/internal/domain/entity"
	"rxcourier/internal/service"
	"rxcourier/internal/usecase"
	"rxcourier/pkg/jwt"
	"rxcourier/pkg/response"
	"rxcourier/pkg/validator"

	"github.com/gorilla/mux"
)

type PrescriptionHandler struct {
	prescriptionUsecase usecase.PrescriptionUsecase
	validator           *validator.CustomValidator
}

func NewPrescriptionHandler(prescriptionUsecase usecase.PrescriptionUsecase, validator *validator.CustomValidator) *PrescriptionHandler {
	return &PrescriptionHandler{
		prescriptionUsecase: prescriptionUsecase,
		validator:           validator,
	}
}

// filterFromQuery builds the repository filter from listing query parameters.
func filterFromQuery(r *http.Request) *entity.PrescriptionFilter {
	query := r.URL.Query()

	filter := &entity.PrescriptionFilter{
		Status:    query.Get("status"),
		PrID:      query.Get("pr_id"),
		Search:    query.Get("search"),
		StartDate: query.Get("start_date"),
		EndDate:   query.Get("end_date"),
		DateRange: query.Get("date_range"),
	}

	if id, err := strconv.ParseUint(query.Get("deliveryboy_id"), 10, 32); err == nil {
		deliveryBoyID := uint(id)
		filter.DeliveryBoyID = &deliveryBoyID
	}
	if page, err := strconv.Atoi(query.Get("page")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil {
		filter.Limit = limit
	}

	return filter
}

// actorFromContext pulls the authenticated caller for audit attribution.
func actorFromContext(r *http.Request) (*uint, string) {
	role, _ := middleware.GetRoleFromContext(r.Context())
	if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		return &userID, role
	}
	return nil, role
}

func (h *PrescriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.CreatePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	prescription, err := h.prescriptionUsecase.Create(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case service.ErrPrIDAllocation:
			response.InternalServerError(w, "Failed to allocate prescription ID")
		default:
			response.InternalServerError(w, "Failed to create prescription")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Prescription created successfully", prescription)
}

func (h *PrescriptionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid prescription ID", nil)
		return
	}

	prescription, err := h.prescriptionUsecase.GetByID(r.Context(), uint(id))
	if err != nil {
		switch err {
		case usecase.ErrPrescriptionNotFound:
			response.NotFound(w, "Prescription not found")
		default:
			response.InternalServerError(w, "Failed to get prescription")
		}
		return
	}

	response.Success(w, http.StatusOK, "Prescription retrieved successfully", prescription)
}

func (h *PrescriptionHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid prescription ID", nil)
		return
	}

	var req dto.UpdatePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	prescription, err := h.prescriptionUsecase.Update(r.Context(), uint(id), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrPrescriptionNotFound:
			response.NotFound(w, "Prescription not found")
		case usecase.ErrNotPrescriptionOwner:
			response.Forbidden(w, "Prescription belongs to another doctor")
		case usecase.ErrPrescriptionNotEditable:
			response.Conflict(w, "Prescription can no longer be edited")
		default:
			response.InternalServerError(w, "Failed to update prescription")
		}
		return
	}

	response.Success(w, http.StatusOK, "Prescription updated successfully", prescription)
}

// List serves the back-office listing across all doctors.
func (h *PrescriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)

	prescriptions, meta, err := h.prescriptionUsecase.List(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list prescriptions")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Prescriptions retrieved successfully", prescriptions, meta)
}

// ListMine serves the doctor-scoped listing.
func (h *PrescriptionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	filter := filterFromQuery(r)
	filter.UserID = &userID

	prescriptions, meta, err := h.prescriptionUsecase.List(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list prescriptions")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Prescriptions retrieved successfully", prescriptions, meta)
}

// StatusCounts reports a count for every catalog status, zero rows included.
func (h *PrescriptionHandler) StatusCounts(w http.ResponseWriter, r *http.Request) {
	scope := &entity.PrescriptionFilter{}

	// Doctors see their own breakdown; the back office sees everything,
	// optionally narrowed to one delivery boy.
	if role, _ := middleware.GetRoleFromContext(r.Context()); role == jwt.RoleDoctor {
		if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
			scope.UserID = &userID
		}
	} else if raw := r.URL.Query().Get("deliveryboy_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			boyID := uint(id)
			scope.DeliveryBoyID = &boyID
		}
	}

	counts, err := h.prescriptionUsecase.StatusCounts(r.Context(), scope)
	if err != nil {
		response.InternalServerError(w, "Failed to count prescriptions")
		return
	}

	response.Success(w, http.StatusOK, "Status counts retrieved successfully", counts)
}

func (h *PrescriptionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid prescription ID", nil)
		return
	}

	var req dto.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	actorID, actorRole := actorFromContext(r)

	prescription, err := h.prescriptionUsecase.UpdateStatus(r.Context(), uint(id), req.Status, actorID, actorRole)
	if err != nil {
		switch err {
		case usecase.ErrPrescriptionNotFound:
			response.NotFound(w, "Prescription not found")
		case usecase.ErrInvalidStatus:
			response.Error(w, http.StatusBadRequest, "Unknown prescription status", nil)
		case usecase.ErrInvalidTransition:
			response.Conflict(w, "Status transition not allowed")
		default:
			response.InternalServerError(w, "Failed to update status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Status updated successfully", prescription)
}

func (h *PrescriptionHandler) UpdateStatusBatch(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateStatusBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	actorID, actorRole := actorFromContext(r)

	result, err := h.prescriptionUsecase.UpdateStatusBatch(r.Context(), &req, actorID, actorRole)
	if err != nil {
		switch err {
		case usecase.ErrEmptyBatch, usecase.ErrInvalidStatus:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrPrescriptionNotFound:
			response.NotFound(w, "No matching prescriptions to update")
		default:
			response.InternalServerError(w, "Failed to update statuses")
		}
		return
	}

	response.Success(w, http.StatusOK, "Statuses updated successfully", result)
}

func (h *PrescriptionHandler) AttachBill(w http.ResponseWriter, r *http.Request) {
	var req dto.AttachBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	actorID, actorRole := actorFromContext(r)

	prescription, err := h.prescriptionUsecase.AttachBill(r.Context(), &req, actorID, actorRole)
	if err != nil {
		switch err {
		case usecase.ErrPrescriptionNotFound:
			response.NotFound(w, "Prescription not found")
		case usecase.ErrDeliveryBoyNotFound:
			response.NotFound(w, "Delivery boy not found")
		default:
			response.InternalServerError(w, "Failed to attach bill")
		}
		return
	}

	response.Success(w, http.StatusOK, "Bill attached successfully", prescription)
}
