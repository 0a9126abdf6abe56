package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"rxcourier/internal/delivery/dto"
	"rxcourier/internal/usecase"
	"rxcourier/pkg/response"
	"rxcourier/pkg/validator"

	"github.com/gorilla/mux"
)

type DeliveryBoyHandler struct {
	deliveryBoyUsecase usecase.DeliveryBoyUsecase
	validator          *validator.CustomValidator
}

func NewDeliveryBoyHandler(deliveryBoyUsecase usecase.DeliveryBoyUsecase, validator *validator.CustomValidator) *DeliveryBoyHandler {
	return &DeliveryBoyHandler{
		deliveryBoyUsecase: deliveryBoyUsecase,
		validator:          validator,
	}
}

func (h *DeliveryBoyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDeliveryBoyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	actorID, _ := actorFromContext(r)

	deliveryBoy, err := h.deliveryBoyUsecase.Create(r.Context(), &req, actorID)
	if err != nil {
		switch err {
		case usecase.ErrDeliveryBoyMobileExists:
			response.Conflict(w, "Mobile number already registered")
		default:
			response.InternalServerError(w, "Failed to create delivery boy")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Delivery boy created successfully", deliveryBoy)
}

func (h *DeliveryBoyHandler) List(w http.ResponseWriter, r *http.Request) {
	deliveryBoys, err := h.deliveryBoyUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list delivery boys")
		return
	}

	response.Success(w, http.StatusOK, "Delivery boys retrieved successfully", deliveryBoys)
}

func (h *DeliveryBoyHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid delivery boy ID", nil)
		return
	}

	deliveryBoy, err := h.deliveryBoyUsecase.GetByID(r.Context(), uint(id))
	if err != nil {
		switch err {
		case usecase.ErrDeliveryBoyNotFound:
			response.NotFound(w, "Delivery boy not found")
		default:
			response.InternalServerError(w, "Failed to get delivery boy")
		}
		return
	}

	response.Success(w, http.StatusOK, "Delivery boy retrieved successfully", deliveryBoy)
}

func (h *DeliveryBoyHandler) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid delivery boy ID", nil)
		return
	}

	var req dto.UpdateDeliveryBoyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	deliveryBoy, err := h.deliveryBoyUsecase.Update(r.Context(), uint(id), &req)
	if err != nil {
		switch err {
		case usecase.ErrDeliveryBoyNotFound:
			response.NotFound(w, "Delivery boy not found")
		case usecase.ErrDeliveryBoyMobileExists:
			response.Conflict(w, "Mobile number already registered")
		default:
			response.InternalServerError(w, "Failed to update delivery boy")
		}
		return
	}

	response.Success(w, http.StatusOK, "Delivery boy updated successfully", deliveryBoy)
}
