package handler

import (
	"net/http"

	"rxcourier/internal/usecase"
	"rxcourier/pkg/response"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{
		dashboardUsecase: dashboardUsecase,
	}
}

func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.dashboardUsecase.Overview(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load dashboard")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", overview)
}
