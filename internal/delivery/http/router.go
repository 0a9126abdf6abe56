package http

import (
	"net/http"

	"rxcourier/internal/delivery/http/handler"
	"rxcourier/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	adminHandler        *handler.AdminHandler
	prescriptionHandler *handler.PrescriptionHandler
	financeHandler      *handler.FinanceHandler
	dashboardHandler    *handler.DashboardHandler
	doctorHandler       *handler.DoctorHandler
	deliveryBoyHandler  *handler.DeliveryBoyHandler
	clinicHandler       *handler.ClinicHandler
	notificationHandler *handler.NotificationHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	adminHandler *handler.AdminHandler,
	prescriptionHandler *handler.PrescriptionHandler,
	financeHandler *handler.FinanceHandler,
	dashboardHandler *handler.DashboardHandler,
	doctorHandler *handler.DoctorHandler,
	deliveryBoyHandler *handler.DeliveryBoyHandler,
	clinicHandler *handler.ClinicHandler,
	notificationHandler *handler.NotificationHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		adminHandler:        adminHandler,
		prescriptionHandler: prescriptionHandler,
		financeHandler:      financeHandler,
		dashboardHandler:    dashboardHandler,
		doctorHandler:       doctorHandler,
		deliveryBoyHandler:  deliveryBoyHandler,
		clinicHandler:       clinicHandler,
		notificationHandler: notificationHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/social-login", r.authHandler.SocialLogin).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)
	auth.HandleFunc("/forgot-password", r.authHandler.ForgotPassword).Methods(http.MethodPost)
	auth.HandleFunc("/verify-otp", r.authHandler.VerifyOTP).Methods(http.MethodPost)
	auth.HandleFunc("/reset-password", r.authHandler.ResetPassword).Methods(http.MethodPost)
	auth.HandleFunc("/admin/register", r.adminHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/admin/login", r.adminHandler.Login).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/change-password", r.authHandler.ChangePassword).Methods(http.MethodPost)

	// Doctor routes (doctor only)
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)
	doctor.HandleFunc("/me", r.authHandler.UpdateDetails).Methods(http.MethodPut)
	doctor.HandleFunc("/me", r.authHandler.DeleteAccount).Methods(http.MethodDelete)
	doctor.HandleFunc("/me/send-verification", r.authHandler.SendMobileVerification).Methods(http.MethodPost)
	doctor.HandleFunc("/me/verify-mobile", r.authHandler.VerifyMobile).Methods(http.MethodPost)
	doctor.HandleFunc("/me/dues", r.financeHandler.MyDues).Methods(http.MethodGet)

	doctor.HandleFunc("/clinic", r.clinicHandler.Create).Methods(http.MethodPost)
	doctor.HandleFunc("/clinic", r.clinicHandler.GetMine).Methods(http.MethodGet)
	doctor.HandleFunc("/clinic", r.clinicHandler.Update).Methods(http.MethodPut)
	doctor.HandleFunc("/clinic/send-assistant-verification", r.clinicHandler.SendAssistantVerification).Methods(http.MethodPost)
	doctor.HandleFunc("/clinic/verify-assistant-mobile", r.clinicHandler.VerifyAssistantMobile).Methods(http.MethodPost)

	doctor.HandleFunc("/prescriptions", r.prescriptionHandler.Create).Methods(http.MethodPost)
	doctor.HandleFunc("/prescriptions", r.prescriptionHandler.ListMine).Methods(http.MethodGet)
	doctor.HandleFunc("/prescriptions/status-counts", r.prescriptionHandler.StatusCounts).Methods(http.MethodGet)
	doctor.HandleFunc("/prescriptions/{id}", r.prescriptionHandler.GetByID).Methods(http.MethodGet)
	doctor.HandleFunc("/prescriptions/{id}", r.prescriptionHandler.Update).Methods(http.MethodPut)

	doctor.HandleFunc("/notifications", r.notificationHandler.ListMine).Methods(http.MethodGet)
	doctor.HandleFunc("/notifications/{id}/read", r.notificationHandler.MarkRead).Methods(http.MethodPut)

	// Admin routes (back office only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/me", r.adminHandler.GetDetails).Methods(http.MethodGet)
	admin.HandleFunc("/change-password", r.adminHandler.ChangePassword).Methods(http.MethodPost)

	admin.HandleFunc("/dashboard", r.dashboardHandler.Overview).Methods(http.MethodGet)

	admin.HandleFunc("/prescriptions", r.prescriptionHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/prescriptions/status-counts", r.prescriptionHandler.StatusCounts).Methods(http.MethodGet)
	admin.HandleFunc("/prescriptions/status", r.prescriptionHandler.UpdateStatusBatch).Methods(http.MethodPut)
	admin.HandleFunc("/prescriptions/bill", r.prescriptionHandler.AttachBill).Methods(http.MethodPost)
	admin.HandleFunc("/prescriptions/{id}", r.prescriptionHandler.GetByID).Methods(http.MethodGet)
	admin.HandleFunc("/prescriptions/{id}/status", r.prescriptionHandler.UpdateStatus).Methods(http.MethodPut)

	admin.HandleFunc("/finance/summary", r.financeHandler.Summary).Methods(http.MethodGet)
	admin.HandleFunc("/finance/prescriptions", r.financeHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/finance/doctors/{id}/dues", r.financeHandler.DoctorDues).Methods(http.MethodGet)
	admin.HandleFunc("/finance/doctors/{id}/rates", r.financeHandler.UpdateDoctorRates).Methods(http.MethodPut)

	admin.HandleFunc("/doctors", r.doctorHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.GetByID).Methods(http.MethodGet)

	admin.HandleFunc("/delivery-boys", r.deliveryBoyHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/delivery-boys", r.deliveryBoyHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/delivery-boys/{id}", r.deliveryBoyHandler.GetByID).Methods(http.MethodGet)
	admin.HandleFunc("/delivery-boys/{id}", r.deliveryBoyHandler.Update).Methods(http.MethodPut)

	admin.HandleFunc("/notifications", r.notificationHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/notifications", r.notificationHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/notifications/recent", r.notificationHandler.Recent).Methods(http.MethodGet)
	admin.HandleFunc("/notifications/{id}/read", r.notificationHandler.MarkRead).Methods(http.MethodPut)
	admin.HandleFunc("/notifications/{id}", r.notificationHandler.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/audit-logs", r.auditLogHandler.List).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
